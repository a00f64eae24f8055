package repository

import (
	"context"

	"aircon_controller/internal/models"
)

type Settings struct {
	kv KVStore
}

func NewSettings(kv KVStore) *Settings {
	return &Settings{kv: kv}
}

var _ SettingsRepo = (*Settings)(nil)

// Load returns the stored credentials; absent keys read as "".
func (r *Settings) Load(ctx context.Context) (models.Credentials, error) {
	token, _, err := r.kv.Get(ctx, KeyToken)
	if err != nil {
		return models.Credentials{}, err
	}
	applianceID, _, err := r.kv.Get(ctx, KeyApplianceID)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{Token: token, ApplianceID: applianceID}, nil
}

func (r *Settings) SaveToken(ctx context.Context, token string) error {
	return r.kv.Set(ctx, KeyToken, token)
}

func (r *Settings) SaveApplianceID(ctx context.Context, applianceID string) error {
	return r.kv.Set(ctx, KeyApplianceID, applianceID)
}

// ClearCredentials empties both token and appliance id so the next run
// starts setup again.
func (r *Settings) ClearCredentials(ctx context.Context) error {
	return r.kv.SetMany(ctx, map[string]string{
		KeyToken:       "",
		KeyApplianceID: "",
	})
}

func (r *Settings) ClearApplianceID(ctx context.Context) error {
	return r.kv.Set(ctx, KeyApplianceID, "")
}
