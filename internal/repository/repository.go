package repository

import (
	"context"
	"database/sql"
	"time"

	"aircon_controller/internal/models"
)

// Keys of the config table.
const (
	KeyToken            = "token"
	KeyApplianceID      = "appliance_id"
	KeyLastSetTemp      = "last_set_temp"
	KeyLastSetTimestamp = "last_set_timestamp"
)

// KVStore is the durable string-to-string store shared by every run.
// SetMany writes all pairs atomically.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

// SettingsRepo persists the credentials written by setup.
type SettingsRepo interface {
	Load(ctx context.Context) (models.Credentials, error)
	SaveToken(ctx context.Context, token string) error
	SaveApplianceID(ctx context.Context, applianceID string) error
	ClearCredentials(ctx context.Context) error
	ClearApplianceID(ctx context.Context) error
}

// StateRepo persists the last control action and its timestamp.
type StateRepo interface {
	Load(ctx context.Context) (models.ControlState, error)
	Save(ctx context.Context, s models.ControlState) error
}

// EventRepo is the append-only decision journal.
type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlEvent, error)
}

type Repository struct {
	KV        KVStore
	Settings  SettingsRepo
	StateRepo StateRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	kv := NewKVSQLite(db)
	return &Repository{
		KV:        kv,
		Settings:  NewSettings(kv),
		StateRepo: NewControlState(kv),
		EventRepo: NewEventSQLite(db),
	}
}
