package gateway

import (
	"context"

	"aircon_controller/internal/models"
)

// Gateway is the remote appliance API. Every call authenticates with token.
type Gateway interface {
	ListAppliances(ctx context.Context, token string) ([]models.Appliance, error)
	ListDevices(ctx context.Context, token string) ([]models.Device, error)
	SetTemperature(ctx context.Context, token, applianceID, temp string) error
}
