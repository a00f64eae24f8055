package models

import "time"

// Journal event types.
const (
	EventSetpointChanged = "SETPOINT_CHANGED"
	EventOffDetected     = "OFF_DETECTED"
	EventAuthReset       = "AUTH_RESET"
	EventApplianceReset  = "APPLIANCE_RESET"
	EventSetupCompleted  = "SETUP_COMPLETED"
)

// ControlEvent is a single journal entry.
type ControlEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
