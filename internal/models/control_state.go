package models

import "time"

// ActionOffDetected is the last_set_temp marker stored when the unit was found
// powered off with the room outside the band.
const ActionOffDetected = "off_detected"

// ControlState is what the previous run did and when. LastAction holds either
// a set-point string ("28", "30"), ActionOffDetected, or "" when unset.
type ControlState struct {
	LastAction   string    `json:"last_action"`
	LastActionAt time.Time `json:"last_action_at"` // zero when never acted
}

// IsOffDetected reports whether the last action recorded a powered-off unit.
func (s ControlState) IsOffDetected() bool {
	return s.LastAction == ActionOffDetected
}
