package service

import "time"

// Policy holds the hysteresis band, the set-points it toggles between and the
// cooldowns applied after each kind of action.
type Policy struct {
	RangeLow       float64 // exclusive lower edge of the comfort band
	RangeHigh      float64 // inclusive upper edge
	LowSetpoint    string  // commanded when the room is too warm
	HighSetpoint   string  // commanded when the room is too cold
	ChangeCooldown time.Duration
	OffCooldown    time.Duration
}

// DefaultPolicy is the 27-29°C band toggling between "28" and "30".
func DefaultPolicy() Policy {
	return Policy{
		RangeLow:       27.0,
		RangeHigh:      29.0,
		LowSetpoint:    "28",
		HighSetpoint:   "30",
		ChangeCooldown: 300 * time.Second,
		OffCooldown:    600 * time.Second,
	}
}
