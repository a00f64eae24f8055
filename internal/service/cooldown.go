package service

import (
	"time"

	"aircon_controller/internal/models"
)

// Cooldown is the guard's verdict. Remaining is zero when Skip is false.
type Cooldown struct {
	Skip      bool          `json:"skip"`
	Remaining time.Duration `json:"remaining"`
}

// CheckCooldown decides whether the last action happened too recently for a
// new decision. An off_detected marker holds for OffCooldown, any other action
// for ChangeCooldown. A run exactly at the limit proceeds.
func CheckCooldown(state models.ControlState, now time.Time, p Policy) Cooldown {
	if state.LastActionAt.IsZero() {
		return Cooldown{}
	}

	limit := p.ChangeCooldown
	if state.IsOffDetected() {
		limit = p.OffCooldown
	}

	elapsed := now.Sub(state.LastActionAt)
	if elapsed < limit {
		return Cooldown{Skip: true, Remaining: limit - elapsed}
	}
	return Cooldown{}
}
