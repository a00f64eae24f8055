package service

import (
	"context"
	"time"

	"aircon_controller/internal/repository"
)

// Status is the read-only view served by the status command and the HTTP API.
// The token itself is never part of it.
type Status struct {
	Configured   bool       `json:"configured"`
	ApplianceID  string     `json:"appliance_id,omitempty"`
	LastAction   string     `json:"last_action,omitempty"`
	LastActionAt *time.Time `json:"last_action_at,omitempty"`
	CooldownLeft string     `json:"cooldown_remaining,omitempty"`
	InCooldown   bool       `json:"in_cooldown"`
	Policy       PolicyView `json:"policy"`
}

// PolicyView is the configured band as shown to clients.
type PolicyView struct {
	RangeLow     float64 `json:"range_low"`
	RangeHigh    float64 `json:"range_high"`
	LowSetpoint  string  `json:"low_setpoint"`
	HighSetpoint string  `json:"high_setpoint"`
}

type StatusService struct {
	settings  repository.SettingsRepo
	stateRepo repository.StateRepo
	policy    Policy
	now       func() time.Time
}

func NewStatusService(settings repository.SettingsRepo, stateRepo repository.StateRepo, policy Policy) *StatusService {
	return &StatusService{settings: settings, stateRepo: stateRepo, policy: policy, now: time.Now}
}

// GetStatus reports the stored configuration and control state, and whether
// the next run would stop at the cooldown guard.
func (s *StatusService) GetStatus(ctx context.Context) (Status, error) {
	creds, err := s.settings.Load(ctx)
	if err != nil {
		return Status{}, err
	}
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		Configured:  creds.Complete(),
		ApplianceID: creds.ApplianceID,
		LastAction:  state.LastAction,
		Policy: PolicyView{
			RangeLow:     s.policy.RangeLow,
			RangeHigh:    s.policy.RangeHigh,
			LowSetpoint:  s.policy.LowSetpoint,
			HighSetpoint: s.policy.HighSetpoint,
		},
	}
	if !state.LastActionAt.IsZero() {
		at := state.LastActionAt.UTC()
		st.LastActionAt = &at
	}
	if cd := CheckCooldown(state, s.now(), s.policy); cd.Skip {
		st.InCooldown = true
		st.CooldownLeft = cd.Remaining.Truncate(time.Second).String()
	}
	return st, nil
}
