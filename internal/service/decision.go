package service

import "fmt"

// Band is where a room temperature sits relative to the policy range.
type Band string

const (
	BandBelow Band = "BELOW_RANGE"
	BandIn    Band = "IN_RANGE"
	BandAbove Band = "ABOVE_RANGE"
)

// ClassifyBand applies the half-open band (RangeLow, RangeHigh]: exactly
// RangeLow is below, exactly RangeHigh is in.
func ClassifyBand(temp float64, p Policy) Band {
	switch {
	case temp > p.RangeHigh:
		return BandAbove
	case temp <= p.RangeLow:
		return BandBelow
	default:
		return BandIn
	}
}

// Action is what the orchestrator must do for a decision.
type Action string

const (
	ActionNone          Action = "none"
	ActionLowerSetpoint Action = "lower_setpoint"
	ActionRaiseSetpoint Action = "raise_setpoint"
	ActionRecordOff     Action = "record_off"
)

// Decision is the outcome of Decide. Target is set only for set-point actions.
type Decision struct {
	Action Action `json:"action"`
	Target string `json:"target,omitempty"`
	Band   Band   `json:"band"`
	Reason string `json:"reason"`
}

// Decide runs the hysteresis state machine. It performs no I/O.
// Set-points are compared as strings, exactly as the gateway reports them.
func Decide(roomTemp float64, setTemp string, powerOn bool, p Policy) Decision {
	band := ClassifyBand(roomTemp, p)

	if !powerOn {
		if band == BandIn {
			return Decision{Action: ActionNone, Band: band, Reason: "unit is off and room is in range"}
		}
		return Decision{
			Action: ActionRecordOff,
			Band:   band,
			Reason: fmt.Sprintf("unit is off with room at %.1f°C", roomTemp),
		}
	}

	switch band {
	case BandAbove:
		if setTemp == p.LowSetpoint {
			return Decision{Action: ActionNone, Band: band, Reason: "set-point already " + p.LowSetpoint}
		}
		return Decision{
			Action: ActionLowerSetpoint,
			Target: p.LowSetpoint,
			Band:   band,
			Reason: fmt.Sprintf("room %.1f°C above %.1f°C", roomTemp, p.RangeHigh),
		}
	case BandBelow:
		if setTemp == p.HighSetpoint {
			return Decision{Action: ActionNone, Band: band, Reason: "set-point already " + p.HighSetpoint}
		}
		return Decision{
			Action: ActionRaiseSetpoint,
			Target: p.HighSetpoint,
			Band:   band,
			Reason: fmt.Sprintf("room %.1f°C at or below %.1f°C", roomTemp, p.RangeLow),
		}
	default:
		return Decision{Action: ActionNone, Band: band, Reason: "room in range"}
	}
}
