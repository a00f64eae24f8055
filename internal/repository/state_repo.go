package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"aircon_controller/internal/models"
)

type ControlStateKV struct {
	kv KVStore
}

func NewControlState(kv KVStore) *ControlStateKV {
	return &ControlStateKV{kv: kv}
}

var _ StateRepo = (*ControlStateKV)(nil)

// formatTimestamp writes unix seconds.
func formatTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// parseTimestamp accepts integer or fractional unix seconds; older databases
// hold values like "1723456789.123456".
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
}

// Load reads last_set_temp and last_set_timestamp. Missing keys give a zero
// ControlState.
func (r *ControlStateKV) Load(ctx context.Context) (models.ControlState, error) {
	action, _, err := r.kv.Get(ctx, KeyLastSetTemp)
	if err != nil {
		return models.ControlState{}, err
	}
	raw, _, err := r.kv.Get(ctx, KeyLastSetTimestamp)
	if err != nil {
		return models.ControlState{}, err
	}
	at, err := parseTimestamp(raw)
	if err != nil {
		return models.ControlState{}, fmt.Errorf("parse %s %q: %w", KeyLastSetTimestamp, raw, err)
	}
	return models.ControlState{LastAction: action, LastActionAt: at}, nil
}

// Save writes the action and its timestamp together. A zero timestamp is
// replaced by now.
func (r *ControlStateKV) Save(ctx context.Context, s models.ControlState) error {
	at := s.LastActionAt
	if at.IsZero() {
		at = time.Now()
	}
	return r.kv.SetMany(ctx, map[string]string{
		KeyLastSetTemp:      s.LastAction,
		KeyLastSetTimestamp: formatTimestamp(at),
	})
}
