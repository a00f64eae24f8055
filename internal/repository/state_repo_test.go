package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"aircon_controller/internal/models"
	"aircon_controller/internal/repository"
)

func TestControlState_Load_EmptyStoreReturnsZeroState(t *testing.T) {
	repo := repository.NewControlState(repository.NewMemoryKV(nil))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.LastAction != "" || !got.LastActionAt.IsZero() {
		t.Fatalf("Load() expected zero state, got %+v", got)
	}
}

func TestControlState_SaveThenLoad_RoundTripsSeconds(t *testing.T) {
	kv := repository.NewMemoryKV(nil)
	repo := repository.NewControlState(kv)

	at := time.Date(2025, 7, 1, 13, 14, 15, 900_000_000, time.FixedZone("JST", 9*3600))
	if err := repo.Save(context.Background(), models.ControlState{LastAction: "28", LastActionAt: at}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if kv.Writes != 1 {
		t.Fatalf("expected one atomic write, got %d", kv.Writes)
	}
	if got := kv.Value(repository.KeyLastSetTimestamp); got != "1751343255" {
		t.Fatalf("timestamp stored as %q", got)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LastAction != "28" {
		t.Fatalf("LastAction = %q; want 28", got.LastAction)
	}
	if !got.LastActionAt.Equal(at.Truncate(time.Second)) {
		t.Fatalf("LastActionAt = %v; want %v", got.LastActionAt, at.Truncate(time.Second))
	}
	if got.LastActionAt.Location() != time.UTC {
		t.Fatalf("LastActionAt not UTC: %v", got.LastActionAt.Location())
	}
}

func TestControlState_Load_AcceptsFractionalTimestamp(t *testing.T) {
	kv := repository.NewMemoryKV(map[string]string{
		repository.KeyLastSetTemp:      models.ActionOffDetected,
		repository.KeyLastSetTimestamp: "1723456789.5",
	})
	repo := repository.NewControlState(kv)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := time.Unix(1723456789, 500_000_000)
	if !got.LastActionAt.Equal(want) {
		t.Fatalf("LastActionAt = %v; want %v", got.LastActionAt, want)
	}
	if !got.IsOffDetected() {
		t.Fatalf("expected off_detected, got %q", got.LastAction)
	}
}

func TestControlState_Load_InvalidTimestampReturnsError(t *testing.T) {
	kv := repository.NewMemoryKV(map[string]string{
		repository.KeyLastSetTemp:      "30",
		repository.KeyLastSetTimestamp: "yesterday",
	})

	if _, err := repository.NewControlState(kv).Load(context.Background()); err == nil {
		t.Fatalf("Load() expected error for invalid timestamp, got nil")
	}
}

func TestControlState_Save_ZeroTimeUsesNow(t *testing.T) {
	kv := repository.NewMemoryKV(nil)
	repo := repository.NewControlState(kv)

	before := time.Now().Add(-time.Second)
	if err := repo.Save(context.Background(), models.ControlState{LastAction: "30"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LastActionAt.Before(before.Truncate(time.Second)) || got.LastActionAt.After(time.Now()) {
		t.Fatalf("LastActionAt %v not close to now", got.LastActionAt)
	}
}

func TestControlState_Save_ErrorIsPropagated(t *testing.T) {
	kv := repository.NewMemoryKV(nil)
	kv.SetErr = errors.New("db down")

	err := repository.NewControlState(kv).Save(context.Background(), models.ControlState{LastAction: "28", LastActionAt: time.Now()})
	if err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
	if kv.Value(repository.KeyLastSetTemp) != "" {
		t.Fatalf("nothing must be written on error")
	}
}
