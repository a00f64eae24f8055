package repository

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KVStore for tests and dry runs.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, if set, is returned by Set and SetMany without writing.
	SetErr error
	// GetErr, if set, is returned by Get.
	GetErr error

	// Writes counts successful Set and SetMany calls.
	Writes int
}

func NewMemoryKV(initial map[string]string) *MemoryKV {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryKV{values: values}
}

var _ KVStore = (*MemoryKV)(nil)

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	m.Writes++
	return nil
}

func (m *MemoryKV) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	for k, v := range values {
		m.values[k] = v
	}
	m.Writes++
	return nil
}

// Value returns the stored value, or "" when absent.
func (m *MemoryKV) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}
