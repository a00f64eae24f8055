package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure so callers can decide what to persist.
type Kind int

const (
	// KindTransport covers network failures and non-401 HTTP errors.
	KindTransport Kind = iota
	// KindUnauthorized is an HTTP 401: the stored token is no longer valid.
	KindUnauthorized
	// KindNotFound is an HTTP 404 from the API.
	KindNotFound
	// KindData means the response decoded but is unusable.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindData:
		return "data"
	default:
		return "transport"
	}
}

// Error is returned by every Gateway method.
type Error struct {
	Op     string // "list_appliances", "list_devices", "set_temperature"
	Kind   Kind
	Status int // HTTP status when a response was received, else 0
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s: %s (HTTP %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of a gateway error, or KindTransport for anything else.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindTransport
}

// IsUnauthorized reports whether err is a gateway 401.
func IsUnauthorized(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindUnauthorized
}
