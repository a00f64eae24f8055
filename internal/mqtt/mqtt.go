// Package mqtt publishes control decisions to a broker.
package mqtt

import (
	"encoding/json"
	"time"

	"aircon_controller/internal/models"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "aircon/controller/events"

// Publisher sends control events to a broker. Failures are reported to the
// caller and never stop a control run.
type Publisher interface {
	Publish(event models.ControlEvent) error
	Close() error
}

// Payload is the JSON message body.
type Payload struct {
	Event EventPayload `json:"event"`
}

// EventPayload carries one control event.
type EventPayload struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Metadata    any    `json:"metadata,omitempty"`
}

// FormatPayload renders an event as the message body.
func FormatPayload(event models.ControlEvent) ([]byte, error) {
	return json.Marshal(Payload{
		Event: EventPayload{
			ID:          event.EventID,
			Timestamp:   event.OccurredAt.UTC().Format(time.RFC3339),
			Type:        event.Type,
			Description: event.Description,
			Metadata:    event.Metadata,
		},
	})
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(models.ControlEvent) error { return nil }
func (NoopPublisher) Close() error                      { return nil }
