package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain change notification sent to downstream consumers.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       EventType      `json:"type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEvent builds an Event stamped with a fresh id and the current time.
func NewEvent(t EventType, entityID uuid.UUID, payload map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
