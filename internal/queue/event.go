// Package queue defines the domain events published to RabbitMQ after
// successful writes, plus the publisher and the logging consumer.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// EventType names what happened to which entity.
type EventType string

const (
	UserCreated    EventType = "user.created"
	UserUpdated    EventType = "user.updated"
	AmenityCreated EventType = "amenity.created"
	AmenityUpdated EventType = "amenity.updated"
	PlaceCreated   EventType = "place.created"
	PlaceUpdated   EventType = "place.updated"
	ReviewCreated  EventType = "review.created"
	ReviewUpdated  EventType = "review.updated"
	ReviewDeleted  EventType = "review.deleted"
)

// Event is the message body. It carries ids only; consumers that need the
// entity read it from the API.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, entityID, actorID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}
