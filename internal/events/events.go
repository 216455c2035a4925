package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Event is the envelope published on every successful mutation. It
// replaces a shared refresh counter: dependent views subscribe instead
// of polling mutable state.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Entity   string    `json:"entity"`
	EntityID int64     `json:"entityId"`
	Action   string    `json:"action"`
	At       time.Time `json:"at"`
}

// New builds an event envelope for one mutation
func New(entity string, entityID int64, action string) Event {
	return Event{
		ID:       uuid.New(),
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		At:       time.Now(),
	}
}

// Subject returns the NATS subject of the event
func (e Event) Subject() string {
	return fmt.Sprintf("rental.%s.%s", e.Entity, e.Action)
}

// SubjectAll matches every mutation event
const SubjectAll = "rental.>"

// Publisher publishes mutation events
type Publisher interface {
	Publish(event Event) error
}

// NATSPublisher publishes mutation events to NATS
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher creates a NATS publisher
func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

// Publish publishes the event to its subject
func (p *NATSPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.nc.Publish(event.Subject(), data)
}

// NopPublisher drops events. Used when NATS is not configured.
type NopPublisher struct{}

// Publish discards the event
func (NopPublisher) Publish(Event) error {
	return nil
}
