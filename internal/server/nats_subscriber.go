package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/rentbook/rentbook-server/internal/events"
	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// NATSSubscriber listens to mutation events and persists them as
// change log entries
type NATSSubscriber struct {
	nc    *nats.Conn
	store storage.Store
	subs  []*nats.Subscription
}

// NewNATSSubscriber creates NATS subscriber
func NewNATSSubscriber(nc *nats.Conn, store storage.Store) *NATSSubscriber {
	return &NATSSubscriber{
		nc:    nc,
		store: store,
		subs:  make([]*nats.Subscription, 0),
	}
}

// Start starts subscriptions and blocks until ctx is cancelled
func (s *NATSSubscriber) Start(ctx context.Context) error {
	sub, err := s.nc.Subscribe(events.SubjectAll, s.handleMutation)
	if err != nil {
		return fmt.Errorf("subscribe mutation events: %w", err)
	}
	s.subs = append(s.subs, sub)

	log.Info().
		Int("subscriptions", len(s.subs)).
		Msg("NATS subscriber started")

	<-ctx.Done()

	// Unsubscribe
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	return ctx.Err()
}

// handleMutation records one mutation event in the change log
func (s *NATSSubscriber) handleMutation(msg *nats.Msg) {
	log.Debug().
		Str("subject", msg.Subject).
		Int("size", len(msg.Data)).
		Msg("Received mutation event")

	var event events.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("Failed to unmarshal mutation event")
		return
	}

	entry := &models.ChangeEntry{
		ID:         event.ID,
		OccurredAt: event.At,
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		Action:     event.Action,
	}

	if err := s.store.CreateChangeEntry(context.Background(), entry); err != nil {
		log.Error().Err(err).
			Str("entity", event.Entity).
			Int64("entity_id", event.EntityID).
			Msg("Failed to record change entry")
	}
}
