package models

import (
	"time"

	"github.com/google/uuid"
)

// Change actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change entities
const (
	EntityHouse   = "house"
	EntityRoom    = "room"
	EntityTenant  = "tenant"
	EntityPayment = "payment"
)

// ChangeEntry is one persisted mutation record. Entries are written by
// the event subscriber so dependent views know when to reload.
type ChangeEntry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`

	Entity   string `json:"entity" db:"entity"`
	EntityID int64  `json:"entityId" db:"entity_id"`
	Action   string `json:"action" db:"action"`
}
