package rental

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/rentbook/rentbook-server/internal/events"
	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// Domain errors
var (
	// ErrRoomHouseMismatch is returned when a tenant references a room
	// owned by a different house
	ErrRoomHouseMismatch = errors.New("room does not belong to the tenant's house")

	// ErrMonthAlreadyPaid is returned when a payment for the tenant and
	// month is already recorded. The store itself stays permissive; the
	// check is advisory and lives here.
	ErrMonthAlreadyPaid = errors.New("month already paid for tenant")
)

// Service orchestrates mutations: cross-entity validation, composite
// transactional writes, and a mutation event per successful change so
// dependent views know to reload.
type Service struct {
	store  storage.Store
	events events.Publisher
}

// NewService creates a rental service
func NewService(store storage.Store, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{store: store, events: publisher}
}

// publish sends a mutation event. Publishing is best effort: the
// mutation is already committed, so a publish failure is logged, not
// returned.
func (s *Service) publish(entity string, entityID int64, action string) {
	if err := s.events.Publish(events.New(entity, entityID, action)); err != nil {
		log.Warn().Err(err).
			Str("entity", entity).
			Int64("entity_id", entityID).
			Str("action", action).
			Msg("Failed to publish mutation event")
	}
}

// ========== Houses ==========

// CreateHouse creates a house
func (s *Service) CreateHouse(ctx context.Context, house *models.House) error {
	if err := s.store.CreateHouse(ctx, house); err != nil {
		return err
	}
	s.publish(models.EntityHouse, house.ID, models.ActionCreated)
	return nil
}

// UpdateHouse applies a partial house update
func (s *Service) UpdateHouse(ctx context.Context, id int64, update storage.HouseUpdate) error {
	if update.Empty() {
		return nil
	}
	if err := s.store.UpdateHouse(ctx, id, update); err != nil {
		return err
	}
	s.publish(models.EntityHouse, id, models.ActionUpdated)
	return nil
}

// DeleteHouse deletes a house. Dependent rooms, tenants and payments
// stay in place; their views degrade to an absent house summary.
func (s *Service) DeleteHouse(ctx context.Context, id int64) error {
	if err := s.store.DeleteHouse(ctx, id); err != nil {
		return err
	}
	s.publish(models.EntityHouse, id, models.ActionDeleted)
	return nil
}

// ========== Rooms ==========

// CreateRoom creates a room under an existing house
func (s *Service) CreateRoom(ctx context.Context, room *models.Room) error {
	if _, err := s.store.GetHouse(ctx, room.HouseID); err != nil {
		return err
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return err
	}
	s.publish(models.EntityRoom, room.ID, models.ActionCreated)
	return nil
}

// UpdateRoom applies a partial room update
func (s *Service) UpdateRoom(ctx context.Context, id int64, update storage.RoomUpdate) error {
	if update.Empty() {
		return nil
	}
	if err := s.store.UpdateRoom(ctx, id, update); err != nil {
		return err
	}
	s.publish(models.EntityRoom, id, models.ActionUpdated)
	return nil
}

// DeleteRoom deletes a room
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.publish(models.EntityRoom, id, models.ActionDeleted)
	return nil
}

// ========== Tenants ==========

// checkRoomAssignment verifies that the room exists and is owned by
// the given house
func (s *Service) checkRoomAssignment(ctx context.Context, houseID, roomID int64) error {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room.HouseID != houseID {
		return ErrRoomHouseMismatch
	}
	return nil
}

// CreateTenant creates a tenant bound to an existing room of the same house
func (s *Service) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if err := s.checkRoomAssignment(ctx, tenant.HouseID, tenant.RoomID); err != nil {
		return err
	}
	if err := s.store.CreateTenant(ctx, tenant); err != nil {
		return err
	}
	s.publish(models.EntityTenant, tenant.ID, models.ActionCreated)
	return nil
}

// UpdateTenant applies a partial tenant update. When the update moves
// the tenant (house or room change), the resulting pair is validated
// against the rows it would reference after the update.
func (s *Service) UpdateTenant(ctx context.Context, id int64, update storage.TenantUpdate) error {
	if update.Empty() {
		return nil
	}

	if update.HouseID != nil || update.RoomID != nil {
		tenant, err := s.store.GetTenant(ctx, id)
		if err != nil {
			return err
		}
		houseID := tenant.HouseID
		roomID := tenant.RoomID
		if update.HouseID != nil {
			houseID = *update.HouseID
		}
		if update.RoomID != nil {
			roomID = *update.RoomID
		}
		if err := s.checkRoomAssignment(ctx, houseID, roomID); err != nil {
			return err
		}
	}

	if err := s.store.UpdateTenant(ctx, id, update); err != nil {
		return err
	}
	s.publish(models.EntityTenant, id, models.ActionUpdated)
	return nil
}

// DeleteTenant deletes a tenant
func (s *Service) DeleteTenant(ctx context.Context, id int64) error {
	if err := s.store.DeleteTenant(ctx, id); err != nil {
		return err
	}
	s.publish(models.EntityTenant, id, models.ActionDeleted)
	return nil
}

// CreateTenantWithRoom creates a room and its tenant in a single
// transaction. A failure after the room insert rolls the room back, so
// no orphaned room survives a partial create.
func (s *Service) CreateTenantWithRoom(ctx context.Context, room *models.Room, tenant *models.Tenant) error {
	if _, err := s.store.GetHouse(ctx, room.HouseID); err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := tx.CreateRoom(ctx, room); err != nil {
		tx.Rollback()
		return err
	}

	tenant.HouseID = room.HouseID
	tenant.RoomID = room.ID
	if err := tx.CreateTenant(ctx, tenant); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.publish(models.EntityRoom, room.ID, models.ActionCreated)
	s.publish(models.EntityTenant, tenant.ID, models.ActionCreated)
	return nil
}

// ========== Payments ==========

// RecordPayment records a rent payment after checking that the month
// is not already covered for the tenant
func (s *Service) RecordPayment(ctx context.Context, payment *models.Payment) error {
	if _, err := s.store.GetTenant(ctx, payment.TenantID); err != nil {
		return err
	}

	paid, err := s.store.IsMonthPaid(ctx, payment.TenantID, payment.Month)
	if err != nil {
		return err
	}
	if paid {
		return ErrMonthAlreadyPaid
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return err
	}
	s.publish(models.EntityPayment, payment.ID, models.ActionCreated)
	return nil
}

// UpdatePayment applies a partial payment update
func (s *Service) UpdatePayment(ctx context.Context, id int64, update storage.PaymentUpdate) error {
	if update.Empty() {
		return nil
	}
	if err := s.store.UpdatePayment(ctx, id, update); err != nil {
		return err
	}
	s.publish(models.EntityPayment, id, models.ActionUpdated)
	return nil
}

// DeletePayment deletes a payment
func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	if err := s.store.DeletePayment(ctx, id); err != nil {
		return err
	}
	s.publish(models.EntityPayment, id, models.ActionDeleted)
	return nil
}
