package storage

import (
	"context"
	"errors"

	"github.com/rentbook/rentbook-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// Store defines the storage interface
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// House methods
	CreateHouse(ctx context.Context, house *models.House) error
	GetHouse(ctx context.Context, id int64) (*models.House, error)
	UpdateHouse(ctx context.Context, id int64, update HouseUpdate) error
	DeleteHouse(ctx context.Context, id int64) error
	ListHouses(ctx context.Context) ([]*models.House, error)
	GetHouseAggregates(ctx context.Context, houseID int64) (tenantCount int, totalRent float64, err error)

	// Room methods
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, update RoomUpdate) error
	DeleteRoom(ctx context.Context, id int64) error
	ListRoomsByHouse(ctx context.Context, houseID int64) ([]*models.Room, error)

	// Tenant methods
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenant(ctx context.Context, id int64) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, id int64, update TenantUpdate) error
	DeleteTenant(ctx context.Context, id int64) error
	ListTenants(ctx context.Context) ([]*models.Tenant, error)
	ListTenantsByHouse(ctx context.Context, houseID int64) ([]*models.Tenant, error)
	GetTenantDetails(ctx context.Context, id int64) (*models.TenantDetails, error)
	ListTenantDetails(ctx context.Context, month string) ([]*models.TenantDetails, error)

	// Payment methods
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id int64, update PaymentUpdate) error
	DeletePayment(ctx context.Context, id int64) error
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	ListPaymentsByTenant(ctx context.Context, tenantID int64) ([]*models.Payment, error)
	SumPayments(ctx context.Context, tenantID int64) (float64, error)
	IsMonthPaid(ctx context.Context, tenantID int64, month string) (bool, error)
	GetLastPayment(ctx context.Context, tenantID int64) (*models.Payment, error)

	// Change log methods
	CreateChangeEntry(ctx context.Context, entry *models.ChangeEntry) error
	ListChangeEntries(ctx context.Context, limit, offset int) ([]*models.ChangeEntry, int64, error)

	// Close the store
	Close() error
}

// HouseUpdate carries the columns of a partial house update; nil
// fields are left untouched
type HouseUpdate struct {
	Name    *string
	Address *string
}

// Empty reports whether the update would touch no columns
func (u HouseUpdate) Empty() bool {
	return u.Name == nil && u.Address == nil
}

// RoomUpdate carries the columns of a partial room update
type RoomUpdate struct {
	Name *string
	Type *string
}

// Empty reports whether the update would touch no columns
func (u RoomUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil
}

// TenantUpdate carries the columns of a partial tenant update
type TenantUpdate struct {
	HouseID          *int64
	RoomID           *int64
	FirstName        *string
	LastName         *string
	Phone            *string
	Email            *string
	EntryDate        *string
	PaymentFrequency *models.PaymentFrequency
	RentAmount       *float64
}

// Empty reports whether the update would touch no columns
func (u TenantUpdate) Empty() bool {
	return u.HouseID == nil && u.RoomID == nil && u.FirstName == nil &&
		u.LastName == nil && u.Phone == nil && u.Email == nil &&
		u.EntryDate == nil && u.PaymentFrequency == nil && u.RentAmount == nil
}

// PaymentUpdate carries the columns of a partial payment update.
// PaidAt is immutable and has no field here.
type PaymentUpdate struct {
	TenantID *int64
	Month    *string
	Amount   *float64
}

// Empty reports whether the update would touch no columns
func (u PaymentUpdate) Empty() bool {
	return u.TenantID == nil && u.Month == nil && u.Amount == nil
}
