package rental

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbook/rentbook-server/internal/events"
	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// capturePublisher records published events for assertions
type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

func setupService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *capturePublisher, *Service) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	publisher := &capturePublisher{}
	svc := NewService(storage.NewWithDB(db), publisher)
	return db, mock, publisher, svc
}

func houseRow(id int64, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "address", "created_at"}).
		AddRow(id, name, "Addr", time.Now())
}

func roomRow(id, houseID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "house_id", "name", "type"}).
		AddRow(id, houseID, "101", "Studio")
}

func TestCreateTenant_RejectsRoomOfAnotherHouse(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, house_id, name, type`).
		WithArgs(int64(2)).
		WillReturnRows(roomRow(2, 9))

	tenant := &models.Tenant{HouseID: 1, RoomID: 2, FirstName: "Jean"}
	err := svc.CreateTenant(context.Background(), tenant)

	assert.ErrorIs(t, err, ErrRoomHouseMismatch)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTenant_MissingRoomPropagatesNotFound(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, house_id, name, type`).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)

	tenant := &models.Tenant{HouseID: 1, RoomID: 2, FirstName: "Jean"}
	err := svc.CreateTenant(context.Background(), tenant)

	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTenant_PublishesCreatedEvent(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, house_id, name, type`).
		WithArgs(int64(2)).
		WillReturnRows(roomRow(2, 1))

	mock.ExpectQuery(`INSERT INTO tenants`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	tenant := &models.Tenant{
		HouseID:          1,
		RoomID:           2,
		FirstName:        "Jean",
		LastName:         "Dupont",
		Phone:            "+221770000000",
		EntryDate:        "2025-06-01",
		PaymentFrequency: models.FrequencyMonthly,
		RentAmount:       50000,
	}
	err := svc.CreateTenant(context.Background(), tenant)

	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "rental.tenant.created", publisher.published[0].Subject())
	assert.Equal(t, int64(11), publisher.published[0].EntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTenantWithRoom_CommitsBothInserts(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, address, created_at`).
		WithArgs(int64(1)).
		WillReturnRows(houseRow(1, "Villa A"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO tenants`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	room := &models.Room{HouseID: 1, Name: "101", Type: "Studio"}
	tenant := &models.Tenant{
		FirstName:        "Jean",
		LastName:         "Dupont",
		Phone:            "+221770000000",
		EntryDate:        "2025-06-01",
		PaymentFrequency: models.FrequencyMonthly,
		RentAmount:       50000,
	}
	err := svc.CreateTenantWithRoom(context.Background(), room, tenant)

	require.NoError(t, err)
	assert.Equal(t, int64(2), tenant.RoomID)
	assert.Equal(t, int64(1), tenant.HouseID)
	require.Len(t, publisher.published, 2)
	assert.Equal(t, "rental.room.created", publisher.published[0].Subject())
	assert.Equal(t, "rental.tenant.created", publisher.published[1].Subject())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTenantWithRoom_RollsBackOnTenantFailure(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, address, created_at`).
		WithArgs(int64(1)).
		WillReturnRows(houseRow(1, "Villa A"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO tenants`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	room := &models.Room{HouseID: 1, Name: "101"}
	tenant := &models.Tenant{FirstName: "Jean"}
	err := svc.CreateTenantWithRoom(context.Background(), room, tenant)

	assert.Error(t, err)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_RejectsAlreadyPaidMonth(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, house_id, room_id`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "house_id", "room_id", "first_name", "last_name", "phone",
			"email", "entry_date", "payment_frequency", "rent_amount",
		}).AddRow(11, 1, 2, "Jean", "Dupont", "p", "", "2025-06-01", "monthly", 50000.0))

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(11), "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	payment := &models.Payment{TenantID: 11, Month: "2025-08", Amount: 50000}
	err := svc.RecordPayment(context.Background(), payment)

	assert.ErrorIs(t, err, ErrMonthAlreadyPaid)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_PublishesCreatedEvent(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, house_id, room_id`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "house_id", "room_id", "first_name", "last_name", "phone",
			"email", "entry_date", "payment_frequency", "rent_amount",
		}).AddRow(11, 1, 2, "Jean", "Dupont", "p", "", "2025-06-01", "monthly", 50000.0))

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(11), "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	payment := &models.Payment{TenantID: 11, Month: "2025-08", Amount: 50000}
	err := svc.RecordPayment(context.Background(), payment)

	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "rental.payment.created", publisher.published[0].Subject())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHouse_EmptyUpdateSkipsStoreAndEvents(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	err := svc.UpdateHouse(context.Background(), 1, storage.HouseUpdate{})

	require.NoError(t, err)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTenant_MoveValidatesTargetRoom(t *testing.T) {
	db, mock, publisher, svc := setupService(t)
	defer db.Close()

	// Current tenant lives in house 1; the update moves it to room 5,
	// which belongs to house 9
	mock.ExpectQuery(`SELECT id, house_id, room_id`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "house_id", "room_id", "first_name", "last_name", "phone",
			"email", "entry_date", "payment_frequency", "rent_amount",
		}).AddRow(11, 1, 2, "Jean", "Dupont", "p", "", "2025-06-01", "monthly", 50000.0))

	mock.ExpectQuery(`SELECT id, house_id, name, type`).
		WithArgs(int64(5)).
		WillReturnRows(roomRow(5, 9))

	roomID := int64(5)
	err := svc.UpdateTenant(context.Background(), 11, storage.TenantUpdate{RoomID: &roomID})

	assert.ErrorIs(t, err, ErrRoomHouseMismatch)
	assert.Empty(t, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}
