package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbook/rentbook-server/internal/models"
)

func tenantColumns() []string {
	return []string{
		"id", "house_id", "room_id", "first_name", "last_name", "phone",
		"email", "entry_date", "payment_frequency", "rent_amount",
	}
}

func TestCreateTenant_AssignsID(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tenants`).
		WithArgs(int64(1), int64(2), "Jean", "Dupont", "+221770000000", "",
			"2025-06-01", models.FrequencyMonthly, 50000.0).
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
	err := store.CreateTenant(context.Background(), tenant)

	require.NoError(t, err)
	assert.Equal(t, int64(11), tenant.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTenant_EmptyPayloadIssuesNoWrite(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	err := store.UpdateTenant(context.Background(), 11, TenantUpdate{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTenant_PartialBuildsOrderedPlaceholders(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tenants SET phone = \$1, rent_amount = \$2 WHERE id = \$3`).
		WithArgs("+221771111111", 60000.0, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	phone := "+221771111111"
	rent := 60000.0
	err := store.UpdateTenant(context.Background(), 11, TenantUpdate{Phone: &phone, RentAmount: &rent})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTenantDetails_WithHouseAndRoom(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	columns := append(tenantColumns(), "house_name", "house_address", "room_name", "room_type")
	rows := sqlmock.NewRows(columns).AddRow(
		11, 1, 2, "Jean", "Dupont", "+221770000000", "",
		"2025-06-01", "monthly", 50000.0,
		"Villa A", "12 Rue des Manguiers", "101", "Studio",
	)

	mock.ExpectQuery(`LEFT JOIN houses`).
		WithArgs(int64(11)).
		WillReturnRows(rows)

	details, err := store.GetTenantDetails(context.Background(), 11)

	require.NoError(t, err)
	require.NotNil(t, details.House)
	require.NotNil(t, details.Room)
	assert.Equal(t, "Villa A", details.House.Name)
	assert.Equal(t, "Studio", details.Room.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTenantDetails_OrphanedForeignKeysDegradeToAbsentSummaries(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	columns := append(tenantColumns(), "house_name", "house_address", "room_name", "room_type")
	rows := sqlmock.NewRows(columns).AddRow(
		11, 1, 2, "Jean", "Dupont", "+221770000000", "",
		"2025-06-01", "monthly", 50000.0,
		nil, nil, nil, nil,
	)

	mock.ExpectQuery(`LEFT JOIN houses`).
		WithArgs(int64(11)).
		WillReturnRows(rows)

	details, err := store.GetTenantDetails(context.Background(), 11)

	require.NoError(t, err)
	assert.Nil(t, details.House)
	assert.Nil(t, details.Room)
	assert.Equal(t, "Jean", details.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTenantDetails_CarriesPaymentProbe(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	columns := append(tenantColumns(), "house_name", "house_address", "room_name", "room_type", "paid_count")
	rows := sqlmock.NewRows(columns).
		AddRow(11, 1, 2, "Jean", "Dupont", "+221770000000", "",
			"2025-06-01", "monthly", 50000.0, "Villa A", "Addr", "101", "Studio", 1).
		AddRow(12, 1, 3, "Awa", "Ndiaye", "+221780000000", "awa@example.com",
			"2025-05-01", "monthly", 45000.0, "Villa A", "Addr", "102", "Chambre", 0)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments p`).
		WithArgs("2025-08").
		WillReturnRows(rows)

	list, err := store.ListTenantDetails(context.Background(), "2025-08")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].PaidForMonth)
	assert.False(t, list[1].PaidForMonth)
	assert.Equal(t, "awa@example.com", list[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
