package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbook/rentbook-server/internal/models"
)

func setupMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *SQLStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewWithDB(db)
}

func TestCreateHouse_AssignsIDAndTimestamp(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO houses`).
		WithArgs("Villa A", "12 Rue des Manguiers", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	house := &models.House{Name: "Villa A", Address: "12 Rue des Manguiers"}
	err := store.CreateHouse(context.Background(), house)

	require.NoError(t, err)
	assert.Equal(t, int64(7), house.ID)
	assert.False(t, house.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHouse_NotFound(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, address, created_at`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	house, err := store.GetHouse(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, house)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHouses_OrderedByCreation(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "address", "created_at"}).
		AddRow(2, "Villa B", "Addr B", now).
		AddRow(1, "Villa A", "Addr A", now.Add(-time.Hour))

	mock.ExpectQuery(`ORDER BY created_at DESC`).WillReturnRows(rows)

	houses, err := store.ListHouses(context.Background())

	require.NoError(t, err)
	require.Len(t, houses, 2)
	assert.Equal(t, "Villa B", houses[0].Name)
	assert.Equal(t, "Villa A", houses[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHouse_PartialOnlyTouchesGivenColumns(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE houses SET name = \$1 WHERE id = \$2`).
		WithArgs("Villa A bis", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Villa A bis"
	err := store.UpdateHouse(context.Background(), 1, HouseUpdate{Name: &name})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHouse_EmptyPayloadIssuesNoWrite(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	// No expectations: an empty update must not reach the store
	err := store.UpdateHouse(context.Background(), 1, HouseUpdate{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHouse_MissingIDReturnsNotFound(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE houses`).
		WithArgs("x", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	name := "x"
	err := store.UpdateHouse(context.Background(), 42, HouseUpdate{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHouse_MissingIDIsSilentNoop(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM houses`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteHouse(context.Background(), 42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHouseAggregates(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(rent_amount\), 0\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 150000.0))

	count, totalRent, err := store.GetHouseAggregates(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 150000.0, totalRent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
