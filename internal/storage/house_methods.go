package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rentbook/rentbook-server/internal/models"
)

// ========== House Methods ==========

// CreateHouse creates a new house
func (s *SQLStore) CreateHouse(ctx context.Context, house *models.House) error {
	house.CreatedAt = time.Now()

	query := `
        INSERT INTO houses (name, address, created_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	err := s.getDB().QueryRowContext(ctx, query,
		house.Name, house.Address, house.CreatedAt,
	).Scan(&house.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetHouse gets a house by ID
func (s *SQLStore) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	query := `
        SELECT id, name, address, created_at
        FROM houses
        WHERE id = $1`

	house := &models.House{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&house.ID, &house.Name, &house.Address, &house.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return house, nil
}

// UpdateHouse rewrites only the columns present in the update. An
// empty update is a no-op without a store round-trip.
func (s *SQLStore) UpdateHouse(ctx context.Context, id int64, update HouseUpdate) error {
	if update.Empty() {
		return nil
	}

	sets := []string{}
	args := []interface{}{}
	argCount := 0

	if update.Name != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *update.Name)
	}
	if update.Address != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *update.Address)
	}

	argCount++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE houses SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

	result, err := s.getDB().ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteHouse deletes a house. Deleting a missing id is a silent
// no-op, and no cascade runs: dependent rooms and tenants stay put.
func (s *SQLStore) DeleteHouse(ctx context.Context, id int64) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM houses WHERE id = $1", id)
	return err
}

// ListHouses lists all houses, most recently created first
func (s *SQLStore) ListHouses(ctx context.Context) ([]*models.House, error) {
	query := `
        SELECT id, name, address, created_at
        FROM houses
        ORDER BY created_at DESC`

	rows, err := s.getDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var houses []*models.House
	for rows.Next() {
		house := &models.House{}
		if err := rows.Scan(&house.ID, &house.Name, &house.Address, &house.CreatedAt); err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}

	return houses, rows.Err()
}

// GetHouseAggregates returns the tenant count and total rent for one house
func (s *SQLStore) GetHouseAggregates(ctx context.Context, houseID int64) (int, float64, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(rent_amount), 0)
        FROM tenants
        WHERE house_id = $1`

	var count int
	var totalRent float64
	err := s.getDB().QueryRowContext(ctx, query, houseID).Scan(&count, &totalRent)
	if err != nil {
		return 0, 0, err
	}

	return count, totalRent, nil
}
