package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rentbook/rentbook-server/internal/models"
)

// ========== Room Methods ==========

// CreateRoom creates a new room
func (s *SQLStore) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `
        INSERT INTO rooms (house_id, name, type)
        VALUES ($1, $2, $3)
        RETURNING id`

	err := s.getDB().QueryRowContext(ctx, query,
		room.HouseID, room.Name, room.Type,
	).Scan(&room.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetRoom gets a room by ID
func (s *SQLStore) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	query := `
        SELECT id, house_id, name, type
        FROM rooms
        WHERE id = $1`

	room := &models.Room{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.HouseID, &room.Name, &room.Type,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return room, nil
}

// UpdateRoom rewrites only the columns present in the update
func (s *SQLStore) UpdateRoom(ctx context.Context, id int64, update RoomUpdate) error {
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
	if update.Type != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *update.Type)
	}

	argCount++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE rooms SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

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

// DeleteRoom deletes a room. Deleting a missing id is a silent no-op.
func (s *SQLStore) DeleteRoom(ctx context.Context, id int64) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id)
	return err
}

// ListRoomsByHouse lists the rooms of one house
func (s *SQLStore) ListRoomsByHouse(ctx context.Context, houseID int64) ([]*models.Room, error) {
	query := `
        SELECT id, house_id, name, type
        FROM rooms
        WHERE house_id = $1
        ORDER BY name`

	rows, err := s.getDB().QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room := &models.Room{}
		if err := rows.Scan(&room.ID, &room.HouseID, &room.Name, &room.Type); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}
