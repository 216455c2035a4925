package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentbook/rentbook-server/internal/models"
)

// ========== Change Log Methods ==========

// CreateChangeEntry creates a change log entry
func (s *SQLStore) CreateChangeEntry(ctx context.Context, entry *models.ChangeEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}

	query := `
        INSERT INTO change_log (id, occurred_at, entity, entity_id, action)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := s.getDB().ExecContext(ctx, query,
		entry.ID, entry.OccurredAt, entry.Entity, entry.EntityID, entry.Action,
	)

	return err
}

// ListChangeEntries lists change log entries, most recent first
func (s *SQLStore) ListChangeEntries(ctx context.Context, limit, offset int) ([]*models.ChangeEntry, int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM change_log").Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, occurred_at, entity, entity_id, action
        FROM change_log
        ORDER BY occurred_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := s.getDB().QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.ChangeEntry
	for rows.Next() {
		entry := &models.ChangeEntry{}
		err := rows.Scan(
			&entry.ID, &entry.OccurredAt, &entry.Entity,
			&entry.EntityID, &entry.Action,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, count, rows.Err()
}
