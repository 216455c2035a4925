package storage

import (
	"context"
	"fmt"
)

// DDL per dialect. Identities are store-assigned integers; entry_date
// is an ISO date string (YYYY-MM-DD) and month is YYYY-MM. No
// foreign-key cascade is configured: deleting a house leaves its rooms
// and tenants in place, and the join views degrade to an absent
// summary. Payment month uniqueness per tenant is advisory only.
var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS houses (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        address TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS rooms (
        id BIGSERIAL PRIMARY KEY,
        house_id BIGINT NOT NULL,
        name TEXT NOT NULL,
        type TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS tenants (
        id BIGSERIAL PRIMARY KEY,
        house_id BIGINT NOT NULL,
        room_id BIGINT NOT NULL,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        phone TEXT NOT NULL,
        email TEXT NOT NULL DEFAULT '',
        entry_date TEXT NOT NULL,
        payment_frequency TEXT NOT NULL,
        rent_amount DOUBLE PRECISION NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS payments (
        id BIGSERIAL PRIMARY KEY,
        tenant_id BIGINT NOT NULL,
        month TEXT NOT NULL,
        amount DOUBLE PRECISION NOT NULL,
        paid_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS change_log (
        id UUID PRIMARY KEY,
        occurred_at TIMESTAMPTZ NOT NULL,
        entity TEXT NOT NULL,
        entity_id BIGINT NOT NULL,
        action TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_house_id ON rooms (house_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_house_id ON tenants (house_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_tenant_month ON payments (tenant_id, month)`,
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS houses (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        address TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS rooms (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        house_id INTEGER NOT NULL,
        name TEXT NOT NULL,
        type TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS tenants (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        house_id INTEGER NOT NULL,
        room_id INTEGER NOT NULL,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        phone TEXT NOT NULL,
        email TEXT NOT NULL DEFAULT '',
        entry_date TEXT NOT NULL,
        payment_frequency TEXT NOT NULL,
        rent_amount REAL NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS payments (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        tenant_id INTEGER NOT NULL,
        month TEXT NOT NULL,
        amount REAL NOT NULL,
        paid_at TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS change_log (
        id TEXT PRIMARY KEY,
        occurred_at TIMESTAMP NOT NULL,
        entity TEXT NOT NULL,
        entity_id INTEGER NOT NULL,
        action TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_house_id ON rooms (house_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_house_id ON tenants (house_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_tenant_month ON payments (tenant_id, month)`,
}

// Migrate creates the schema if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	stmts := schemaPostgres
	if s.driver == "sqlite3" {
		stmts = schemaSQLite
	}

	for _, stmt := range stmts {
		if _, err := s.getDB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	return nil
}
