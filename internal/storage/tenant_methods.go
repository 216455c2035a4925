package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rentbook/rentbook-server/internal/models"
)

// ========== Tenant Methods ==========

// CreateTenant creates a new tenant
func (s *SQLStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	query := `
        INSERT INTO tenants (
            house_id, room_id, first_name, last_name, phone, email,
            entry_date, payment_frequency, rent_amount
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        )
        RETURNING id`

	err := s.getDB().QueryRowContext(ctx, query,
		tenant.HouseID, tenant.RoomID, tenant.FirstName, tenant.LastName,
		tenant.Phone, tenant.Email, tenant.EntryDate,
		tenant.PaymentFrequency, tenant.RentAmount,
	).Scan(&tenant.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetTenant gets a tenant by ID
func (s *SQLStore) GetTenant(ctx context.Context, id int64) (*models.Tenant, error) {
	query := `
        SELECT id, house_id, room_id, first_name, last_name, phone, email,
               entry_date, payment_frequency, rent_amount
        FROM tenants
        WHERE id = $1`

	tenant := &models.Tenant{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&tenant.ID, &tenant.HouseID, &tenant.RoomID, &tenant.FirstName,
		&tenant.LastName, &tenant.Phone, &tenant.Email, &tenant.EntryDate,
		&tenant.PaymentFrequency, &tenant.RentAmount,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// UpdateTenant rewrites only the columns present in the update
func (s *SQLStore) UpdateTenant(ctx context.Context, id int64, update TenantUpdate) error {
	if update.Empty() {
		return nil
	}

	sets := []string{}
	args := []interface{}{}
	argCount := 0

	add := func(column string, value interface{}) {
		argCount++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
	}

	if update.HouseID != nil {
		add("house_id", *update.HouseID)
	}
	if update.RoomID != nil {
		add("room_id", *update.RoomID)
	}
	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.EntryDate != nil {
		add("entry_date", *update.EntryDate)
	}
	if update.PaymentFrequency != nil {
		add("payment_frequency", *update.PaymentFrequency)
	}
	if update.RentAmount != nil {
		add("rent_amount", *update.RentAmount)
	}

	argCount++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE tenants SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

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

// DeleteTenant deletes a tenant. Deleting a missing id is a silent
// no-op, and the tenant's payments stay put (no cascade).
func (s *SQLStore) DeleteTenant(ctx context.Context, id int64) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM tenants WHERE id = $1", id)
	return err
}

// ListTenants lists all tenants, most recent entry first
func (s *SQLStore) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	query := `
        SELECT id, house_id, room_id, first_name, last_name, phone, email,
               entry_date, payment_frequency, rent_amount
        FROM tenants
        ORDER BY entry_date DESC`

	return s.queryTenants(ctx, query)
}

// ListTenantsByHouse lists the tenants of one house
func (s *SQLStore) ListTenantsByHouse(ctx context.Context, houseID int64) ([]*models.Tenant, error) {
	query := `
        SELECT id, house_id, room_id, first_name, last_name, phone, email,
               entry_date, payment_frequency, rent_amount
        FROM tenants
        WHERE house_id = $1
        ORDER BY entry_date DESC`

	return s.queryTenants(ctx, query, houseID)
}

func (s *SQLStore) queryTenants(ctx context.Context, query string, args ...interface{}) ([]*models.Tenant, error) {
	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		err := rows.Scan(
			&tenant.ID, &tenant.HouseID, &tenant.RoomID, &tenant.FirstName,
			&tenant.LastName, &tenant.Phone, &tenant.Email, &tenant.EntryDate,
			&tenant.PaymentFrequency, &tenant.RentAmount,
		)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}

// GetTenantDetails gets a tenant left-joined against its house and
// room. Summaries for deleted houses or rooms come back absent.
func (s *SQLStore) GetTenantDetails(ctx context.Context, id int64) (*models.TenantDetails, error) {
	query := `
        SELECT t.id, t.house_id, t.room_id, t.first_name, t.last_name,
               t.phone, t.email, t.entry_date, t.payment_frequency, t.rent_amount,
               h.name, h.address, r.name, r.type
        FROM tenants t
        LEFT JOIN houses h ON t.house_id = h.id
        LEFT JOIN rooms r ON t.room_id = r.id
        WHERE t.id = $1`

	details := &models.TenantDetails{}
	var houseName, houseAddress, roomName, roomType sql.NullString

	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&details.ID, &details.HouseID, &details.RoomID, &details.FirstName,
		&details.LastName, &details.Phone, &details.Email, &details.EntryDate,
		&details.PaymentFrequency, &details.RentAmount,
		&houseName, &houseAddress, &roomName, &roomType,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	if houseName.Valid {
		details.House = &models.HouseRef{
			ID:      details.HouseID,
			Name:    houseName.String,
			Address: houseAddress.String,
		}
	}
	if roomName.Valid {
		details.Room = &models.RoomRef{
			ID:   details.RoomID,
			Name: roomName.String,
			Type: roomType.String,
		}
	}

	return details, nil
}

// ListTenantDetails lists all tenants left-joined against house and
// room, with a payment probe for the given month. One query replaces
// the per-tenant lookup loop while keeping the same output.
func (s *SQLStore) ListTenantDetails(ctx context.Context, month string) ([]*models.TenantDetails, error) {
	query := `
        SELECT t.id, t.house_id, t.room_id, t.first_name, t.last_name,
               t.phone, t.email, t.entry_date, t.payment_frequency, t.rent_amount,
               h.name, h.address, r.name, r.type,
               (SELECT COUNT(*) FROM payments p WHERE p.tenant_id = t.id AND p.month = $1)
        FROM tenants t
        LEFT JOIN houses h ON t.house_id = h.id
        LEFT JOIN rooms r ON t.room_id = r.id
        ORDER BY t.entry_date DESC`

	rows, err := s.getDB().QueryContext(ctx, query, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.TenantDetails
	for rows.Next() {
		details := &models.TenantDetails{}
		var houseName, houseAddress, roomName, roomType sql.NullString
		var paidCount int

		err := rows.Scan(
			&details.ID, &details.HouseID, &details.RoomID, &details.FirstName,
			&details.LastName, &details.Phone, &details.Email, &details.EntryDate,
			&details.PaymentFrequency, &details.RentAmount,
			&houseName, &houseAddress, &roomName, &roomType, &paidCount,
		)
		if err != nil {
			return nil, err
		}

		if houseName.Valid {
			details.House = &models.HouseRef{
				ID:      details.HouseID,
				Name:    houseName.String,
				Address: houseAddress.String,
			}
		}
		if roomName.Valid {
			details.Room = &models.RoomRef{
				ID:   details.RoomID,
				Name: roomName.String,
				Type: roomType.String,
			}
		}
		details.PaidForMonth = paidCount > 0

		list = append(list, details)
	}

	return list, rows.Err()
}
