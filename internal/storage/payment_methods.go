package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rentbook/rentbook-server/internal/models"
)

// ========== Payment Methods ==========

// CreatePayment creates a new payment. PaidAt is set here and never
// rewritten. The store does not enforce month uniqueness per tenant;
// callers check IsMonthPaid first to avoid duplicates.
func (s *SQLStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	payment.PaidAt = time.Now()

	query := `
        INSERT INTO payments (tenant_id, month, amount, paid_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := s.getDB().QueryRowContext(ctx, query,
		payment.TenantID, payment.Month, payment.Amount, payment.PaidAt,
	).Scan(&payment.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetPayment gets a payment by ID
func (s *SQLStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	query := `
        SELECT id, tenant_id, month, amount, paid_at
        FROM payments
        WHERE id = $1`

	payment := &models.Payment{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&payment.ID, &payment.TenantID, &payment.Month,
		&payment.Amount, &payment.PaidAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePayment rewrites only the columns present in the update
func (s *SQLStore) UpdatePayment(ctx context.Context, id int64, update PaymentUpdate) error {
	if update.Empty() {
		return nil
	}

	sets := []string{}
	args := []interface{}{}
	argCount := 0

	if update.TenantID != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("tenant_id = $%d", argCount))
		args = append(args, *update.TenantID)
	}
	if update.Month != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("month = $%d", argCount))
		args = append(args, *update.Month)
	}
	if update.Amount != nil {
		argCount++
		sets = append(sets, fmt.Sprintf("amount = $%d", argCount))
		args = append(args, *update.Amount)
	}

	argCount++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE payments SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

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

// DeletePayment deletes a payment. Deleting a missing id is a silent no-op.
func (s *SQLStore) DeletePayment(ctx context.Context, id int64) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	return err
}

// ListPayments lists all payments, most recent first
func (s *SQLStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	query := `
        SELECT id, tenant_id, month, amount, paid_at
        FROM payments
        ORDER BY paid_at DESC`

	return s.queryPayments(ctx, query)
}

// ListPaymentsByTenant lists the payments of one tenant
func (s *SQLStore) ListPaymentsByTenant(ctx context.Context, tenantID int64) ([]*models.Payment, error) {
	query := `
        SELECT id, tenant_id, month, amount, paid_at
        FROM payments
        WHERE tenant_id = $1
        ORDER BY paid_at DESC`

	return s.queryPayments(ctx, query, tenantID)
}

func (s *SQLStore) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		err := rows.Scan(
			&payment.ID, &payment.TenantID, &payment.Month,
			&payment.Amount, &payment.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

// SumPayments sums the recorded payments of one tenant, zero if none
func (s *SQLStore) SumPayments(ctx context.Context, tenantID int64) (float64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM payments
        WHERE tenant_id = $1`

	var total float64
	err := s.getDB().QueryRowContext(ctx, query, tenantID).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// IsMonthPaid reports whether at least one payment row exists for the
// tenant and month
func (s *SQLStore) IsMonthPaid(ctx context.Context, tenantID int64, month string) (bool, error) {
	query := `
        SELECT COUNT(*)
        FROM payments
        WHERE tenant_id = $1 AND month = $2`

	var count int
	err := s.getDB().QueryRowContext(ctx, query, tenantID, month).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetLastPayment gets the most recently recorded payment of one
// tenant, or ErrNotFound if it has none
func (s *SQLStore) GetLastPayment(ctx context.Context, tenantID int64) (*models.Payment, error) {
	query := `
        SELECT id, tenant_id, month, amount, paid_at
        FROM payments
        WHERE tenant_id = $1
        ORDER BY paid_at DESC
        LIMIT 1`

	payment := &models.Payment{}
	err := s.getDB().QueryRowContext(ctx, query, tenantID).Scan(
		&payment.ID, &payment.TenantID, &payment.Month,
		&payment.Amount, &payment.PaidAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return payment, nil
}
