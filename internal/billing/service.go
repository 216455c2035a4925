package billing

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// Service computes payment statuses and house statistics. Statuses are
// never persisted; every read recomputes them against the clock.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// NewService creates a billing service
func NewService(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceAt creates a billing service with a fixed clock. Used by tests.
func NewServiceAt(store storage.Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// statusOf classifies one tenant view for the given month. An entry
// date that does not parse counts as entered this month, so the tenant
// stays up to date rather than being flagged on bad data.
func statusOf(details *models.TenantDetails, month string) models.PaymentStatus {
	entryMonth, err := MonthOf(details.EntryDate)
	if err != nil {
		log.Warn().
			Int64("tenant_id", details.ID).
			Str("entry_date", details.EntryDate).
			Msg("Unparseable entry date, treating tenant as up to date")
		return models.StatusUpToDate
	}
	return Classify(entryMonth, month, details.PaidForMonth)
}

// ListTenantsWithStatus returns every tenant joined with house and
// room summaries and a freshly computed payment status
func (s *Service) ListTenantsWithStatus(ctx context.Context) ([]*models.TenantDetails, error) {
	month := CurrentMonth(s.now())

	list, err := s.store.ListTenantDetails(ctx, month)
	if err != nil {
		return nil, err
	}

	for _, details := range list {
		details.PaymentStatus = statusOf(details, month)
	}

	return list, nil
}

// TenantDetails returns one tenant's detail view with status and last payment
func (s *Service) TenantDetails(ctx context.Context, id int64) (*models.TenantDetails, error) {
	details, err := s.store.GetTenantDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	month := CurrentMonth(s.now())

	paid, err := s.store.IsMonthPaid(ctx, id, month)
	if err != nil {
		return nil, err
	}
	details.PaidForMonth = paid
	details.PaymentStatus = statusOf(details, month)

	last, err := s.store.GetLastPayment(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	details.LastPayment = last

	return details, nil
}

// OverdueList returns one entry per tenant overdue for the current
// month, each carrying the current month and the tenant's rent amount
func (s *Service) OverdueList(ctx context.Context) ([]models.OverduePayment, error) {
	month := CurrentMonth(s.now())

	list, err := s.store.ListTenantDetails(ctx, month)
	if err != nil {
		return nil, err
	}

	var overdue []models.OverduePayment
	for _, details := range list {
		details.PaymentStatus = statusOf(details, month)
		if details.PaymentStatus != models.StatusOverdue {
			continue
		}
		overdue = append(overdue, models.OverduePayment{
			Tenant: *details,
			Month:  month,
			Amount: details.RentAmount,
		})
	}

	return overdue, nil
}

// HouseStats composes every house with its tenant count, total rent
// and overdue count. A failed aggregate degrades that single house to
// zero-valued stats; one bad row does not fail the batch.
func (s *Service) HouseStats(ctx context.Context) ([]*models.HouseStats, error) {
	houses, err := s.store.ListHouses(ctx)
	if err != nil {
		return nil, err
	}

	month := CurrentMonth(s.now())

	overdueByHouse := make(map[int64]int)
	details, err := s.store.ListTenantDetails(ctx, month)
	if err != nil {
		log.Warn().Err(err).Msg("Overdue counts unavailable, reporting zero")
	} else {
		for _, d := range details {
			if statusOf(d, month) == models.StatusOverdue {
				overdueByHouse[d.HouseID]++
			}
		}
	}

	stats := make([]*models.HouseStats, 0, len(houses))
	for _, house := range houses {
		entry := &models.HouseStats{House: *house}

		count, totalRent, err := s.store.GetHouseAggregates(ctx, house.ID)
		if err != nil {
			log.Warn().Err(err).Int64("house_id", house.ID).Msg("House aggregates failed, reporting zero stats")
			stats = append(stats, entry)
			continue
		}

		entry.TenantCount = count
		entry.TotalRent = totalRent
		entry.OverdueCount = overdueByHouse[house.ID]
		stats = append(stats, entry)
	}

	return stats, nil
}

// TotalPaid sums the recorded payments of one tenant
func (s *Service) TotalPaid(ctx context.Context, tenantID int64) (float64, error) {
	return s.store.SumPayments(ctx, tenantID)
}
