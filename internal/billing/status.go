package billing

import (
	"fmt"
	"time"

	"github.com/rentbook/rentbook-server/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// CurrentMonth returns the calendar month of now as YYYY-MM
func CurrentMonth(now time.Time) string {
	return now.Format(monthLayout)
}

// MonthOf returns the calendar month of an ISO date (YYYY-MM-DD)
func MonthOf(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return t.Format(monthLayout), nil
}

// Classify derives a tenant's payment status for the given month.
//
// A tenant whose entry month is the current month or later is always
// up to date, whatever the payment history. Otherwise the tenant is
// overdue exactly when the current month has no recorded payment. Only
// the current month is ever examined: a tenant who missed three months
// shows one overdue entry, not three.
func Classify(entryMonth, currentMonth string, monthPaid bool) models.PaymentStatus {
	if entryMonth >= currentMonth {
		return models.StatusUpToDate
	}
	if monthPaid {
		return models.StatusUpToDate
	}
	return models.StatusOverdue
}
