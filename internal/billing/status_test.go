package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbook/rentbook-server/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		entryMonth   string
		currentMonth string
		monthPaid    bool
		want         models.PaymentStatus
	}{
		{
			name:         "entered this month, unpaid, still up to date",
			entryMonth:   "2025-08",
			currentMonth: "2025-08",
			monthPaid:    false,
			want:         models.StatusUpToDate,
		},
		{
			name:         "entry month in the future, unpaid, up to date",
			entryMonth:   "2025-09",
			currentMonth: "2025-08",
			monthPaid:    false,
			want:         models.StatusUpToDate,
		},
		{
			name:         "older tenant with current month paid",
			entryMonth:   "2025-06",
			currentMonth: "2025-08",
			monthPaid:    true,
			want:         models.StatusUpToDate,
		},
		{
			name:         "older tenant with current month unpaid",
			entryMonth:   "2025-06",
			currentMonth: "2025-08",
			monthPaid:    false,
			want:         models.StatusOverdue,
		},
		{
			name:         "year boundary, december entry against january",
			entryMonth:   "2024-12",
			currentMonth: "2025-01",
			monthPaid:    false,
			want:         models.StatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.entryMonth, tt.currentMonth, tt.monthPaid)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	// Recomputation with the same inputs must never change the answer
	for i := 0; i < 3; i++ {
		assert.Equal(t, models.StatusOverdue, Classify("2025-06", "2025-08", false))
	}
}

func TestMonthOf(t *testing.T) {
	month, err := MonthOf("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06", month)

	_, err = MonthOf("not-a-date")
	assert.Error(t, err)

	_, err = MonthOf("2025-06")
	assert.Error(t, err)
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-08", CurrentMonth(now))
}
