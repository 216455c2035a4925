package models

import (
	"time"
)

// Payment represents one recorded rent payment covering one calendar
// month (Month is YYYY-MM). PaidAt is set at insertion and immutable.
type Payment struct {
	ID       int64     `json:"id" db:"id"`
	TenantID int64     `json:"tenantId" db:"tenant_id"`
	Month    string    `json:"month" db:"month"`
	Amount   float64   `json:"amount" db:"amount"`
	PaidAt   time.Time `json:"paidAt" db:"paid_at"`
}

// OverduePayment is one entry of the overdue list: a tenant who has no
// payment recorded for the reference month
type OverduePayment struct {
	Tenant TenantDetails `json:"tenant"`
	Month  string        `json:"month"`
	Amount float64       `json:"amount"`
}
