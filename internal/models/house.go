package models

import (
	"time"
)

// House represents a managed property containing rentable rooms
type House struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
}

// HouseStats is a house row composed with tenant aggregates
type HouseStats struct {
	House

	TenantCount  int     `json:"tenantCount"`
	TotalRent    float64 `json:"totalRent"`
	OverdueCount int     `json:"overdueCount"`
}

// HouseRef is the denormalized house summary nested in tenant views
type HouseRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
