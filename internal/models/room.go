package models

// Room represents a rentable unit within a house, occupied by at most
// one current tenant
type Room struct {
	ID      int64  `json:"id" db:"id"`
	HouseID int64  `json:"houseId" db:"house_id"`
	Name    string `json:"name" db:"name"`
	Type    string `json:"type" db:"type"`
}

// RoomRef is the denormalized room summary nested in tenant views
type RoomRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
