package models

// PaymentFrequency represents a tenant's rent cadence
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemestrial PaymentFrequency = "semestrial"
	FrequencyAnnual     PaymentFrequency = "annual"
)

// Valid reports whether f is one of the supported cadences
func (f PaymentFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemestrial, FrequencyAnnual:
		return true
	}
	return false
}

// PaymentStatus is the derived classification recomputed on every read
type PaymentStatus string

const (
	StatusUpToDate PaymentStatus = "up_to_date"
	StatusOverdue  PaymentStatus = "overdue"
)

// Tenant represents a person renting a room
//
// EntryDate is an ISO date (YYYY-MM-DD); the entry month derived from it
// drives the payment-status computation.
type Tenant struct {
	ID      int64 `json:"id" db:"id"`
	HouseID int64 `json:"houseId" db:"house_id"`
	RoomID  int64 `json:"roomId" db:"room_id"`

	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
	Email     string `json:"email,omitempty" db:"email"`

	EntryDate        string           `json:"entryDate" db:"entry_date"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency" db:"payment_frequency"`
	RentAmount       float64          `json:"rentAmount" db:"rent_amount"`
}

// TenantDetails is a tenant left-joined against its house and room.
// House and Room are nil when the referenced row no longer exists —
// orphaned foreign keys degrade to an absent summary, they never fail
// the view.
type TenantDetails struct {
	Tenant

	House *HouseRef `json:"house,omitempty"`
	Room  *RoomRef  `json:"room,omitempty"`

	PaidForMonth  bool          `json:"paidForMonth"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	LastPayment   *Payment      `json:"lastPayment,omitempty"`
}
