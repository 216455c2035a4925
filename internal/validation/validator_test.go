package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantPayload struct {
	FirstName  string  `validate:"required"`
	Email      string  `validate:"email"`
	EntryDate  string  `validate:"required,date"`
	RentAmount float64 `validate:"required,gt=0"`
}

func TestValidate_AcceptsValidPayload(t *testing.T) {
	v := NewValidator()

	payload := tenantPayload{
		FirstName:  "Jean",
		Email:      "jean@example.com",
		EntryDate:  "2025-06-01",
		RentAmount: 50000,
	}

	assert.NoError(t, v.Validate(&payload))
}

func TestValidate_RequiredRejectsWhitespaceOnly(t *testing.T) {
	v := NewValidator()

	payload := tenantPayload{
		FirstName:  "   ",
		EntryDate:  "2025-06-01",
		RentAmount: 50000,
	}

	err := v.Validate(&payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FirstName")
}

func TestValidate_EmailSkipsEmptyValue(t *testing.T) {
	v := NewValidator()

	payload := tenantPayload{
		FirstName:  "Jean",
		Email:      "",
		EntryDate:  "2025-06-01",
		RentAmount: 50000,
	}

	assert.NoError(t, v.Validate(&payload))
}

func TestValidate_EmailRejectsMalformedValue(t *testing.T) {
	v := NewValidator()

	payload := tenantPayload{
		FirstName:  "Jean",
		Email:      "not-an-email",
		EntryDate:  "2025-06-01",
		RentAmount: 50000,
	}

	err := v.Validate(&payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestValidate_DateRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"iso date", "2025-06-01", true},
		{"month only", "2025-06", false},
		{"garbage", "june first", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tenantPayload{
				FirstName:  "Jean",
				EntryDate:  tt.value,
				RentAmount: 50000,
			}
			err := v.Validate(&payload)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_MonthRule(t *testing.T) {
	v := NewValidator()

	type paymentPayload struct {
		Month string `validate:"required,month"`
	}

	assert.NoError(t, v.Validate(&paymentPayload{Month: "2025-08"}))
	assert.Error(t, v.Validate(&paymentPayload{Month: "2025-08-01"}))
	assert.Error(t, v.Validate(&paymentPayload{Month: "august"}))
}

func TestValidate_GtRejectsZeroAmount(t *testing.T) {
	v := NewValidator()

	type amountPayload struct {
		Amount float64 `validate:"gt=0"`
	}

	assert.Error(t, v.Validate(&amountPayload{Amount: 0}))
	assert.Error(t, v.Validate(&amountPayload{Amount: -10}))
	assert.NoError(t, v.Validate(&amountPayload{Amount: 0.5}))
}

func TestValidate_MinRule(t *testing.T) {
	v := NewValidator()

	type namePayload struct {
		Name string `validate:"min=2"`
	}

	assert.Error(t, v.Validate(&namePayload{Name: "A"}))
	assert.NoError(t, v.Validate(&namePayload{Name: "AB"}))
}

func TestValidate_RejectsNonStruct(t *testing.T) {
	v := NewValidator()

	assert.Error(t, v.Validate("just a string"))
}
