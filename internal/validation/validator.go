package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Validator validates request payload structs
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate walks the struct fields and applies the rules of their
// `validate` tags. Required string fields must be non-empty after
// trimming.
func (v *Validator) Validate(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validate expects a struct")
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("validate")

		if tag == "" {
			continue
		}

		if err := v.validateField(field, tag); err != nil {
			return fmt.Errorf("%s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// validateField validates a single field
func (v *Validator) validateField(field reflect.Value, tag string) error {
	rules := strings.Split(tag, ",")

	for _, rule := range rules {
		parts := strings.SplitN(rule, "=", 2)
		ruleName := parts[0]

		switch ruleName {
		case "required":
			if field.Kind() == reflect.String {
				if strings.TrimSpace(field.String()) == "" {
					return fmt.Errorf("field is required")
				}
			} else if field.IsZero() {
				return fmt.Errorf("field is required")
			}

		case "email":
			if field.Kind() == reflect.String && field.String() != "" {
				if !strings.Contains(field.String(), "@") {
					return fmt.Errorf("invalid email format")
				}
			}

		case "min":
			if len(parts) < 2 {
				continue
			}
			min, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				continue
			}
			switch field.Kind() {
			case reflect.String:
				if float64(len(field.String())) < min {
					return fmt.Errorf("minimum length is %s", parts[1])
				}
			case reflect.Int, reflect.Int64:
				if float64(field.Int()) < min {
					return fmt.Errorf("minimum is %s", parts[1])
				}
			case reflect.Float64:
				if field.Float() < min {
					return fmt.Errorf("minimum is %s", parts[1])
				}
			}

		case "gt":
			if len(parts) < 2 {
				continue
			}
			limit, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				continue
			}
			if field.Kind() == reflect.Float64 && field.Float() <= limit {
				return fmt.Errorf("must be greater than %s", parts[1])
			}

		case "date":
			if field.Kind() == reflect.String && field.String() != "" {
				if _, err := time.Parse("2006-01-02", field.String()); err != nil {
					return fmt.Errorf("invalid date, want YYYY-MM-DD")
				}
			}

		case "month":
			if field.Kind() == reflect.String && field.String() != "" {
				if _, err := time.Parse("2006-01", field.String()); err != nil {
					return fmt.Errorf("invalid month, want YYYY-MM")
				}
			}
		}
	}

	return nil
}
