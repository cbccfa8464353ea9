// Package manifest validates passenger records before booking.
package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/go-playground/validator/v10"
)

const MaxPassengers = 9

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{validate: v, now: time.Now}
}

// Validate checks every passenger and reports the first problem with its
// position in the manifest.
func (v *Validator) Validate(passengers []domain.Passenger) error {
	if len(passengers) == 0 {
		return fmt.Errorf("at least one passenger is required: %w", domain.ErrInvalidInput)
	}
	if len(passengers) > MaxPassengers {
		return fmt.Errorf("a booking may contain at most %d passengers: %w", MaxPassengers, domain.ErrInvalidInput)
	}

	today := v.now()
	for i, p := range passengers {
		if err := v.validate.Struct(p); err != nil {
			return fmt.Errorf("passenger %d: %s: %w", i+1, describe(err), domain.ErrInvalidInput)
		}
		birth, _ := p.BirthDate()
		if birth.After(today) {
			return fmt.Errorf("passenger %d: date of birth is in the future: %w", i+1, domain.ErrInvalidInput)
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "email":
		return field + " must be a valid email address"
	case "alphanum":
		return field + " must contain only letters and digits"
	case "min", "max":
		return fmt.Sprintf("%s length must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return field + " is invalid"
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
