// Package seating checks a seat selection against a flight snapshot.
package seating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/seatmap"
)

const (
	MinExitRowAge = 15
	MaxExitRowAge = 75
)

var seatPattern = regexp.MustCompile(`^([1-9]|[1-9][0-9])[A-F]$`)

// DecodeSelection is the shape check: the raw value must be a JSON array of
// seat id strings. A missing or null value is rejected as well.
func DecodeSelection(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.Reject(domain.ReasonInvalidFormat, "Seats must be an array")
	}
	seats := make([]string, 0)
	if err := json.Unmarshal(trimmed, &seats); err != nil {
		return nil, domain.Reject(domain.ReasonInvalidFormat, "Seats must be an array of seat identifiers")
	}
	return seats, nil
}

type Validator struct {
	now func() time.Time
}

type Option func(*Validator)

func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the selection rules in a fixed order and returns the first
// failure as a *domain.RejectionError.
func (v *Validator) Validate(seats []string, passengers []domain.Passenger, flight *domain.Flight) error {
	if len(seats) == 0 {
		return nil
	}

	if len(seats) > len(passengers) {
		return domain.Reject(domain.ReasonTooManySeats, "Cannot select more seats than passengers")
	}

	for _, id := range seats {
		if !seatPattern.MatchString(id) {
			return domain.Reject(domain.ReasonInvalidFormat, fmt.Sprintf("Invalid seat format: %s", id), id)
		}
	}

	seen := make(map[string]struct{}, len(seats))
	for _, id := range seats {
		if !seatmap.Contains(flight, id) {
			return domain.Reject(domain.ReasonInvalidFormat, fmt.Sprintf("Seat %s does not exist on this aircraft", id), id)
		}
		if _, dup := seen[id]; dup {
			return domain.Reject(domain.ReasonInvalidFormat, fmt.Sprintf("Seat %s selected more than once", id), id)
		}
		seen[id] = struct{}{}
	}

	var taken []string
	for _, id := range seats {
		if flight.IsOccupied(id) {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		return domain.Reject(domain.ReasonSeatUnavailable, "Seats already occupied: "+domain.JoinSeats(taken), taken...)
	}

	now := v.now()
	for i, id := range seats {
		row, _, _ := domain.ParseSeatID(id)
		if !flight.IsEmergencyExitRow(row) {
			continue
		}
		birth, err := passengers[i].BirthDate()
		if err != nil {
			return domain.Reject(domain.ReasonInvalidFormat, fmt.Sprintf("Invalid date of birth for passenger assigned to seat %s", id), id)
		}
		if age := domain.AgeAt(birth, now); age < MinExitRowAge || age > MaxExitRowAge {
			return domain.Reject(domain.ReasonIneligibleForExitRow,
				fmt.Sprintf("Passenger assigned to seat %s is not eligible for an emergency exit row (age must be %d-%d)", id, MinExitRowAge, MaxExitRowAge), id)
		}
	}

	return nil
}
