package domain

import (
	"errors"
	"strings"
)

// Error categories. Callers classify failures with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrBusinessRule    = errors.New("business rule violation")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage error")
	ErrPaymentDeclined = errors.New("payment declined")
)

// ErrSeatTaken is returned by the store when a commit targets a seat that is
// already occupied.
var ErrSeatTaken = &RejectionError{Reason: ReasonSeatUnavailable, Message: "One or more seats were just taken, please choose again"}

type RejectReason string

const (
	ReasonInvalidFormat        RejectReason = "InvalidFormat"
	ReasonTooManySeats         RejectReason = "TooManySeats"
	ReasonSeatUnavailable      RejectReason = "SeatUnavailable"
	ReasonIneligibleForExitRow RejectReason = "IneligibleForEmergencyRow"
)

// RejectionError is a seat selection that failed a business check.
type RejectionError struct {
	Reason  RejectReason
	Message string
	Seats   []string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	switch e.Reason {
	case ReasonSeatUnavailable:
		return ErrConflict
	case ReasonIneligibleForExitRow:
		return ErrBusinessRule
	default:
		return ErrInvalidInput
	}
}

func (e *RejectionError) Is(target error) bool {
	t, ok := target.(*RejectionError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

func Reject(reason RejectReason, message string, seats ...string) *RejectionError {
	return &RejectionError{Reason: reason, Message: message, Seats: seats}
}

func JoinSeats(seats []string) string {
	return strings.Join(seats, ", ")
}
