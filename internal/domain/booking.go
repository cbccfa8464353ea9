package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID              string        `json:"bookingId"`
	FlightID        string        `json:"flightId"`
	Passengers      []Passenger   `json:"passengers"`
	SeatAssignments []string      `json:"seatAssignments"`
	FareCents       int64         `json:"fareCents"`
	SeatCostCents   int64         `json:"seatCostCents"`
	TotalCents      int64         `json:"totalCents"`
	PaymentID       string        `json:"paymentId"`
	Status          BookingStatus `json:"status"`
	Email           string        `json:"email"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
