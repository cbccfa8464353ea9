// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes.
const (
	OutcomeReserved = "reserved"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	SeatReservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyseats_seat_reservations_total",
		Help: "Seat reservation commits by outcome",
	}, []string{"outcome"})

	SeatsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyseats_seats_reserved_total",
		Help: "Individual seats appended to flights",
	})

	Bookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyseats_bookings_total",
		Help: "Booking attempts by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyseats_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
