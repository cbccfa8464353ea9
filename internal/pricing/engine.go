// Package pricing computes fares and seat surcharges. Amounts are in cents.
package pricing

import (
	"math"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// PriceFare applies the time-to-departure and occupancy multipliers to the
// base fare and rounds half-up to the cent.
func (e *Engine) PriceFare(flight *domain.Flight, departure, now time.Time) int64 {
	m := TimeMultiplier(DaysToDeparture(departure, now)) * OccupancyMultiplier(Occupancy(flight))
	return int64(math.Floor(float64(flight.BasePriceCents)*m + 0.5))
}

// PriceSeats sums the premium surcharge for every premium seat in the selection.
func (e *Engine) PriceSeats(seats []string, flight *domain.Flight) int64 {
	var total int64
	for _, id := range seats {
		if flight.IsPremium(id) {
			total += flight.PremiumSeatCostCents
		}
	}
	return total
}

// DaysToDeparture rounds partial days up, so anything inside the next 24h is one day.
func DaysToDeparture(departure, now time.Time) int {
	return int(math.Ceil(departure.Sub(now).Hours() / 24))
}

func TimeMultiplier(days int) float64 {
	switch {
	case days <= 7:
		return 1.3
	case days <= 14:
		return 1.2
	case days <= 30:
		return 1.1
	default:
		return 1.0
	}
}

func Occupancy(flight *domain.Flight) float64 {
	if flight.TotalSeats <= 0 {
		return 0
	}
	return float64(flight.TotalSeats-flight.AvailableSeats()) / float64(flight.TotalSeats)
}

func OccupancyMultiplier(occupancy float64) float64 {
	switch {
	case occupancy > 0.8:
		return 1.4
	case occupancy > 0.6:
		return 1.2
	default:
		return 1.0
	}
}

// ToAmount converts cents to a decimal currency amount for JSON responses.
func ToAmount(cents int64) float64 {
	return float64(cents) / 100
}
