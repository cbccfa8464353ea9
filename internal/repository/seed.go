package repository

import (
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
)

// DemoFlights returns the catalogue used when the service runs without a
// database. Departures are relative to now so every pricing tier shows up.
func DemoFlights(now time.Time) []domain.Flight {
	day := 24 * time.Hour
	base := now.Truncate(time.Hour)

	return []domain.Flight{
		{
			ID:                   "FL001",
			FlightNumber:         "SK101",
			FromAirport:          "SVO",
			ToAirport:            "LED",
			DepartureTime:        base.Add(5 * day),
			ArrivalTime:          base.Add(5*day + 90*time.Minute),
			TotalSeats:           180,
			OccupiedSeats:        []string{"1A", "1B", "2C", "5D", "7F", "10A", "12B", "14C", "20A", "25F"},
			EmergencyExitRows:    []int{12, 13},
			PremiumSeats:         []string{"1A", "1B", "1C", "1D", "1E", "1F", "2A", "2B", "2C", "2D", "2E", "2F"},
			PremiumSeatCostCents: 5000,
			BasePriceCents:       20000,
		},
		{
			ID:                   "FL002",
			FlightNumber:         "SK205",
			FromAirport:          "LED",
			ToAirport:            "AER",
			DepartureTime:        base.Add(12 * day),
			ArrivalTime:          base.Add(12*day + 3*time.Hour),
			TotalSeats:           150,
			OccupiedSeats:        []string{},
			EmergencyExitRows:    []int{10},
			PremiumSeats:         []string{"1A", "1B", "1C", "1D"},
			PremiumSeatCostCents: 3500,
			BasePriceCents:       15000,
			Layout:               domain.CabinLayout{Rows: 25, Columns: "ABCDEF"},
		},
		{
			ID:                   "FL003",
			FlightNumber:         "SK330",
			FromAirport:          "SVO",
			ToAirport:            "KZN",
			DepartureTime:        base.Add(45 * day),
			ArrivalTime:          base.Add(45*day + 85*time.Minute),
			TotalSeats:           96,
			OccupiedSeats:        []string{"3A", "3B"},
			EmergencyExitRows:    []int{8},
			PremiumSeats:         []string{"1A", "1B", "1C", "1D"},
			PremiumSeatCostCents: 2500,
			BasePriceCents:       9900,
			Layout:               domain.CabinLayout{Rows: 24, Columns: "ABCD"},
		},
	}
}
