package domain

import "time"

const (
	DefaultRows    = 30
	DefaultColumns = "ABCDEF"
)

// CabinLayout describes the seat grid of an aircraft. Zero values fall back
// to the 30 x ABCDEF single-aisle layout.
type CabinLayout struct {
	Rows    int    `json:"rows"`
	Columns string `json:"columns"`
}

func (l CabinLayout) RowCount() int {
	if l.Rows <= 0 {
		return DefaultRows
	}
	return l.Rows
}

func (l CabinLayout) ColumnLetters() string {
	if l.Columns == "" {
		return DefaultColumns
	}
	return l.Columns
}

type Flight struct {
	ID                   string      `json:"flightId"`
	FlightNumber         string      `json:"flightNumber"`
	FromAirport          string      `json:"from"`
	ToAirport            string      `json:"to"`
	DepartureTime        time.Time   `json:"departureTime"`
	ArrivalTime          time.Time   `json:"arrivalTime"`
	TotalSeats           int         `json:"totalSeats"`
	OccupiedSeats        []string    `json:"occupiedSeats"`
	EmergencyExitRows    []int       `json:"emergencyExitRows"`
	PremiumSeats         []string    `json:"premiumSeats"`
	PremiumSeatCostCents int64       `json:"premiumSeatCostCents"`
	BasePriceCents       int64       `json:"basePriceCents"`
	Layout               CabinLayout `json:"layout"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// AvailableSeats is derived from the occupied set so the two never drift apart.
func (f *Flight) AvailableSeats() int {
	n := f.TotalSeats - len(f.OccupiedSeats)
	if n < 0 {
		return 0
	}
	return n
}

func (f *Flight) IsOccupied(seatID string) bool {
	return contains(f.OccupiedSeats, seatID)
}

func (f *Flight) IsPremium(seatID string) bool {
	return contains(f.PremiumSeats, seatID)
}

func (f *Flight) IsEmergencyExitRow(row int) bool {
	for _, r := range f.EmergencyExitRows {
		if r == row {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
