// Package seatmap turns a flight's cabin layout and occupancy into a seat map.
package seatmap

import "github.com/Domenick1991/skyseats/internal/domain"

// Generate lists every seat of the flight in row-major order (1A..1F, 2A..).
// The result is rebuilt from the snapshot on each call and must not be cached.
func Generate(flight *domain.Flight) []domain.Seat {
	rows := flight.Layout.RowCount()
	columns := flight.Layout.ColumnLetters()

	occupied := toSet(flight.OccupiedSeats)
	premium := toSet(flight.PremiumSeats)

	seats := make([]domain.Seat, 0, rows*len(columns))
	for row := 1; row <= rows; row++ {
		exit := flight.IsEmergencyExitRow(row)
		for i := 0; i < len(columns); i++ {
			id := domain.SeatID(row, columns[i])
			status := domain.SeatAvailable
			if _, ok := occupied[id]; ok {
				status = domain.SeatOccupied
			}
			_, isPremium := premium[id]
			seats = append(seats, domain.Seat{
				ID:              id,
				Row:             row,
				Column:          string(columns[i]),
				Status:          status,
				IsEmergencyExit: exit,
				IsPremium:       isPremium,
			})
		}
	}
	return seats
}

// Contains reports whether seatID exists on the flight's layout.
func Contains(flight *domain.Flight, seatID string) bool {
	row, column, ok := domain.ParseSeatID(seatID)
	if !ok || row > flight.Layout.RowCount() {
		return false
	}
	columns := flight.Layout.ColumnLetters()
	for i := 0; i < len(columns); i++ {
		if string(columns[i]) == column {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
