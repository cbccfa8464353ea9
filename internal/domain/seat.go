package domain

import "strconv"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
)

type Seat struct {
	ID              string     `json:"id"`
	Row             int        `json:"row"`
	Column          string     `json:"column"`
	Status          SeatStatus `json:"status"`
	IsEmergencyExit bool       `json:"isEmergencyExit"`
	IsPremium       bool       `json:"isPremium"`
}

func SeatID(row int, column byte) string {
	return strconv.Itoa(row) + string(column)
}

// ParseSeatID splits "14C" into 14 and "C". It does not check the layout.
func ParseSeatID(id string) (int, string, bool) {
	if len(id) < 2 {
		return 0, "", false
	}
	column := id[len(id)-1]
	if column < 'A' || column > 'Z' {
		return 0, "", false
	}
	row, err := strconv.Atoi(id[:len(id)-1])
	if err != nil || row <= 0 {
		return 0, "", false
	}
	return row, string(column), true
}
