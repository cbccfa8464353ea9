package repository

import (
	"fmt"

	"github.com/Domenick1991/skyseats/internal/domain"
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// seatsTaken builds the conflict returned when a commit overlaps the occupied set.
func seatsTaken(occupied, requested []string) error {
	set := make(map[string]struct{}, len(occupied))
	for _, s := range occupied {
		set[s] = struct{}{}
	}
	var taken []string
	for _, s := range requested {
		if _, ok := set[s]; ok {
			taken = append(taken, s)
		}
	}
	return domain.Reject(domain.ReasonSeatUnavailable, "Seats already occupied: "+domain.JoinSeats(taken), taken...)
}
