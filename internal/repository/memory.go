package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
)

// MemoryFlightRepository keeps flights in process. It backs tests and the
// "memory" database driver used for local runs.
type MemoryFlightRepository struct {
	mu      sync.Mutex
	flights map[string]*domain.Flight
}

func NewMemoryFlightRepository(flights ...domain.Flight) *MemoryFlightRepository {
	r := &MemoryFlightRepository{flights: make(map[string]*domain.Flight, len(flights))}
	for i := range flights {
		f := copyFlight(&flights[i])
		r.flights[f.ID] = f
	}
	return r
}

func (r *MemoryFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.Search(ctx, SearchCriteria{})
}

func (r *MemoryFlightRepository) Search(_ context.Context, c SearchCriteria) ([]domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flights := make([]domain.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		if c.From != "" && f.FromAirport != c.From {
			continue
		}
		if c.To != "" && f.ToAirport != c.To {
			continue
		}
		if !c.Date.IsZero() && !sameDay(f.DepartureTime, c.Date) {
			continue
		}
		flights = append(flights, *copyFlight(f))
	}
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights, nil
}

func (r *MemoryFlightRepository) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return copyFlight(f), nil
}

func (r *MemoryFlightRepository) AppendOccupiedSeats(_ context.Context, flightID string, seats []string) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", flightID, domain.ErrNotFound)
	}
	for _, s := range seats {
		if f.IsOccupied(s) {
			return nil, seatsTaken(f.OccupiedSeats, seats)
		}
	}
	f.OccupiedSeats = append(f.OccupiedSeats, seats...)
	f.UpdatedAt = time.Now()
	return copyFlight(f), nil
}

// Delete removes a flight; used to simulate a record vanishing between read and commit.
func (r *MemoryFlightRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flights, id)
}

func copyFlight(f *domain.Flight) *domain.Flight {
	c := *f
	c.OccupiedSeats = append([]string(nil), f.OccupiedSeats...)
	c.EmergencyExitRows = append([]int(nil), f.EmergencyExitRows...)
	c.PremiumSeats = append([]string(nil), f.PremiumSeats...)
	return &c
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)

type MemoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *MemoryBookingRepository) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[b.ID]; exists {
		return fmt.Errorf("booking %s: %w", b.ID, domain.ErrConflict)
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
