package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SearchCriteria struct {
	From string
	To   string
	// Date limits results to departures on that calendar day (UTC). Zero means any day.
	Date time.Time
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	// AppendOccupiedSeats atomically adds seats to the flight's occupied set.
	// It fails with domain.ErrNotFound when the flight is gone and with a
	// domain.ErrSeatTaken rejection when any seat is already occupied.
	AppendOccupiedSeats(ctx context.Context, flightID string, seats []string) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, from_airport, to_airport, departure_time, arrival_time, total_seats,
	occupied_seats, emergency_exit_rows, premium_seats, premium_seat_cost_cents, base_price_cents,
	cabin_rows, cabin_columns, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, storageErr("list flights", err)
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, c SearchCriteria) ([]domain.Flight, error) {
	var from, to *time.Time
	if !c.Date.IsZero() {
		start := time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		from, to = &start, &end
	}
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR from_airport = $1)
		  AND ($2 = '' OR to_airport = $2)
		  AND ($3::timestamptz IS NULL OR departure_time >= $3)
		  AND ($4::timestamptz IS NULL OR departure_time < $4)
		ORDER BY departure_time`, c.From, c.To, from, to)
	if err != nil {
		return nil, storageErr("search flights", err)
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
		}
		return nil, storageErr("get flight", err)
	}
	return f, nil
}

// AppendOccupiedSeats relies on row locking: a concurrent update on the same
// flight re-evaluates the overlap guard against the committed seat set.
func (r *PGFlightRepository) AppendOccupiedSeats(ctx context.Context, flightID string, seats []string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights
		SET occupied_seats = occupied_seats || $2::text[], updated_at = now()
		WHERE id = $1 AND NOT (occupied_seats && $2::text[])
		RETURNING `+flightColumns, flightID, seats)
	f, err := scanFlight(row)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageErr("append occupied seats", err)
	}

	var occupied []string
	if err := r.db.QueryRow(ctx, `SELECT occupied_seats FROM flights WHERE id=$1`, flightID).Scan(&occupied); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %s: %w", flightID, domain.ErrNotFound)
		}
		return nil, storageErr("check occupied seats", err)
	}
	return nil, seatsTaken(occupied, seats)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(row scanner) (*domain.Flight, error) {
	var f domain.Flight
	var exitRows []int32
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats,
		&f.OccupiedSeats, &exitRows, &f.PremiumSeats, &f.PremiumSeatCostCents, &f.BasePriceCents,
		&f.Layout.Rows, &f.Layout.Columns, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.EmergencyExitRows = make([]int, 0, len(exitRows))
	for _, r := range exitRows {
		f.EmergencyExitRows = append(f.EmergencyExitRows, int(r))
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, storageErr("scan flight", err)
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read flights", err)
	}
	return flights, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
