package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	passengers, err := json.Marshal(b.Passengers)
	if err != nil {
		return fmt.Errorf("encode passengers: %w", err)
	}

	err = r.db.QueryRow(ctx, `INSERT INTO bookings
		(id, flight_id, passengers, seat_assignments, fare_cents, seat_cost_cents, total_cents, payment_id, status, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		b.ID, b.FlightID, passengers, b.SeatAssignments, b.FareCents, b.SeatCostCents, b.TotalCents, b.PaymentID, b.Status, b.Email).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("booking %s: %w", b.ID, domain.ErrConflict)
		}
		return storageErr("create booking", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, flight_id, passengers, seat_assignments, fare_cents, seat_cost_cents, total_cents,
		payment_id, status, email, created_at, updated_at FROM bookings WHERE id=$1`, id)

	var b domain.Booking
	var passengers []byte
	if err := row.Scan(&b.ID, &b.FlightID, &passengers, &b.SeatAssignments, &b.FareCents, &b.SeatCostCents, &b.TotalCents,
		&b.PaymentID, &b.Status, &b.Email, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, storageErr("get booking", err)
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, fmt.Errorf("decode passengers: %w", err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
