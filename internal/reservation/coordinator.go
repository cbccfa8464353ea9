// Package reservation commits validated seat selections to the shared flight record.
package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/metrics"
	"github.com/sirupsen/logrus"
)

// SeatStore is the slice of the flight repository the coordinator needs.
type SeatStore interface {
	AppendOccupiedSeats(ctx context.Context, flightID string, seats []string) (*domain.Flight, error)
}

type Coordinator struct {
	store  SeatStore
	logger *logrus.Logger
}

func NewCoordinator(store SeatStore, logger *logrus.Logger) *Coordinator {
	return &Coordinator{store: store, logger: logger}
}

// Reserve appends seats to the flight's occupied set in one conditional write.
// It returns an error wrapping domain.ErrConflict when another request took
// one of the seats first, domain.ErrNotFound when the flight disappeared, and
// domain.ErrStorage for infrastructure failures. It never retries.
func (c *Coordinator) Reserve(ctx context.Context, flightID string, seats []string) (*domain.Flight, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	flight, err := c.store.AppendOccupiedSeats(ctx, flightID, seats)
	switch {
	case err == nil:
		metrics.SeatReservations.WithLabelValues(metrics.OutcomeReserved).Inc()
		metrics.SeatsReserved.Add(float64(len(seats)))
		c.logger.WithFields(logrus.Fields{"flight_id": flightID, "seats": seats}).Info("seats reserved")
		return flight, nil
	case errors.Is(err, domain.ErrConflict):
		metrics.SeatReservations.WithLabelValues(metrics.OutcomeConflict).Inc()
		c.logger.WithFields(logrus.Fields{"flight_id": flightID, "seats": seats}).WithError(err).Warn("seat commit rejected")
		return nil, err
	case errors.Is(err, domain.ErrNotFound):
		metrics.SeatReservations.WithLabelValues(metrics.OutcomeNotFound).Inc()
		c.logger.WithFields(logrus.Fields{"flight_id": flightID, "seats": seats}).WithError(err).Warn("seat commit rejected")
		return nil, err
	case errors.Is(err, domain.ErrStorage):
		metrics.SeatReservations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	default:
		metrics.SeatReservations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("reserve seats on %s: %w: %w", flightID, domain.ErrStorage, err)
	}
}
