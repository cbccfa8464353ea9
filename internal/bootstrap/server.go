package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/skyseats/api"
	"github.com/Domenick1991/skyseats/config"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/Domenick1991/skyseats/internal/service/flights"
	"github.com/Domenick1991/skyseats/internal/service/seats"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type Services struct {
	Seats    seats.SeatUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Manifest booking.ManifestValidator
	// Idempotency is optional; booking creation is unguarded without it.
	Idempotency api.IdempotencyStore
}

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *logrus.Logger) error {
	srv := NewServer(cfg, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", cfg.HTTP.Address).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewServer(cfg *config.Config, svc Services, logger *logrus.Logger) *http.Server {
	routerCfg := api.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SwaggerDir:     cfg.HTTP.SwaggerDir,
	}
	if svc.Idempotency != nil {
		ttl := time.Duration(cfg.Booking.IdempotencyTTLMinutes) * time.Minute
		routerCfg.Idempotency = api.Idempotency(svc.Idempotency, ttl, logger)
	}

	router := api.NewRouter(routerCfg, api.Handlers{
		Seats:      api.NewSeatHandler(svc.Seats, logger),
		Flights:    api.NewFlightHandler(svc.Flights, logger),
		Passengers: api.NewPassengerHandler(svc.Manifest, logger),
		Bookings:   api.NewBookingHandler(svc.Bookings, logger),
	}, logger)

	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
