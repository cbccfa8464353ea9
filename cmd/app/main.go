package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skyseats/api"
	"github.com/Domenick1991/skyseats/config"
	"github.com/Domenick1991/skyseats/internal/bootstrap"
	"github.com/Domenick1991/skyseats/internal/cache"
	"github.com/Domenick1991/skyseats/internal/kafka"
	"github.com/Domenick1991/skyseats/internal/logger"
	"github.com/Domenick1991/skyseats/internal/manifest"
	"github.com/Domenick1991/skyseats/internal/payment"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/rabbitmq"
	"github.com/Domenick1991/skyseats/internal/repository"
	"github.com/Domenick1991/skyseats/internal/reservation"
	"github.com/Domenick1991/skyseats/internal/seating"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/Domenick1991/skyseats/internal/service/flights"
	"github.com/Domenick1991/skyseats/internal/service/seats"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type eventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flightRepo, bookingRepo, closeDB := openRepositories(ctx, cfg, log)
	defer closeDB()

	publisher := openPublisher(cfg, log)
	if publisher != nil {
		defer publisher.Close()
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	var flightCache flights.FlightCache
	var idempotency api.IdempotencyStore
	if err := redisCache.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, running without flight cache and idempotency")
	} else {
		flightCache = redisCache
		idempotency = redisCache
	}

	engine := pricing.NewEngine()
	manifestValidator := manifest.NewValidator()
	coordinator := reservation.NewCoordinator(flightRepo, log)
	seatValidator := seating.NewValidator()

	var seatOpts []seats.SeatServiceOption
	var bookingProducer booking.Producer
	if publisher != nil {
		seatOpts = append(seatOpts, seats.WithEvents(publisher, cfg.Kafka.SeatEventsTopic))
		bookingProducer = publisher
	}

	svc := bootstrap.Services{
		Seats:   seats.NewSeatService(flightRepo, seatValidator, coordinator, engine, log, seatOpts...),
		Flights: flights.NewFlightService(flightRepo, flightCache, engine, log),
		Bookings: booking.NewBookingService(
			bookingRepo,
			flightRepo,
			manifestValidator,
			seatValidator,
			coordinator,
			payment.NewMockGateway(),
			engine,
			bookingProducer,
			cfg.Kafka.BookingTopic,
			log,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithCurrency(cfg.Booking.Currency),
		),
		Manifest:    manifestValidator,
		Idempotency: idempotency,
	}

	if err := bootstrap.Run(ctx, cfg, svc, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.FlightRepository, repository.BookingRepository, func()) {
	if cfg.Database.Driver == "memory" {
		log.Info("using in-memory repositories with demo flights")
		return repository.NewMemoryFlightRepository(repository.DemoFlights(time.Now())...),
			repository.NewMemoryBookingRepository(),
			func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}
	return repository.NewFlightRepository(pool), repository.NewBookingRepository(pool), pool.Close
}

// openPublisher returns nil when events are disabled, never a typed nil.
func openPublisher(cfg *config.Config, log *logrus.Logger) eventPublisher {
	switch cfg.Events.Driver {
	case "kafka":
		return kafka.NewProducer(cfg.Kafka.Brokers, log)
	case "rabbitmq":
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, events disabled")
			return nil
		}
		return p
	default:
		log.WithField("driver", cfg.Events.Driver).Info("events disabled")
		return nil
	}
}
