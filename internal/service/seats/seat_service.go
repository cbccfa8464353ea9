package seats

import (
	"context"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/repository"
	"github.com/Domenick1991/skyseats/internal/seatmap"
	"github.com/sirupsen/logrus"
)

type SeatUseCase interface {
	GetSeatMap(ctx context.Context, flightID string) (*SeatMap, error)
	ReserveSeats(ctx context.Context, input ReserveSeatsInput) (*ReserveSeatsResult, error)
}

type SelectionValidator interface {
	Validate(seats []string, passengers []domain.Passenger, flight *domain.Flight) error
}

type Reserver interface {
	Reserve(ctx context.Context, flightID string, seats []string) (*domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SeatMap struct {
	Seats             []domain.Seat `json:"seats"`
	EmergencyExitRows []int         `json:"emergencyExitRows"`
	PremiumSeats      []string      `json:"premiumSeats"`
}

type ReserveSeatsInput struct {
	FlightID   string
	Seats      []string
	Passengers []domain.Passenger
}

type ReserveSeatsResult struct {
	SeatAssignments     []string
	AdditionalCostCents int64
}

type SeatsReservedEvent struct {
	Type      string    `json:"type"`
	FlightID  string    `json:"flight_id"`
	Seats     []string  `json:"seats"`
	Available int       `json:"available_seats"`
	At        time.Time `json:"at"`
}

type SeatService struct {
	flights   repository.FlightRepository
	validator SelectionValidator
	reserver  Reserver
	pricing   *pricing.Engine
	producer  Producer
	topic     string
	logger    *logrus.Logger
}

type SeatServiceOption func(*SeatService)

func WithEvents(producer Producer, topic string) SeatServiceOption {
	return func(s *SeatService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewSeatService(
	flights repository.FlightRepository,
	validator SelectionValidator,
	reserver Reserver,
	engine *pricing.Engine,
	logger *logrus.Logger,
	opts ...SeatServiceOption,
) *SeatService {
	s := &SeatService{
		flights:   flights,
		validator: validator,
		reserver:  reserver,
		pricing:   engine,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SeatService) GetSeatMap(ctx context.Context, flightID string) (*SeatMap, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return &SeatMap{
		Seats:             seatmap.Generate(flight),
		EmergencyExitRows: nonNilInts(flight.EmergencyExitRows),
		PremiumSeats:      nonNilStrings(flight.PremiumSeats),
	}, nil
}

func (s *SeatService) ReserveSeats(ctx context.Context, input ReserveSeatsInput) (*ReserveSeatsResult, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Seats, input.Passengers, flight); err != nil {
		return nil, err
	}

	result := &ReserveSeatsResult{
		SeatAssignments:     nonNilStrings(input.Seats),
		AdditionalCostCents: s.pricing.PriceSeats(input.Seats, flight),
	}
	if len(input.Seats) == 0 {
		return result, nil
	}

	updated, err := s.reserver.Reserve(ctx, input.FlightID, input.Seats)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, input.Seats)
	return result, nil
}

func (s *SeatService) publish(ctx context.Context, flight *domain.Flight, seats []string) {
	if s.producer == nil || s.topic == "" || flight == nil {
		return
	}
	event := SeatsReservedEvent{
		Type:      "seats_reserved",
		FlightID:  flight.ID,
		Seats:     seats,
		Available: flight.AvailableSeats(),
		At:        time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.topic, flight.ID, event); err != nil {
		s.logger.WithError(err).WithField("flight_id", flight.ID).Warn("failed to publish seats_reserved event")
	}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

var _ SeatUseCase = (*SeatService)(nil)
