package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/kafka"
	"github.com/Domenick1991/skyseats/internal/metrics"
	"github.com/Domenick1991/skyseats/internal/payment"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type ManifestValidator interface {
	Validate(passengers []domain.Passenger) error
}

type SeatValidator interface {
	Validate(seats []string, passengers []domain.Passenger, flight *domain.Flight) error
}

type SeatReserver interface {
	Reserve(ctx context.Context, flightID string, seats []string) (*domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	FlightID   string
	Passengers []domain.Passenger
	Seats      []string
	Email      string
	Card       payment.Card
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	manifest           ManifestValidator
	seats              SeatValidator
	reserver           SeatReserver
	gateway            payment.Gateway
	pricing            *pricing.Engine
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	currency           string
	logger             *logrus.Logger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithCurrency(currency string) BookingServiceOption {
	return func(s *BookingService) {
		s.currency = currency
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	manifest ManifestValidator,
	seats SeatValidator,
	reserver SeatReserver,
	gateway payment.Gateway,
	engine *pricing.Engine,
	producer Producer,
	bookingTopic string,
	logger *logrus.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		manifest:     manifest,
		seats:        seats,
		reserver:     reserver,
		gateway:      gateway,
		pricing:      engine,
		producer:     producer,
		bookingTopic: bookingTopic,
		currency:     "USD",
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking validates the manifest, card and seat selection, charges the
// total, commits the seats and persists the booking. The seats must be free:
// the booking takes them itself. When another request commits one of them
// between validation and commit the charge is refunded and the conflict
// returned.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.manifest.Validate(input.Passengers); err != nil {
		return nil, err
	}
	now := s.now()
	if err := payment.ValidateCard(input.Card, now); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if err := s.seats.Validate(input.Seats, input.Passengers, flight); err != nil {
		return nil, err
	}

	fare := s.pricing.PriceFare(flight, flight.DepartureTime, now)
	fareTotal := fare * int64(len(input.Passengers))
	seatCost := s.pricing.PriceSeats(input.Seats, flight)

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		FlightID:        flight.ID,
		Passengers:      input.Passengers,
		SeatAssignments: input.Seats,
		FareCents:       fareTotal,
		SeatCostCents:   seatCost,
		TotalCents:      fareTotal + seatCost,
		Status:          domain.BookingStatusConfirmed,
		Email:           input.Email,
	}
	if booking.SeatAssignments == nil {
		booking.SeatAssignments = []string{}
	}

	log := s.logger.WithFields(logrus.Fields{"booking_id": booking.ID, "flight_id": flight.ID})

	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		AmountCents: booking.TotalCents,
		Currency:    s.currency,
		Card:        input.Card,
		Reference:   booking.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	if !charge.Success {
		log.WithField("card_last4", input.Card.Last4()).Info("payment declined")
		metrics.Bookings.WithLabelValues("declined").Inc()
		return nil, fmt.Errorf("%s: %w", charge.Message, domain.ErrPaymentDeclined)
	}
	booking.PaymentID = charge.PaymentID

	if len(booking.SeatAssignments) > 0 {
		if _, err := s.reserver.Reserve(ctx, flight.ID, booking.SeatAssignments); err != nil {
			s.refund(ctx, log, booking.PaymentID)
			return nil, err
		}
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		// the charge went through; keep the payment id in the log for reconciliation
		log.WithError(err).WithField("payment_id", booking.PaymentID).Error("failed to persist paid booking")
		return nil, err
	}

	metrics.Bookings.WithLabelValues("confirmed").Inc()
	log.WithField("total_cents", booking.TotalCents).Info("booking created")
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.WithError(err).Warn("failed to publish booking_created event")
	}
	return booking, nil
}

func (s *BookingService) refund(ctx context.Context, log *logrus.Entry, paymentID string) {
	if err := s.gateway.Refund(ctx, paymentID); err != nil {
		log.WithError(err).WithField("payment_id", paymentID).Error("failed to refund charge after seat commit failed")
		return
	}
	metrics.Bookings.WithLabelValues("refunded").Inc()
	log.WithField("payment_id", paymentID).Info("charge refunded, seats were taken")
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		FlightID:   booking.FlightID,
		Seats:      booking.SeatAssignments,
		Email:      booking.Email,
		Status:     string(booking.Status),
		TotalCents: booking.TotalCents,
		PaymentID:  booking.PaymentID,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
