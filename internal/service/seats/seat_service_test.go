package seats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/repository"
	"github.com/Domenick1991/skyseats/internal/reservation"
	"github.com/Domenick1991/skyseats/internal/seating"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, c repository.SearchCriteria) ([]domain.Flight, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) AppendOccupiedSeats(ctx context.Context, flightID string, seats []string) (*domain.Flight, error) {
	args := m.Called(ctx, flightID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockReserver struct {
	mock.Mock
}

func (m *MockReserver) Reserve(ctx context.Context, flightID string, seats []string) (*domain.Flight, error) {
	args := m.Called(ctx, flightID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var today = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testFlight() *domain.Flight {
	return &domain.Flight{
		ID:                   "FL100",
		TotalSeats:           180,
		OccupiedSeats:        []string{"5C"},
		EmergencyExitRows:    []int{1},
		PremiumSeats:         []string{"1A", "2A"},
		PremiumSeatCostCents: 5000,
	}
}

func adult() domain.Passenger {
	return domain.Passenger{FirstName: "Ann", LastName: "Lee", DateOfBirth: "1990-01-01"}
}

func child() domain.Passenger {
	return domain.Passenger{FirstName: "Tim", LastName: "Lee", DateOfBirth: "2016-01-01"}
}

func newService(flights repository.FlightRepository, reserver Reserver, opts ...SeatServiceOption) *SeatService {
	validator := seating.NewValidator(seating.WithClock(func() time.Time { return today }))
	return NewSeatService(flights, validator, reserver, pricing.NewEngine(), quietLogger(), opts...)
}

func TestSeatService_GetSeatMap(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := newService(repo, &MockReserver{})
	ctx := context.Background()

	repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()

	m, err := svc.GetSeatMap(ctx, "FL100")

	require.NoError(t, err)
	assert.Len(t, m.Seats, 180)
	assert.Equal(t, []int{1}, m.EmergencyExitRows)
	assert.Equal(t, []string{"1A", "2A"}, m.PremiumSeats)
	repo.AssertExpectations(t)
}

func TestSeatService_GetSeatMap_EmptyListsAreNotNil(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := newService(repo, &MockReserver{})
	ctx := context.Background()

	repo.On("GetByID", ctx, "FL1").Return(&domain.Flight{ID: "FL1"}, nil).Once()

	m, err := svc.GetSeatMap(ctx, "FL1")

	require.NoError(t, err)
	assert.NotNil(t, m.EmergencyExitRows)
	assert.NotNil(t, m.PremiumSeats)
}

func TestSeatService_GetSeatMap_NotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := newService(repo, &MockReserver{})
	ctx := context.Background()

	repo.On("GetByID", ctx, "nope").Return(nil, fmt.Errorf("flight nope: %w", domain.ErrNotFound)).Once()

	_, err := svc.GetSeatMap(ctx, "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeatService_ReserveSeats_Success(t *testing.T) {
	repo := &MockFlightRepository{}
	reserver := &MockReserver{}
	producer := &MockProducer{}
	svc := newService(repo, reserver, WithEvents(producer, "seat_events"))
	ctx := context.Background()

	seats := []string{"1A", "7B"}
	updated := testFlight()
	updated.OccupiedSeats = append(updated.OccupiedSeats, seats...)

	repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()
	reserver.On("Reserve", ctx, "FL100", seats).Return(updated, nil).Once()
	producer.On("Publish", ctx, "seat_events", "FL100", mock.MatchedBy(func(e SeatsReservedEvent) bool {
		return e.Type == "seats_reserved" && e.Available == 177
	})).Return(nil).Once()

	res, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: seats, Passengers: []domain.Passenger{adult(), child()}})

	require.NoError(t, err)
	assert.Equal(t, seats, res.SeatAssignments)
	assert.Equal(t, int64(5000), res.AdditionalCostCents)
	repo.AssertExpectations(t)
	reserver.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestSeatService_ReserveSeats_PublishFailureIsNotFatal(t *testing.T) {
	repo := &MockFlightRepository{}
	reserver := &MockReserver{}
	producer := &MockProducer{}
	svc := newService(repo, reserver, WithEvents(producer, "seat_events"))
	ctx := context.Background()

	repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()
	reserver.On("Reserve", ctx, "FL100", []string{"9A"}).Return(testFlight(), nil).Once()
	producer.On("Publish", ctx, "seat_events", "FL100", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: []string{"9A"}, Passengers: []domain.Passenger{adult()}})

	assert.NoError(t, err)
}

func TestSeatService_ReserveSeats_EmptySelection(t *testing.T) {
	repo := &MockFlightRepository{}
	reserver := &MockReserver{}
	svc := newService(repo, reserver)
	ctx := context.Background()

	repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()

	res, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: []string{}, Passengers: nil})

	require.NoError(t, err)
	assert.Empty(t, res.SeatAssignments)
	assert.NotNil(t, res.SeatAssignments)
	assert.Zero(t, res.AdditionalCostCents)
	reserver.AssertNotCalled(t, "Reserve")
}

func TestSeatService_ReserveSeats_ValidationStopsCommit(t *testing.T) {
	testCases := []struct {
		name       string
		seats      []string
		passengers []domain.Passenger
		reason     domain.RejectReason
	}{
		{"too many", []string{"7A", "7B"}, []domain.Passenger{adult()}, domain.ReasonTooManySeats},
		{"format", []string{"7Z"}, []domain.Passenger{adult()}, domain.ReasonInvalidFormat},
		{"occupied", []string{"5C"}, []domain.Passenger{adult()}, domain.ReasonSeatUnavailable},
		{"child in exit row", []string{"1A"}, []domain.Passenger{child()}, domain.ReasonIneligibleForExitRow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockFlightRepository{}
			reserver := &MockReserver{}
			svc := newService(repo, reserver)
			ctx := context.Background()

			repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()

			_, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: tc.seats, Passengers: tc.passengers})

			var rej *domain.RejectionError
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, tc.reason, rej.Reason)
			reserver.AssertNotCalled(t, "Reserve")
		})
	}
}

func TestSeatService_ReserveSeats_CommitConflict(t *testing.T) {
	repo := &MockFlightRepository{}
	reserver := &MockReserver{}
	svc := newService(repo, reserver)
	ctx := context.Background()

	repo.On("GetByID", ctx, "FL100").Return(testFlight(), nil).Once()
	reserver.On("Reserve", ctx, "FL100", []string{"8A"}).Return(nil, domain.Reject(domain.ReasonSeatUnavailable, "Seats already occupied: 8A", "8A")).Once()

	_, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: []string{"8A"}, Passengers: []domain.Passenger{adult()}})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSeatService_ReserveSeats_EndToEndWithMemoryStore(t *testing.T) {
	repo := repository.NewMemoryFlightRepository(*testFlight())
	svc := newService(repo, reservation.NewCoordinator(repo, quietLogger()))
	ctx := context.Background()

	_, err := svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: []string{"10A"}, Passengers: []domain.Passenger{adult()}})
	require.NoError(t, err)

	m, err := svc.GetSeatMap(ctx, "FL100")
	require.NoError(t, err)
	for _, s := range m.Seats {
		if s.ID == "10A" {
			assert.Equal(t, domain.SeatOccupied, s.Status)
		}
	}

	_, err = svc.ReserveSeats(ctx, ReserveSeatsInput{FlightID: "FL100", Seats: []string{"10A"}, Passengers: []domain.Passenger{adult()}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
