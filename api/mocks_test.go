package api

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/Domenick1991/skyseats/internal/service/flights"
	"github.com/Domenick1991/skyseats/internal/service/seats"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

type MockSeatUseCase struct {
	mock.Mock
}

func (m *MockSeatUseCase) GetSeatMap(ctx context.Context, flightID string) (*seats.SeatMap, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seats.SeatMap), args.Error(1)
}

func (m *MockSeatUseCase) ReserveSeats(ctx context.Context, input seats.ReserveSeatsInput) (*seats.ReserveSeatsResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seats.ReserveSeatsResult), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) ([]flights.PricedFlight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]flights.PricedFlight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*flights.PricedFlight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.PricedFlight), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockManifestValidator struct {
	mock.Mock
}

func (m *MockManifestValidator) Validate(passengers []domain.Passenger) error {
	return m.Called(passengers).Error(0)
}

// memoryIdempotencyStore mirrors the Redis semantics used in production.
type memoryIdempotencyStore struct {
	mu       sync.Mutex
	records  map[string]string
	released []string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{records: map[string]string{}}
}

func (s *memoryIdempotencyStore) ClaimIdempotencyKey(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.records[key]; ok {
		return false, v, nil
	}
	s.records[key] = "PROCESSING"
	return true, "", nil
}

func (s *memoryIdempotencyStore) CompleteIdempotencyKey(_ context.Context, key, response string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = response
	return nil
}

func (s *memoryIdempotencyStore) ReleaseIdempotencyKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	s.released = append(s.released, key)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}
