package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/payment"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const createBookingBody = `{
	"flightId": "FL001",
	"passengers": [{"firstName":"Ann","lastName":"Lee","dateOfBirth":"1990-01-01"}],
	"seats": ["1A"],
	"email": "ann@example.com",
	"payment": {"cardNumber":"4242424242424242","expiryDate":"12/30","cvv":"123","cardholderName":"Ann Lee"}
}`

func expectedBookingInput() booking.CreateBookingInput {
	return booking.CreateBookingInput{
		FlightID:   "FL001",
		Passengers: []domain.Passenger{{FirstName: "Ann", LastName: "Lee", DateOfBirth: "1990-01-01"}},
		Seats:      []string{"1A"},
		Email:      "ann@example.com",
		Card:       payment.Card{Number: "4242424242424242", Expiry: "12/30", CVV: "123", HolderName: "Ann Lee"},
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("POST", "/api/v1/bookings", createBookingBody)

	created := &domain.Booking{
		ID:              "b-1",
		FlightID:        "FL001",
		SeatAssignments: []string{"1A"},
		FareCents:       26000,
		SeatCostCents:   5000,
		TotalCents:      31000,
		PaymentID:       "PAY-1",
		Status:          domain.BookingStatusConfirmed,
		Email:           "ann@example.com",
		CreatedAt:       time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("CreateBooking", mock.Anything, expectedBookingInput()).Return(created, nil)

	handler.create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"bookingId":"b-1"`)
	assert.Contains(t, w.Body.String(), `"total":310`)
	assert.Contains(t, w.Body.String(), `"status":"CONFIRMED"`)
	assert.Contains(t, w.Body.String(), `"createdAt":"2026-10-01T12:00:00Z"`)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_createDeclined(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("POST", "/api/v1/bookings", createBookingBody)
	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("card declined: %w", domain.ErrPaymentDeclined))

	handler.create(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"error":"card declined: payment declined"}`, w.Body.String())
}

func TestBookingHandler_createMissingPayment(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("POST", "/api/v1/bookings",
		`{"flightId":"FL001","passengers":[],"email":"ann@example.com","payment":{}}`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"cardNumber is required"}`, w.Body.String())
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_createInvalidEmail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("POST", "/api/v1/bookings",
		`{"flightId":"FL001","passengers":[],"email":"not-an-email","payment":{"cardNumber":"4242424242424242","expiryDate":"12/28","cvv":"123"}}`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"email must be a valid email address"}`, w.Body.String())
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("GET", "/api/v1/bookings/b-1", "")
	c.Params = gin.Params{{Key: "id", Value: "b-1"}}
	mockService.On("GetBooking", mock.Anything, "b-1").
		Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusConfirmed}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookingId":"b-1"`)
}

func TestBookingHandler_getNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, testLogger())

	c, w := newTestContext("GET", "/api/v1/bookings/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	mockService.On("GetBooking", mock.Anything, "missing").
		Return(nil, fmt.Errorf("booking missing: %w", domain.ErrNotFound))

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
