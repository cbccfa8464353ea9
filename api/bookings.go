package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/payment"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	service booking.BookingUseCase
	logger  *logrus.Logger
}

type createBookingRequest struct {
	FlightID   string             `json:"flightId" binding:"required"`
	Passengers []domain.Passenger `json:"passengers" binding:"required"`
	Seats      []string           `json:"seats"`
	Email      string             `json:"email" binding:"required,email"`
	Payment    payment.Card       `json:"payment" binding:"required"`
}

type bookingResponse struct {
	BookingID       string             `json:"bookingId"`
	FlightID        string             `json:"flightId"`
	Status          string             `json:"status"`
	Passengers      []domain.Passenger `json:"passengers"`
	SeatAssignments []string           `json:"seatAssignments"`
	Fare            float64            `json:"fare"`
	SeatCost        float64            `json:"seatCost"`
	Total           float64            `json:"total"`
	PaymentID       string             `json:"paymentId"`
	Email           string             `json:"email"`
	CreatedAt       string             `json:"createdAt"`
}

func NewBookingHandler(service booking.BookingUseCase, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

// Register mounts the booking routes. Middleware such as the idempotency
// guard applies to creation only.
func (h *BookingHandler) Register(router *gin.RouterGroup, create ...gin.HandlerFunc) {
	router.POST("/bookings", append(create, h.create)...)
	router.GET("/bookings/:id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:   req.FlightID,
		Passengers: req.Passengers,
		Seats:      req.Seats,
		Email:      req.Email,
		Card:       req.Payment,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:       b.ID,
		FlightID:        b.FlightID,
		Status:          string(b.Status),
		Passengers:      b.Passengers,
		SeatAssignments: b.SeatAssignments,
		Fare:            pricing.ToAmount(b.FareCents),
		SeatCost:        pricing.ToAmount(b.SeatCostCents),
		Total:           pricing.ToAmount(b.TotalCents),
		PaymentID:       b.PaymentID,
		Email:           b.Email,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
