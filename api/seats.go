package api

import (
	"encoding/json"
	"net/http"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/seating"
	"github.com/Domenick1991/skyseats/internal/service/seats"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	actionGetSeatMap   = "getSeatMap"
	actionReserveSeats = "reserveSeats"
)

type SeatHandler struct {
	service seats.SeatUseCase
	logger  *logrus.Logger
}

// seatRequest is the tagged union over both seat actions. Seats stays raw so
// that a non-array value is reported as a format error, not a bind error.
type seatRequest struct {
	Action     string             `json:"action" binding:"required,oneof=getSeatMap reserveSeats"`
	FlightID   string             `json:"flightId" binding:"required"`
	Seats      json.RawMessage    `json:"seats"`
	Passengers []domain.Passenger `json:"passengers"`
}

type reserveSeatsResponse struct {
	Success         bool     `json:"success"`
	SeatAssignments []string `json:"seatAssignments"`
	AdditionalCost  float64  `json:"additionalCost"`
}

func NewSeatHandler(service seats.SeatUseCase, logger *logrus.Logger) *SeatHandler {
	return &SeatHandler{service: service, logger: logger}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.POST("/seats", h.handle)
}

func (h *SeatHandler) handle(c *gin.Context) {
	var req seatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	switch req.Action {
	case actionGetSeatMap:
		h.getSeatMap(c, req)
	case actionReserveSeats:
		h.reserveSeats(c, req)
	}
}

func (h *SeatHandler) getSeatMap(c *gin.Context, req seatRequest) {
	seatMap, err := h.service.GetSeatMap(c.Request.Context(), req.FlightID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, seatMap)
}

func (h *SeatHandler) reserveSeats(c *gin.Context, req seatRequest) {
	selection, err := seating.DecodeSelection(req.Seats)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	result, err := h.service.ReserveSeats(c.Request.Context(), seats.ReserveSeatsInput{
		FlightID:   req.FlightID,
		Seats:      selection,
		Passengers: req.Passengers,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reserveSeatsResponse{
		Success:         true,
		SeatAssignments: result.SeatAssignments,
		AdditionalCost:  pricing.ToAmount(result.AdditionalCostCents),
	})
}
