package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FlightHandler struct {
	service flights.FlightUseCase
	logger  *logrus.Logger
}

type flightResponse struct {
	ID                string    `json:"flightId"`
	FlightNumber      string    `json:"flightNumber"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	DepartureTime     time.Time `json:"departureTime"`
	ArrivalTime       time.Time `json:"arrivalTime"`
	TotalSeats        int       `json:"totalSeats"`
	AvailableSeats    int       `json:"availableSeats"`
	EmergencyExitRows []int     `json:"emergencyExitRows"`
	PremiumSeats      []string  `json:"premiumSeats"`
	PremiumSeatCost   float64   `json:"premiumSeatCost"`
	Price             float64   `json:"price"`
}

func NewFlightHandler(service flights.FlightUseCase, logger *logrus.Logger) *FlightHandler {
	return &FlightHandler{service: service, logger: logger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.search)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	input := flights.SearchInput{
		From: strings.ToUpper(c.Query("from")),
		To:   strings.ToUpper(c.Query("to")),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			badRequest(c, fmt.Errorf("date must be in YYYY-MM-DD format"))
			return
		}
		input.Date = date
	}

	found, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	resp := make([]flightResponse, 0, len(found))
	for i := range found {
		resp = append(resp, toFlightResponse(&found[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *flights.PricedFlight) flightResponse {
	exitRows := f.EmergencyExitRows
	if exitRows == nil {
		exitRows = []int{}
	}
	premium := f.PremiumSeats
	if premium == nil {
		premium = []string{}
	}
	return flightResponse{
		ID:                f.ID,
		FlightNumber:      f.FlightNumber,
		From:              f.FromAirport,
		To:                f.ToAirport,
		DepartureTime:     f.DepartureTime,
		ArrivalTime:       f.ArrivalTime,
		TotalSeats:        f.TotalSeats,
		AvailableSeats:    f.AvailableSeats,
		EmergencyExitRows: exitRows,
		PremiumSeats:      premium,
		PremiumSeatCost:   pricing.ToAmount(f.PremiumSeatCostCents),
		Price:             pricing.ToAmount(f.PriceCents),
	}
}
