package api

import (
	"net/http"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PassengerHandler struct {
	validator booking.ManifestValidator
	logger    *logrus.Logger
}

type validatePassengersRequest struct {
	Passengers []domain.Passenger `json:"passengers" binding:"required"`
}

func NewPassengerHandler(validator booking.ManifestValidator, logger *logrus.Logger) *PassengerHandler {
	return &PassengerHandler{validator: validator, logger: logger}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/passengers/validate", h.validate)
}

func (h *PassengerHandler) validate(c *gin.Context) {
	var req validatePassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.validator.Validate(req.Passengers); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
