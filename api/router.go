package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const SwaggerSpecFile = "skyseats.swagger.json"

type Handlers struct {
	Seats      *SeatHandler
	Flights    *FlightHandler
	Passengers *PassengerHandler
	Bookings   *BookingHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	SwaggerDir     string
	// Idempotency guards booking creation when set.
	Idempotency gin.HandlerFunc
}

func NewRouter(cfg RouterConfig, h Handlers, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Metrics(), CORS(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	h.Seats.Register(v1)
	h.Flights.Register(v1)
	h.Passengers.Register(v1)
	if cfg.Idempotency != nil {
		h.Bookings.Register(v1, cfg.Idempotency)
	} else {
		h.Bookings.Register(v1)
	}

	if cfg.SwaggerDir != "" {
		r.Static("/swagger", cfg.SwaggerDir)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+SwaggerSpecFile))))
	}
	return r
}
