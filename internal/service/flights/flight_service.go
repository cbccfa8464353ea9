package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/Domenick1991/skyseats/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) ([]PricedFlight, error)
	GetByID(ctx context.Context, id string) (*PricedFlight, error)
}

// FlightCache stores raw search results. Prices are always computed fresh.
type FlightCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, key string, flights []domain.Flight) error
}

type SearchInput struct {
	From string
	To   string
	Date time.Time
}

func (in SearchInput) cacheKey() string {
	date := "any"
	if !in.Date.IsZero() {
		date = in.Date.Format(domain.DateLayout)
	}
	return in.From + ":" + in.To + ":" + date
}

type PricedFlight struct {
	domain.Flight
	AvailableSeats int   `json:"availableSeats"`
	PriceCents     int64 `json:"priceCents"`
}

type FlightService struct {
	repo    repository.FlightRepository
	cache   FlightCache
	pricing *pricing.Engine
	logger  *logrus.Logger
	now     func() time.Time
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, engine *pricing.Engine, logger *logrus.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, pricing: engine, logger: logger, now: time.Now}
}

func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]PricedFlight, error) {
	key := input.cacheKey()
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx, key)
		if err != nil {
			s.logger.WithError(err).Warn("flight cache read failed")
		} else if cached != nil {
			return s.price(cached), nil
		}
	}

	flights, err := s.repo.Search(ctx, repository.SearchCriteria{From: input.From, To: input.To, Date: input.Date})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, key, flights); err != nil {
			s.logger.WithError(err).Warn("flight cache write failed")
		}
	}
	return s.price(flights), nil
}

// GetByID always reads the store so availability reflects the latest reservations.
func (s *FlightService) GetByID(ctx context.Context, id string) (*PricedFlight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	priced := s.priceOne(flight, s.now())
	return &priced, nil
}

func (s *FlightService) price(flights []domain.Flight) []PricedFlight {
	now := s.now()
	out := make([]PricedFlight, 0, len(flights))
	for i := range flights {
		out = append(out, s.priceOne(&flights[i], now))
	}
	return out
}

func (s *FlightService) priceOne(f *domain.Flight, now time.Time) PricedFlight {
	return PricedFlight{
		Flight:         *f,
		AvailableSeats: f.AvailableSeats(),
		PriceCents:     s.pricing.PriceFare(f, f.DepartureTime, now),
	}
}

var _ FlightUseCase = (*FlightService)(nil)
