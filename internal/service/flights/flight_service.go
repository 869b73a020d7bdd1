package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/avelora/flightbook/internal/repository"
)

var (
	ErrMissingSource      = errors.New("source airport is required")
	ErrMissingDestination = errors.New("destination airport is required")
)

type SearchQuery struct {
	Source      string
	Destination string
	Date        *time.Time
}

type FlightUseCase interface {
	Search(ctx context.Context, q SearchQuery) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	SeatMap(ctx context.Context, flightID string) ([]domain.Seat, error)
}

type Cache interface {
	GetSearch(ctx context.Context, key string) ([]domain.FlightSummary, error)
	SetSearch(ctx context.Context, key string, flights []domain.FlightSummary) error
}

type FlightService struct {
	flights repository.FlightRepository
	seats   repository.SeatRepository
	cache   Cache
}

func NewFlightService(flights repository.FlightRepository, seats repository.SeatRepository, cache Cache) *FlightService {
	return &FlightService{flights: flights, seats: seats, cache: cache}
}

// Search validates the route and returns matching flights ordered by lowest
// fare. A route with no flights is an empty result, not an error. Results are
// cached per (source, destination, date).
func (s *FlightService) Search(ctx context.Context, q SearchQuery) ([]domain.FlightSummary, error) {
	if q.Source == "" {
		return nil, ErrMissingSource
	}
	if q.Destination == "" {
		return nil, ErrMissingDestination
	}

	key := searchCacheKey(q)
	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.Search(ctx, q.Source, q.Destination, q.Date)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, key, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// SeatMap is never cached: booked flags must reflect reservations made a
// moment ago.
func (s *FlightService) SeatMap(ctx context.Context, flightID string) ([]domain.Seat, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.seats.ListByFlight(ctx, flightID)
}

func searchCacheKey(q SearchQuery) string {
	day := "any"
	if q.Date != nil {
		day = q.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%s:%s", q.Source, q.Destination, day)
}

var _ FlightUseCase = (*FlightService)(nil)
