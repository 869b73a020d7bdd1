package reference

import (
	"context"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/avelora/flightbook/internal/repository"
)

type ReferenceUseCase interface {
	Airports(ctx context.Context) ([]domain.Airport, error)
	Airport(ctx context.Context, code string) (*domain.Airport, error)
	TravelClasses(ctx context.Context) ([]domain.TravelClass, error)
	ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error)
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
}

type ReferenceService struct {
	repo  repository.ReferenceRepository
	cache Cache
}

func NewReferenceService(repo repository.ReferenceRepository, cache Cache) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache}
}

func (s *ReferenceService) Airports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *ReferenceService) Airport(ctx context.Context, code string) (*domain.Airport, error) {
	return s.repo.GetAirport(ctx, code)
}

func (s *ReferenceService) TravelClasses(ctx context.Context) ([]domain.TravelClass, error) {
	return s.repo.ListTravelClasses(ctx)
}

func (s *ReferenceService) ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	return s.repo.ListServiceOfferings(ctx)
}

var _ ReferenceUseCase = (*ReferenceService)(nil)
