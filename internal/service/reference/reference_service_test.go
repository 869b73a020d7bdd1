package reference

import (
	"context"
	"testing"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockReferenceRepository) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockReferenceRepository) ListTravelClasses(ctx context.Context) ([]domain.TravelClass, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TravelClass), args.Error(1)
}

func (m *MockReferenceRepository) ListServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceOffering), args.Error(1)
}

type MockAirportCache struct {
	mock.Mock
}

func (m *MockAirportCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	args := m.Called(ctx, airports)
	return args.Error(0)
}

func TestReferenceService_Airports_CacheMiss(t *testing.T) {
	mockRepo := &MockReferenceRepository{}
	mockCache := &MockAirportCache{}
	service := NewReferenceService(mockRepo, mockCache)

	airports := []domain.Airport{
		{Code: "KHI", City: "Karachi", Country: "Pakistan"},
		{Code: "DXB", City: "Dubai", Country: "UAE"},
	}
	mockCache.On("GetAirports", mock.Anything).Return(nil, nil)
	mockRepo.On("ListAirports", mock.Anything).Return(airports, nil)
	mockCache.On("SetAirports", mock.Anything, airports).Return(nil)

	got, err := service.Airports(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, airports, got)
	mockCache.AssertExpectations(t)
}

func TestReferenceService_Airports_CacheHit(t *testing.T) {
	mockRepo := &MockReferenceRepository{}
	mockCache := &MockAirportCache{}
	service := NewReferenceService(mockRepo, mockCache)

	airports := []domain.Airport{{Code: "KHI", City: "Karachi", Country: "Pakistan"}}
	mockCache.On("GetAirports", mock.Anything).Return(airports, nil)

	got, err := service.Airports(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, airports, got)
	mockRepo.AssertNotCalled(t, "ListAirports", mock.Anything)
}

func TestReferenceService_TravelClasses(t *testing.T) {
	mockRepo := &MockReferenceRepository{}
	service := NewReferenceService(mockRepo, nil)

	classes := []domain.TravelClass{
		{ID: "ECO", Name: "Economy", Capacity: 150},
		{ID: "BUS", Name: "Business", Capacity: 30},
	}
	mockRepo.On("ListTravelClasses", mock.Anything).Return(classes, nil)

	got, err := service.TravelClasses(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, classes, got)
}
