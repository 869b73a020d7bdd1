package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.PaymentReminder, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.PaymentReminder), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, source, destination string, date *time.Time) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, source, destination, date)
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireSeatLock(ctx context.Context, seatID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, seatID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatLock(ctx context.Context, seatID string) error {
	args := m.Called(ctx, seatID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func sequentialIDs() IDGenerator {
	counts := map[string]int{}
	return func(prefix string) string {
		counts[prefix]++
		return prefix + string(rune('0'+counts[prefix]))
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testFlight = &domain.Flight{ID: "PK301", SourceAirport: "KHI", DestinationAirport: "DXB"}

func twoPassengers() []PassengerDetails {
	return []PassengerDetails{
		{FirstName: "Hamza", LastName: "Kashif", Email: "hamza@example.com"},
		{FirstName: "Ali", LastName: "Ahmed", Email: "ali@example.com"},
	}
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	service := NewBookingService(mockRepo, mockFlights, mockCache, mockProducer,
		"booking_events", time.Minute, 7*24*time.Hour,
		WithIDGenerator(sequentialIDs()), WithClock(fixedClock(now)))

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)
	mockCache.On("AcquireSeatLock", mock.Anything, "PK301-8E", time.Minute).Return(true, nil)
	mockCache.On("AcquireSeatLock", mock.Anything, "PK301-8F", time.Minute).Return(true, nil)
	mockCache.On("ReleaseSeatLock", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		b := args.Get(1).(*domain.Booking)
		for i := range b.Payments {
			b.Payments[i].Amount = 40000
		}
	}).Return(nil)
	mockProducer.On("Publish", mock.Anything, "booking_events", mock.Anything, mock.Anything).Return(nil)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 2,
		SeatIDs:        []string{"PK301-8E", "PK301-8F"},
		Passengers:     twoPassengers(),
	})

	assert.NoError(t, err)
	assert.Len(t, result.Passengers, 2)
	assert.Len(t, result.Reservations, 2)
	assert.Len(t, result.Payments, 2)

	// reservations seat passengers in the order seats were supplied
	assert.Equal(t, "PK301-8E", result.Reservations[0].SeatID)
	assert.Equal(t, "PK301-8F", result.Reservations[1].SeatID)
	assert.Equal(t, result.Passengers[0].ID, result.Reservations[0].PassengerID)
	assert.Equal(t, result.Passengers[1].ID, result.Reservations[1].PassengerID)

	// payments are unpaid and due seven days out
	for i, pay := range result.Payments {
		assert.False(t, pay.Paid)
		assert.Equal(t, now.Add(7*24*time.Hour), pay.DueDate)
		assert.Equal(t, result.Reservations[i].ID, pay.ReservationID)
	}

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_TruncatesExtraSeats(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewBookingService(mockRepo, mockFlights, nil, nil,
		"", time.Minute, 7*24*time.Hour, WithIDGenerator(sequentialIDs()))

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 2,
		SeatIDs:        []string{"PK301-8E", "PK301-8F", "PK301-9A"},
		Passengers:     twoPassengers(),
	})

	assert.NoError(t, err)
	assert.Len(t, result.Reservations, 2)
	assert.Equal(t, "PK301-8E", result.Reservations[0].SeatID)
	assert.Equal(t, "PK301-8F", result.Reservations[1].SeatID)
}

func TestBookingService_CreateBooking_SeatShortfall(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewBookingService(mockRepo, mockFlights, nil, nil,
		"", time.Minute, 7*24*time.Hour)

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 2,
		SeatIDs:        []string{"PK301-8F"},
		Passengers:     twoPassengers(),
	})

	assert.Nil(t, result)
	var shortfall *domain.ErrSeatShortfall
	assert.ErrorAs(t, err, &shortfall)
	assert.Equal(t, "You selected 1 seat(s) for 2 passenger(s). Please select 2 seats.", err.Error())

	// nothing persisted
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_SeatLockHeld(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewBookingService(mockRepo, mockFlights, mockCache, nil,
		"", time.Minute, 7*24*time.Hour)

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)
	mockCache.On("AcquireSeatLock", mock.Anything, "PK301-8E", time.Minute).Return(true, nil)
	mockCache.On("AcquireSeatLock", mock.Anything, "PK301-8F", time.Minute).Return(false, nil)
	mockCache.On("ReleaseSeatLock", mock.Anything, "PK301-8E").Return(nil)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 2,
		SeatIDs:        []string{"PK301-8E", "PK301-8F"},
		Passengers:     twoPassengers(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSeatTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockCache.AssertCalled(t, "ReleaseSeatLock", mock.Anything, "PK301-8E")
}

func TestBookingService_CreateBooking_RepoErrorReleasesLocks(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewBookingService(mockRepo, mockFlights, mockCache, nil,
		"", time.Minute, 7*24*time.Hour)

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)
	mockCache.On("AcquireSeatLock", mock.Anything, "PK301-8F", time.Minute).Return(true, nil)
	mockCache.On("ReleaseSeatLock", mock.Anything, "PK301-8F").Return(nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrSeatTaken)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 1,
		SeatIDs:        []string{"PK301-8F"},
		Passengers:     twoPassengers()[:1],
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSeatTaken)
	mockCache.AssertCalled(t, "ReleaseSeatLock", mock.Anything, "PK301-8F")
}

func TestBookingService_CreateBooking_UnknownFlight(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewBookingService(mockRepo, mockFlights, nil, nil,
		"", time.Minute, 7*24*time.Hour)

	mockFlights.On("GetByID", mock.Anything, "XX999").Return(nil, domain.ErrFlightNotFound)

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "XX999",
		PassengerCount: 1,
		SeatIDs:        []string{"XX999-1A"},
		Passengers:     twoPassengers()[:1],
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestBookingService_DuePaymentReminders(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	now := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := NewBookingService(mockRepo, mockFlights, nil, mockProducer,
		"booking_events", time.Minute, 7*24*time.Hour,
		WithNotificationsTopic("booking_notifications"), WithClock(fixedClock(now)))

	reminders := []domain.PaymentReminder{
		{PaymentID: "PAY002", ReservationID: "R002", SeatID: "PK301-22C", Amount: 40000, DueDate: now.AddDate(0, 0, -1), PassengerEmail: "ali@example.com"},
	}
	mockRepo.On("UnpaidDueBefore", mock.Anything, now).Return(reminders, nil)
	mockProducer.On("Publish", mock.Anything, "booking_notifications", "PAY002", mock.Anything).Return(nil)

	got, err := service.DuePaymentReminders(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, reminders, got)
	mockProducer.AssertExpectations(t)
}

func TestNewShortID_Format(t *testing.T) {
	for _, prefix := range []string{"P", "R", "PAY"} {
		id := NewShortID(prefix)
		assert.Regexp(t, regexp.MustCompile("^"+prefix+"[0-9A-F]{5}$"), id)
	}
}

func TestNewShortID_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewShortID("R")
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestBookingService_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockRepo, mockFlights, nil, mockProducer,
		"booking_events", time.Minute, 7*24*time.Hour)

	mockFlights.On("GetByID", mock.Anything, "PK301").Return(testFlight, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockProducer.On("Publish", mock.Anything, "booking_events", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	result, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:       "PK301",
		PassengerCount: 1,
		SeatIDs:        []string{"PK301-8F"},
		Passengers:     twoPassengers()[:1],
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}
