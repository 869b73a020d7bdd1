package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/avelora/flightbook/internal/kafka"
	"github.com/avelora/flightbook/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	DuePaymentReminders(ctx context.Context) ([]domain.PaymentReminder, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, seatID string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, seatID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// IDGenerator produces a short booking identifier for the given prefix.
// Injected so tests can pin ids.
type IDGenerator func(prefix string) string

// NewShortID is the default generator: prefix plus 5 uppercased hex
// characters drawn from a v4 uuid.
func NewShortID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(hex[:5])
}

type PassengerDetails struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     string
	City        string
	State       string
	Zipcode     string
	Country     string
}

type CreateBookingInput struct {
	FlightID       string
	PassengerCount int
	SeatIDs        []string
	Passengers     []PassengerDetails
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	seatLockTTL        time.Duration
	paymentDue         time.Duration
	newID              IDGenerator
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithIDGenerator(gen IDGenerator) BookingServiceOption {
	return func(s *BookingService) {
		s.newID = gen
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	seatLockTTL, paymentDue time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		seatLockTTL:  seatLockTTL,
		paymentDue:   paymentDue,
		newID:        NewShortID,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking persists one passenger, reservation and payment row per
// passenger, all in a single repository transaction. Seats beyond the
// passenger count are dropped; fewer seats than passengers rejects the whole
// booking with ErrSeatShortfall and persists nothing. Redis seat locks fence
// concurrent attempts; the reservations uniqueness constraint settles the
// rest.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerCount < 1 {
		input.PassengerCount = 1
	}
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		return nil, err
	}

	seatIDs := input.SeatIDs
	if len(seatIDs) > input.PassengerCount {
		seatIDs = seatIDs[:input.PassengerCount]
	}
	if len(seatIDs) < input.PassengerCount {
		return nil, &domain.ErrSeatShortfall{Selected: len(seatIDs), Required: input.PassengerCount}
	}
	if len(input.Passengers) < input.PassengerCount {
		return nil, errors.New("passenger details are incomplete")
	}

	locked := make([]string, 0, len(seatIDs))
	releaseLocks := func() {
		for _, seatID := range locked {
			if err := s.cache.ReleaseSeatLock(ctx, seatID); err != nil {
				log.Printf("release seat lock %s: %v", seatID, err)
			}
		}
	}

	if s.cache != nil {
		for _, seatID := range seatIDs {
			ok, err := s.cache.AcquireSeatLock(ctx, seatID, s.seatLockTTL)
			if err != nil {
				releaseLocks()
				return nil, err
			}
			if !ok {
				releaseLocks()
				return nil, domain.ErrSeatTaken
			}
			locked = append(locked, seatID)
		}
	}

	now := s.now()
	booking := &domain.Booking{FlightID: input.FlightID}
	for i := 0; i < input.PassengerCount; i++ {
		details := input.Passengers[i]
		passengerID := s.newID("P")
		reservationID := s.newID("R")
		paymentID := s.newID("PAY")

		booking.Passengers = append(booking.Passengers, domain.Passenger{
			ID:          passengerID,
			FirstName:   details.FirstName,
			LastName:    details.LastName,
			Email:       details.Email,
			PhoneNumber: details.PhoneNumber,
			Address:     details.Address,
			City:        details.City,
			State:       details.State,
			Zipcode:     details.Zipcode,
			Country:     details.Country,
		})
		booking.Reservations = append(booking.Reservations, domain.Reservation{
			ID:          reservationID,
			PassengerID: passengerID,
			SeatID:      seatIDs[i],
			ReservedOn:  now,
		})
		booking.Payments = append(booking.Payments, domain.Payment{
			ID:            paymentID,
			Paid:          false,
			DueDate:       now.Add(s.paymentDue),
			ReservationID: reservationID,
		})
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		releaseLocks()
		return nil, err
	}
	releaseLocks()

	if err := s.publishCreated(ctx, booking); err != nil {
		log.Printf("publish booking_created for flight %s: %v", booking.FlightID, err)
	}
	return booking, nil
}

// DuePaymentReminders finds unpaid payments past their due date and publishes
// a payment_due event per payment to the notifications topic.
func (s *BookingService) DuePaymentReminders(ctx context.Context) ([]domain.PaymentReminder, error) {
	reminders, err := s.bookings.UnpaidDueBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	for _, rem := range reminders {
		event := kafka.BookingEvent{
			Type:           "payment_due",
			SeatIDs:        []string{rem.SeatID},
			ReservationIDs: []string{rem.ReservationID},
			Email:          rem.PassengerEmail,
			PassengerName:  rem.PassengerName,
			Amount:         rem.Amount,
			PaymentDue:     rem.DueDate,
		}
		if err := s.publish(ctx, s.notificationsTopic, rem.PaymentID, event); err != nil {
			log.Printf("publish payment_due for %s: %v", rem.PaymentID, err)
		}
	}
	return reminders, nil
}

func (s *BookingService) publishCreated(ctx context.Context, booking *domain.Booking) error {
	primaryPassenger, primaryReservation, primaryPayment := booking.Primary()

	seatIDs := make([]string, 0, len(booking.Reservations))
	reservationIDs := make([]string, 0, len(booking.Reservations))
	var total int64
	for i, res := range booking.Reservations {
		seatIDs = append(seatIDs, res.SeatID)
		reservationIDs = append(reservationIDs, res.ID)
		total += booking.Payments[i].Amount
	}

	event := kafka.BookingEvent{
		Type:           "booking_created",
		FlightID:       booking.FlightID,
		SeatIDs:        seatIDs,
		ReservationIDs: reservationIDs,
		Email:          primaryPassenger.Email,
		PassengerName:  primaryPassenger.FullName(),
		Amount:         total,
		PaymentDue:     primaryPayment.DueDate,
	}

	if err := s.publish(ctx, s.bookingTopic, primaryReservation.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.publish(ctx, s.notificationsTopic, primaryReservation.ID, event)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, topic, key string, event kafka.BookingEvent) error {
	if s.producer == nil || topic == "" {
		return nil
	}
	return s.producer.Publish(ctx, topic, key, event)
}

var _ BookingUseCase = (*BookingService)(nil)
