package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSeatTaken is returned when a reservation already exists for a seat.
	// The reservations table carries a uniqueness constraint on seat_id, so
	// the database is the final arbiter even under concurrent bookings.
	ErrSeatTaken = errors.New("seat is already booked")

	ErrFlightNotFound = errors.New("flight not found")
)

// ErrSeatShortfall is returned when fewer seats were selected than passengers.
// The whole booking is rejected, nothing is persisted.
type ErrSeatShortfall struct {
	Selected int
	Required int
}

func (e *ErrSeatShortfall) Error() string {
	return fmt.Sprintf("You selected %d seat(s) for %d passenger(s). Please select %d seats.", e.Selected, e.Required, e.Required)
}

type Passenger struct {
	ID          string `json:"passenger_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
	Country     string `json:"country"`
}

func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Reservation struct {
	ID          string    `json:"reservation_id"`
	PassengerID string    `json:"passenger_id"`
	SeatID      string    `json:"seat_id"`
	ReservedOn  time.Time `json:"date_of_reservation"`
}

type Payment struct {
	ID            string    `json:"payment_id"`
	Paid          bool      `json:"paid"`
	DueDate       time.Time `json:"due_date"`
	Amount        int64     `json:"amount"`
	ReservationID string    `json:"reservation_id"`
}

// Booking groups the records created by one booking transaction. The slices
// are index-aligned: Reservations[i] seats Passengers[i] and is paid for by
// Payments[i].
type Booking struct {
	FlightID     string        `json:"flight_id"`
	Passengers   []Passenger   `json:"passengers"`
	Reservations []Reservation `json:"reservations"`
	Payments     []Payment     `json:"payments"`
}

// Primary returns the first passenger/reservation/payment triple, which the
// confirmation view surfaces on behalf of the whole party.
func (b *Booking) Primary() (Passenger, Reservation, Payment) {
	return b.Passengers[0], b.Reservations[0], b.Payments[0]
}

// PaymentReminder is a due/overdue unpaid payment joined to the passenger it
// should be sent to.
type PaymentReminder struct {
	PaymentID      string    `json:"payment_id"`
	ReservationID  string    `json:"reservation_id"`
	SeatID         string    `json:"seat_id"`
	Amount         int64     `json:"amount"`
	DueDate        time.Time `json:"due_date"`
	PassengerEmail string    `json:"passenger_email"`
	PassengerName  string    `json:"passenger_name"`
}
