package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	UnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.PaymentReminder, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create persists all passenger, reservation and payment rows of a booking in
// a single transaction. Each payment amount is resolved from the seat's fare
// inside the transaction, defaulting to 0 when no fare row exists. Any
// failure rolls the whole booking back; a reservation hitting the seat_id
// uniqueness constraint surfaces as domain.ErrSeatTaken.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range booking.Passengers {
		p := &booking.Passengers[i]
		res := &booking.Reservations[i]
		pay := &booking.Payments[i]

		if _, err := tx.Exec(ctx, `
			INSERT INTO passengers (id, first_name, last_name, email, phone_number, address, city, state, zipcode, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.FirstName, p.LastName, p.Email, p.PhoneNumber, p.Address, p.City, p.State, p.Zipcode, p.Country); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO reservations (id, passenger_id, seat_id, reservation_date)
			VALUES ($1, $2, $3, $4)`,
			res.ID, res.PassengerID, res.SeatID, res.ReservedOn); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrSeatTaken
			}
			return err
		}

		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(cost), 0) FROM fares WHERE seat_id=$1`, res.SeatID).Scan(&pay.Amount); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO payments (id, paid, due_date, amount, reservation_id)
			VALUES ($1, $2, $3, $4, $5)`,
			pay.ID, pay.Paid, pay.DueDate, pay.Amount, pay.ReservationID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UnpaidDueBefore lists unpaid payments whose due date has passed, joined to
// the passenger they belong to. Used by the worker's reminder sweep.
func (r *PGBookingRepository) UnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.PaymentReminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pay.id, res.id, res.seat_id, pay.amount, pay.due_date, p.email, p.first_name || ' ' || p.last_name
		FROM payments pay
		JOIN reservations res ON res.id = pay.reservation_id
		JOIN passengers p     ON p.id = res.passenger_id
		WHERE pay.paid = FALSE AND pay.due_date <= $1
		ORDER BY pay.due_date`, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]domain.PaymentReminder, 0)
	for rows.Next() {
		var rem domain.PaymentReminder
		if err := rows.Scan(&rem.PaymentID, &rem.ReservationID, &rem.SeatID, &rem.Amount, &rem.DueDate, &rem.PassengerEmail, &rem.PassengerName); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
