package repository

import (
	"context"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	ListByFlight(ctx context.Context, flightID string) ([]domain.Seat, error)
	Fare(ctx context.Context, seatID string) (int64, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

// ListByFlight returns every seat of the flight with its class, fare and a
// booked flag. A seat counts as booked as soon as any reservation references
// it; there is no separate status column.
func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID string) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.flight_id, tc.name, COALESCE(MAX(fr.cost), 0), COUNT(res.id) > 0 AS is_booked
		FROM seats s
		JOIN travel_classes tc ON tc.id = s.travel_class_id
		LEFT JOIN fares fr        ON fr.seat_id = s.id
		LEFT JOIN reservations res ON res.seat_id = s.id
		WHERE s.flight_id = $1
		GROUP BY s.id, s.flight_id, tc.name
		ORDER BY s.id`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.FlightID, &s.TravelClass, &s.Price, &s.IsBooked); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Fare returns the seat's fare, or 0 when no fare row exists.
func (r *PGSeatRepository) Fare(ctx context.Context, seatID string) (int64, error) {
	var cost int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(cost), 0) FROM fares WHERE seat_id=$1`, seatID).Scan(&cost)
	return cost, err
}

var _ SeatRepository = (*PGSeatRepository)(nil)
