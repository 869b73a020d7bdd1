package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Search(ctx context.Context, source, destination string, date *time.Time) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// Search returns one row per flight on the route, carrying the minimum fare
// across all of the flight's seats and the class label of the seat that
// produced it, ordered by that fare ascending. A nil date matches all
// departure days; a non-nil date matches that calendar day exactly.
func (r *PGFlightRepository) Search(ctx context.Context, source, destination string, date *time.Time) ([]domain.FlightSummary, error) {
	query := `
		SELECT * FROM (
			SELECT DISTINCT ON (f.id)
				f.id,
				f.source_airport,
				f.destination_airport,
				sa.city AS source_city,
				da.city AS destination_city,
				f.departure_time,
				f.arrival_time,
				f.airplane_type,
				fr.cost AS lowest_price,
				tc.name AS travel_class
			FROM flights f
			JOIN airports sa       ON sa.code = f.source_airport
			JOIN airports da       ON da.code = f.destination_airport
			JOIN seats s           ON s.flight_id = f.id
			JOIN travel_classes tc ON tc.id = s.travel_class_id
			JOIN fares fr          ON fr.seat_id = s.id
			WHERE f.source_airport = $1
			  AND f.destination_airport = $2
			  AND ($3::date IS NULL OR f.departure_time::date = $3::date)
			ORDER BY f.id, fr.cost ASC
		) ranked
		ORDER BY ranked.lowest_price ASC`

	var day *time.Time
	if date != nil {
		d := date.Truncate(24 * time.Hour)
		day = &d
	}

	rows, err := r.db.Query(ctx, query, source, destination, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		var fs domain.FlightSummary
		if err := rows.Scan(&fs.ID, &fs.SourceAirport, &fs.DestinationAirport, &fs.SourceCity, &fs.DestinationCity,
			&fs.DepartureTime, &fs.ArrivalTime, &fs.AirplaneType, &fs.LowestPrice, &fs.TravelClass); err != nil {
			return nil, err
		}
		flights = append(flights, fs)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `
		SELECT f.id, f.source_airport, f.destination_airport, sa.city, da.city,
		       f.departure_time, f.arrival_time, f.airplane_type
		FROM flights f
		JOIN airports sa ON sa.code = f.source_airport
		JOIN airports da ON da.code = f.destination_airport
		WHERE f.id = $1`, id)

	var f domain.Flight
	if err := row.Scan(&f.ID, &f.SourceAirport, &f.DestinationAirport, &f.SourceCity, &f.DestinationCity,
		&f.DepartureTime, &f.ArrivalTime, &f.AirplaneType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
