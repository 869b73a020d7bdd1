package repository

import (
	"context"
	"errors"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferenceRepository interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, code string) (*domain.Airport, error)
	ListTravelClasses(ctx context.Context) ([]domain.TravelClass, error)
	ListServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error)
}

type PGReferenceRepository struct {
	db *pgxpool.Pool
}

func NewReferenceRepository(db *pgxpool.Pool) ReferenceRepository {
	return &PGReferenceRepository{db: db}
}

func (r *PGReferenceRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT code, city, country FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.City, &a.Country); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGReferenceRepository) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT code, city, country FROM airports WHERE code=$1`, code)
	var a domain.Airport
	if err := row.Scan(&a.Code, &a.City, &a.Country); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGReferenceRepository) ListTravelClasses(ctx context.Context) ([]domain.TravelClass, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, capacity FROM travel_classes ORDER BY capacity DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]domain.TravelClass, 0)
	for rows.Next() {
		var tc domain.TravelClass
		if err := rows.Scan(&tc.ID, &tc.Name, &tc.Capacity); err != nil {
			return nil, err
		}
		classes = append(classes, tc)
	}
	return classes, rows.Err()
}

func (r *PGReferenceRepository) ListServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	rows, err := r.db.Query(ctx, `
		SELECT so.travel_class_id, so.service_id, fs.name, so.offered
		FROM service_offerings so
		JOIN flight_services fs ON fs.id = so.service_id
		ORDER BY so.travel_class_id, so.service_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := make([]domain.ServiceOffering, 0)
	for rows.Next() {
		var o domain.ServiceOffering
		if err := rows.Scan(&o.TravelClassID, &o.ServiceID, &o.ServiceName, &o.Offered); err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, rows.Err()
}

var _ ReferenceRepository = (*PGReferenceRepository)(nil)
