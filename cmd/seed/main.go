package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/avelora/flightbook/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var schema = `
CREATE TABLE IF NOT EXISTS airports (
	code    TEXT PRIMARY KEY,
	city    TEXT NOT NULL,
	country TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS travel_classes (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	capacity INT  NOT NULL
);

CREATE TABLE IF NOT EXISTS flights (
	id                  TEXT PRIMARY KEY,
	source_airport      TEXT NOT NULL REFERENCES airports(code),
	destination_airport TEXT NOT NULL REFERENCES airports(code),
	departure_time      TIMESTAMPTZ NOT NULL,
	arrival_time        TIMESTAMPTZ NOT NULL,
	airplane_type       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS seats (
	id              TEXT PRIMARY KEY,
	travel_class_id TEXT NOT NULL REFERENCES travel_classes(id),
	flight_id       TEXT NOT NULL REFERENCES flights(id)
);

CREATE TABLE IF NOT EXISTS passengers (
	id           TEXT PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	email        TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	zipcode      TEXT NOT NULL DEFAULT '',
	country      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reservations (
	id               TEXT PRIMARY KEY,
	passenger_id     TEXT NOT NULL REFERENCES passengers(id),
	seat_id          TEXT NOT NULL UNIQUE REFERENCES seats(id),
	reservation_date DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
	id             TEXT PRIMARY KEY,
	paid           BOOLEAN NOT NULL DEFAULT FALSE,
	due_date       DATE NOT NULL,
	amount         BIGINT NOT NULL,
	reservation_id TEXT NOT NULL UNIQUE REFERENCES reservations(id)
);

CREATE TABLE IF NOT EXISTS flight_services (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS service_offerings (
	travel_class_id TEXT NOT NULL REFERENCES travel_classes(id),
	service_id      TEXT NOT NULL REFERENCES flight_services(id),
	offered         BOOLEAN NOT NULL,
	from_date       DATE NOT NULL,
	to_date         DATE NOT NULL,
	UNIQUE (travel_class_id, service_id)
);

CREATE TABLE IF NOT EXISTS fares (
	seat_id    TEXT NOT NULL REFERENCES seats(id),
	valid_from DATE NOT NULL,
	valid_to   DATE NOT NULL,
	cost       BIGINT NOT NULL,
	UNIQUE (seat_id, valid_from)
);
`

type flightRow struct {
	id, source, dest string
	departure        time.Time
	arrival          time.Time
	airplane         string
}

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed complete")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// children before parents
	for _, table := range []string{"fares", "service_offerings", "payments", "reservations", "seats", "flight_services", "passengers", "flights", "travel_classes", "airports"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	airports := [][]any{
		{"KHI", "Karachi", "Pakistan"},
		{"LHE", "Lahore", "Pakistan"},
		{"ISB", "Islamabad", "Pakistan"},
		{"PEW", "Peshawar", "Pakistan"},
		{"UET", "Quetta", "Pakistan"},
		{"MUX", "Multan", "Pakistan"},
		{"DXB", "Dubai", "UAE"},
	}
	for _, row := range airports {
		if _, err := tx.Exec(ctx, `INSERT INTO airports (code, city, country) VALUES ($1, $2, $3)`, row...); err != nil {
			return err
		}
	}

	classes := [][]any{
		{"ECO", "Economy", 150},
		{"BUS", "Business", 30},
		{"FIR", "First Class", 10},
	}
	for _, row := range classes {
		if _, err := tx.Exec(ctx, `INSERT INTO travel_classes (id, name, capacity) VALUES ($1, $2, $3)`, row...); err != nil {
			return err
		}
	}

	flights := []flightRow{
		{"PK301", "KHI", "DXB", time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC), time.Date(2025, 11, 15, 14, 0, 0, 0, time.UTC), "Airbus A320"},
		{"PK302", "DXB", "KHI", time.Date(2025, 11, 16, 18, 0, 0, 0, time.UTC), time.Date(2025, 11, 16, 22, 0, 0, 0, time.UTC), "Boeing 737"},
		{"PK101", "KHI", "LHE", time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC), time.Date(2025, 11, 17, 10, 30, 0, 0, time.UTC), "Airbus A320"},
		{"PK102", "LHE", "KHI", time.Date(2025, 11, 17, 18, 0, 0, 0, time.UTC), time.Date(2025, 11, 17, 19, 30, 0, 0, time.UTC), "Boeing 737"},
	}
	for _, f := range flights {
		if _, err := tx.Exec(ctx, `
			INSERT INTO flights (id, source_airport, destination_airport, departure_time, arrival_time, airplane_type)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			f.id, f.source, f.dest, f.departure, f.arrival, f.airplane); err != nil {
			return err
		}
	}

	// full seat map per flight: rows 1-30, letters A-F
	letters := []string{"A", "B", "C", "D", "E", "F"}
	for _, f := range flights {
		for row := 1; row <= 30; row++ {
			classID := "ECO"
			switch {
			case row <= 3:
				classID = "BUS"
			case row <= 5:
				classID = "FIR"
			}
			for _, letter := range letters {
				seatID := fmt.Sprintf("%s-%d%s", f.id, row, letter)
				if _, err := tx.Exec(ctx, `INSERT INTO seats (id, travel_class_id, flight_id) VALUES ($1, $2, $3)`, seatID, classID, f.id); err != nil {
					return err
				}
			}
		}
	}

	today := time.Now().Truncate(24 * time.Hour)

	passengers := [][]any{
		{"P001", "Hamza", "Kashif", "hamza@example.com", "03341371292", "Some Street", "Karachi", "Sindh", "75300", "Pakistan"},
		{"P002", "Ali", "Ahmed", "ali@example.com", "03001234567", "Another Street", "Lahore", "Punjab", "54000", "Pakistan"},
	}
	for _, row := range passengers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO passengers (id, first_name, last_name, email, phone_number, address, city, state, zipcode, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, row...); err != nil {
			return err
		}
	}

	reservations := [][]any{
		{"R001", "P001", "PK301-1A", today},
		{"R002", "P002", "PK301-22C", today},
	}
	for _, row := range reservations {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reservations (id, passenger_id, seat_id, reservation_date)
			VALUES ($1, $2, $3, $4)`, row...); err != nil {
			return err
		}
	}

	payments := [][]any{
		{"PAY001", true, today, int64(65000), "R001"},
		{"PAY002", false, today.AddDate(0, 0, 7), int64(40000), "R002"},
	}
	for _, row := range payments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO payments (id, paid, due_date, amount, reservation_id)
			VALUES ($1, $2, $3, $4, $5)`, row...); err != nil {
			return err
		}
	}

	services := [][]any{
		{"MEAL", "Meals Included"},
		{"WIFI", "WiFi"},
		{"TV", "In-Flight Entertainment"},
	}
	for _, row := range services {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_services (id, name) VALUES ($1, $2)`, row...); err != nil {
			return err
		}
	}

	offerings := [][]any{
		{"BUS", "MEAL", true},
		{"BUS", "WIFI", true},
		{"ECO", "MEAL", true},
		{"ECO", "WIFI", false},
	}
	for _, row := range offerings {
		if _, err := tx.Exec(ctx, `
			INSERT INTO service_offerings (travel_class_id, service_id, offered, from_date, to_date)
			VALUES ($1, $2, $3, $4, $5)`, row[0], row[1], row[2], today, today.AddDate(0, 0, 90)); err != nil {
			return err
		}
	}

	fares := [][]any{
		{"PK301-1A", int64(65000)},
		{"PK301-1B", int64(63000)},
		{"PK301-22C", int64(40000)},
		{"PK301-22D", int64(38000)},
	}
	for _, row := range fares {
		if _, err := tx.Exec(ctx, `
			INSERT INTO fares (seat_id, valid_from, valid_to, cost)
			VALUES ($1, $2, $3, $4)`, row[0], today, today.AddDate(0, 0, 30), row[1]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
