package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelora/flightbook/config"
	"github.com/avelora/flightbook/internal/bootstrap"
	"github.com/avelora/flightbook/internal/cache"
	"github.com/avelora/flightbook/internal/kafka"
	"github.com/avelora/flightbook/internal/repository"
	"github.com/avelora/flightbook/internal/service/booking"
	"github.com/avelora/flightbook/internal/service/flights"
	"github.com/avelora/flightbook/internal/service/reference"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.SearchCacheTTL)*time.Second,
		time.Duration(cfg.Booking.ReferenceCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	referenceRepo := repository.NewReferenceRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	referenceService := reference.NewReferenceService(referenceRepo, redisCache)
	flightService := flights.NewFlightService(flightRepo, seatRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second,
		time.Duration(cfg.Booking.PaymentDueDays)*24*time.Hour,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, referenceService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
