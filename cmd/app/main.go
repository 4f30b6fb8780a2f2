package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akazantsev/flightdesk/config"
	"github.com/akazantsev/flightdesk/internal/bootstrap"
	"github.com/akazantsev/flightdesk/internal/cache"
	"github.com/akazantsev/flightdesk/internal/kafka"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/metrics"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/akazantsev/flightdesk/internal/service/flights"
	"github.com/akazantsev/flightdesk/internal/service/passengers"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	m := metrics.NewMetrics("flightdesk")

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		redisCache,
		producer,
		log,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.HoldTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithMetrics(m),
	)
	passengerService := passengers.NewPassengerService(
		passengerRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinute)*time.Minute,
	)

	if err := bootstrap.Run(ctx, cfg, log, flightService, bookingService, passengerService); err != nil {
		log.Fatal("server error", "error", err)
	}
}
