package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/session"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
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

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	if err := flightRepo.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed flights: %v", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	sessions := session.NewRedisStore(cfg.Redis, cfg.Session.Secret, sessionTTL)
	flightsCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTLSeconds)*time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	authService := auth.NewAuthService(userRepo, sessions, cfg.Auth.BcryptCost)
	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("ensure admin account: %v", err)
		}
	}

	flightService := flights.NewFlightService(flightRepo, flightsCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	adminService := admin.NewAdminService(flightRepo, bookingRepo, storage.NewDiskImageStore(cfg.Uploads.Dir))

	svcs := bootstrap.Services{
		Auth:     authService,
		Flights:  flightService,
		Bookings: bookingService,
		Admin:    adminService,
	}
	if err := bootstrap.Run(ctx, cfg, svcs); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
