// Command booking serves the destination catalogue and reservations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/explora/travel-booking/docs/bookingdocs"
	"github.com/explora/travel-booking/internal/api"
	"github.com/explora/travel-booking/internal/api/handler"
	"github.com/explora/travel-booking/internal/core/ports"
	"github.com/explora/travel-booking/internal/core/service"
	"github.com/explora/travel-booking/internal/infrastructure/config"
	"github.com/explora/travel-booking/internal/infrastructure/db"
	mongodb "github.com/explora/travel-booking/internal/infrastructure/db/mongo"
	"github.com/explora/travel-booking/internal/infrastructure/db/postgres"
	redisdb "github.com/explora/travel-booking/internal/infrastructure/db/redis"
	"github.com/explora/travel-booking/internal/infrastructure/queue"
	"github.com/explora/travel-booking/pkg/logger"
)

// @title        Explora Booking API
// @version      1.0
// @description  Destination catalogue and reservations.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "booking:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBooking(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "booking"})

	store, err := db.Open(ctx, cfg.Database.URL, cfg.Database.MongoDatabase)
	if err != nil {
		return err
	}
	defer store.Close()

	var (
		destinations ports.DestinationRepository
		reservations ports.ReservationRepository
		ensureSchema func(ctx context.Context) error
	)
	switch store.Backend {
	case db.Mongo:
		destinations = mongodb.NewDestinationRepository(store.Mongo)
		reservations = mongodb.NewReservationRepository(store.Mongo)
		ensureSchema = func(ctx context.Context) error { return mongodb.EnsureBookingIndexes(ctx, store.Mongo) }
	default:
		destinations = postgres.NewDestinationRepository(store.Pool)
		reservations = postgres.NewReservationRepository(store.Pool)
		ensureSchema = func(ctx context.Context) error { return postgres.EnsureBookingSchema(ctx, store.Pool) }
	}

	checks := map[string]handler.HealthCheck{string(store.Backend): store.Ping}

	var (
		idem   ports.IdempotencyStore
		serial ports.Serializer
	)
	if cfg.Redis.Enabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redisdb.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		// Outlives ctx so requests still draining at shutdown can finish.
		queueCtx, stopQueue := context.WithCancel(context.Background())
		defer stopQueue()
		dispatcher := queue.NewDispatcher(cfg.SerializerWorkers, log)
		dispatcher.Start(queueCtx)
		serial = dispatcher
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotent replays disabled")
	}

	reservationService := service.NewReservationService(reservations, destinations, idem, log)
	if serial != nil {
		reservationService.SerializeBy(serial)
	}

	err = db.WaitFor(ctx, cfg.Database.ConnectAttempts, cfg.Database.ConnectDelay, log, func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return err
		}
		return ensureSchema(ctx)
	})
	if err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := api.NewBookingRouter(api.BookingRouterDeps{
		Destinations: service.NewDestinationService(destinations, log),
		Reservations: reservationService,
		JWTSecret:    cfg.JWTSecret,
		Checks:       checks,
		Registry:     reg,
		Logger:       log,
	})

	return api.Serve(ctx, e, ":"+cfg.Port, log)
}
