// Command auth serves registration, login and token verification.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	_ "github.com/explora/travel-booking/docs/authdocs"
	"github.com/explora/travel-booking/internal/api"
	"github.com/explora/travel-booking/internal/api/handler"
	"github.com/explora/travel-booking/internal/core/ports"
	"github.com/explora/travel-booking/internal/core/service"
	"github.com/explora/travel-booking/internal/infrastructure/config"
	"github.com/explora/travel-booking/internal/infrastructure/db"
	mongodb "github.com/explora/travel-booking/internal/infrastructure/db/mongo"
	"github.com/explora/travel-booking/internal/infrastructure/db/postgres"
	redisdb "github.com/explora/travel-booking/internal/infrastructure/db/redis"
	"github.com/explora/travel-booking/internal/password"
	"github.com/explora/travel-booking/internal/token"
	"github.com/explora/travel-booking/pkg/logger"
)

// @title        Explora Auth API
// @version      1.0
// @description  User registration, login and token verification.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "auth:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAuth(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "auth"})

	hasher, err := password.New(cfg.PasswordHasher)
	if err != nil {
		return err
	}
	log.Info().Str("password_hasher", hasher.Algorithm()).Msg("password hashing configured")
	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	store, err := db.Open(ctx, cfg.Database.URL, cfg.Database.MongoDatabase)
	if err != nil {
		return err
	}
	defer store.Close()

	var (
		users        ports.UserRepository
		ensureSchema func(ctx context.Context) error
	)
	switch store.Backend {
	case db.Mongo:
		users = mongodb.NewUserRepository(store.Mongo)
		ensureSchema = func(ctx context.Context) error { return mongodb.EnsureAuthIndexes(ctx, store.Mongo) }
	default:
		users = postgres.NewUserRepository(store.Pool)
		ensureSchema = func(ctx context.Context) error { return postgres.EnsureAuthSchema(ctx, store.Pool) }
	}

	checks := map[string]handler.HealthCheck{string(store.Backend): store.Ping}

	var limiter ports.LoginLimiter
	if cfg.Redis.Enabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Info().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	authService := service.NewAuthService(users, hasher, issuer, limiter, log)
	seed := service.AdminSeed{Username: cfg.Admin.Username, Email: cfg.Admin.Email, Password: cfg.Admin.Password}

	ready := func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return err
		}
		return ensureSchema(ctx)
	}
	err = prepare(ctx, cfg.Database, log, ready, func(ctx context.Context) error {
		return authService.EnsureAdmin(ctx, seed)
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := api.NewAuthRouter(api.AuthRouterDeps{
		Service:  authService,
		Checks:   checks,
		Registry: reg,
		Logger:   log,
	})

	return api.Serve(ctx, e, ":"+cfg.Port, log)
}

// prepare retries ready until storage answers, then runs seed exactly once.
// A seed failure is not a connectivity problem, so it is not retried.
func prepare(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, ready, seed func(ctx context.Context) error) error {
	if err := db.WaitFor(ctx, cfg.ConnectAttempts, cfg.ConnectDelay, log, ready); err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	if err := seed(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
