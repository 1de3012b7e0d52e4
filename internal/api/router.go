package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/explora/travel-booking/internal/api/handler"
	"github.com/explora/travel-booking/internal/api/metrics"
	"github.com/explora/travel-booking/internal/api/middleware"
	"github.com/explora/travel-booking/internal/core/ports"
)

// AuthRouterDeps are the collaborators of the auth service's HTTP surface.
type AuthRouterDeps struct {
	Service  ports.AuthService
	Checks   map[string]handler.HealthCheck
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// BookingRouterDeps are the collaborators of the booking service's HTTP surface.
type BookingRouterDeps struct {
	Destinations ports.DestinationService
	Reservations ports.ReservationService
	JWTSecret    string
	Checks       map[string]handler.HealthCheck
	Registry     *prometheus.Registry
	Logger       zerolog.Logger
}

// NewAuthRouter builds the Echo instance for the auth service.
func NewAuthRouter(deps AuthRouterDeps) *echo.Echo {
	e, m := newEcho("auth", deps.Registry, deps.Logger, deps.Checks)

	authHandler := handler.NewAuthHandler(deps.Service, m)
	e.POST("/register", authHandler.Register)
	e.POST("/token", authHandler.Token)
	e.GET("/verify", authHandler.Verify)

	return e
}

// NewBookingRouter builds the Echo instance for the booking service.
func NewBookingRouter(deps BookingRouterDeps) *echo.Echo {
	e, m := newEcho("booking", deps.Registry, deps.Logger, deps.Checks)

	guard := middleware.NewGuard(deps.JWTSecret, m)
	destinations := handler.NewDestinationHandler(deps.Destinations, m)
	reservations := handler.NewReservationHandler(deps.Reservations, m)

	// --- Catalogue: public reads, admin writes ---
	e.GET("/destinations", destinations.List)
	e.POST("/destinations", guard.Protect(guard.RequireAdmin, destinations.Create))
	e.PATCH("/destinations/:id", guard.Protect(guard.RequireAdmin, destinations.Update))
	e.DELETE("/destinations/:id", guard.Protect(guard.RequireAdmin, destinations.Delete))

	// --- Reservations: any valid token ---
	e.POST("/reservations", guard.Protect(guard.Authenticate, reservations.Create))
	e.GET("/reservations", guard.Protect(guard.Authenticate, reservations.List))

	return e
}

// newEcho wires the middleware, health endpoints, metrics and docs shared by both services.
func newEcho(service string, reg *prometheus.Registry, log zerolog.Logger, checks map[string]handler.HealthCheck) (*echo.Echo, *metrics.Metrics) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, handler.HeaderIdempotencyKey},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  service,
		Registerer: reg,
	}))

	// --- Health checks (no auth required) ---
	health := handler.NewHealthHandler(checks)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(service)))

	return e, metrics.New(reg)
}
