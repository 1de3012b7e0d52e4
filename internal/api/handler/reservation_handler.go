package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/explora/travel-booking/internal/api/metrics"
	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
	"github.com/explora/travel-booking/internal/token"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

type ReservationHandler struct {
	service ports.ReservationService
	metrics *metrics.Metrics
}

func NewReservationHandler(service ports.ReservationService, m *metrics.Metrics) *ReservationHandler {
	return &ReservationHandler{service: service, metrics: m}
}

type createReservationRequest struct {
	DestinationID int64        `json:"destination_id" validate:"required,gt=0"`
	People        *int         `json:"people" validate:"omitempty,min=1"`
	CheckIn       *domain.Date `json:"check_in" validate:"required"`
	CheckOut      *domain.Date `json:"check_out" validate:"required"`
}

// Create books a destination for the caller.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                    false  "Replay protection key"
// @Param        body             body      createReservationRequest  true   "Reservation"
// @Success      200              {object}  domain.Reservation
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c echo.Context, claims *token.Claims) error {
	var req createReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	people := 1
	if req.People != nil {
		people = *req.People
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:         claims.UserID,
		DestinationID:  req.DestinationID,
		People:         people,
		CheckIn:        *req.CheckIn,
		CheckOut:       *req.CheckOut,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if res.Replayed {
		c.Response().Header().Set(HeaderReplayed, "true")
	} else {
		h.metrics.ReservationsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusOK, res.Reservation)
}

// List returns the caller's reservations.
//
// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  map[string]string
// @Router       /reservations [get]
func (h *ReservationHandler) List(c echo.Context, claims *token.Claims) error {
	items, err := h.service.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Reservation{}
	}
	return c.JSON(http.StatusOK, items)
}
