package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/explora/travel-booking/internal/api/metrics"
	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
	"github.com/explora/travel-booking/internal/token"
)

type DestinationHandler struct {
	service ports.DestinationService
	metrics *metrics.Metrics
}

func NewDestinationHandler(service ports.DestinationService, m *metrics.Metrics) *DestinationHandler {
	return &DestinationHandler{service: service, metrics: m}
}

type createDestinationRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Region      *string  `json:"region"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

type updateDestinationRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Region      *string  `json:"region"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// List returns every destination.
//
// @Summary      List destinations
// @Tags         destinations
// @Produce      json
// @Success      200  {array}   domain.Destination
// @Router       /destinations [get]
func (h *DestinationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Destination{}
	}
	return c.JSON(http.StatusOK, items)
}

// Create adds a destination.
//
// @Summary      Create a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDestinationRequest  true  "Destination"
// @Success      200   {object}  domain.Destination
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /destinations [post]
func (h *DestinationHandler) Create(c echo.Context, claims *token.Claims) error {
	var req createDestinationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), claims.Username(), &domain.Destination{
		Name:        req.Name,
		Description: req.Description,
		Region:      req.Region,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	h.metrics.DestinationMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, created)
}

// Update changes only the fields present in the body.
//
// @Summary      Update a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Destination ID"
// @Param        body  body      updateDestinationRequest  true  "Fields to change"
// @Success      200   {object}  domain.Destination
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /destinations/{id} [patch]
func (h *DestinationHandler) Update(c echo.Context, claims *token.Claims) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateDestinationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), claims.Username(), id, domain.DestinationPatch{
		Name:        req.Name,
		Description: req.Description,
		Region:      req.Region,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	h.metrics.DestinationMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a destination.
//
// @Summary      Delete a destination
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /destinations/{id} [delete]
func (h *DestinationHandler) Delete(c echo.Context, claims *token.Claims) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims.Username(), id); err != nil {
		return err
	}

	h.metrics.DestinationMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Destination deleted successfully"})
}
