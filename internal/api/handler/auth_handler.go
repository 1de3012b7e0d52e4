package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/explora/travel-booking/internal/api/metrics"
	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Sub    string `json:"sub"`
	UserID int64  `json:"user_id"`
}

// Register creates a new user account with the "user" role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{ID: user.ID, Username: user.Username})
}

// Token exchanges credentials for an access token.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			h.metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	h.metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: accessToken})
}

// Verify decodes a token and reports its subject.
//
// @Summary      Verify an access token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Access token"
// @Success      200    {object}  verifyResponse
// @Failure      401    {object}  map[string]string
// @Router       /verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, err := h.authService.Verify(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		h.metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, Sub: claims.Username(), UserID: claims.UserID})
}
