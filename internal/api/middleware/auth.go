package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/explora/travel-booking/internal/api/metrics"
	"github.com/explora/travel-booking/internal/token"
)

const (
	MsgMissingHeader   = "Missing Authorization header"
	MsgMalformedHeader = "Malformed Authorization header"
	MsgInvalidScheme   = "Invalid auth scheme"
	MsgInvalidToken    = "Invalid token"
	MsgAdminRequired   = "Admin access required"
)

// AuthError is the rejection produced by a guard check.
type AuthError struct {
	Status  int
	Reason  string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func unauthorized(reason, msg string) *AuthError {
	return &AuthError{Status: http.StatusUnauthorized, Reason: reason, Message: msg}
}

// Check inspects an Authorization header value and returns either the token
// claims or the reason for rejecting the request.
type Check func(header string) (*token.Claims, *AuthError)

// ClaimsHandler is a handler that runs only after a successful Check.
type ClaimsHandler func(c echo.Context, claims *token.Claims) error

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, *AuthError) {
	if header == "" {
		return "", unauthorized("missing_header", MsgMissingHeader)
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return "", unauthorized("malformed_header", MsgMalformedHeader)
	}
	if !strings.EqualFold(fields[0], "bearer") {
		return "", unauthorized("invalid_scheme", MsgInvalidScheme)
	}
	return fields[1], nil
}

// Guard validates access tokens locally with the shared signing secret.
type Guard struct {
	secret  string
	metrics *metrics.Metrics
}

// NewGuard returns a Guard. m may be nil.
func NewGuard(secret string, m *metrics.Metrics) *Guard {
	return &Guard{secret: secret, metrics: m}
}

// Authenticate accepts any valid token.
func (g *Guard) Authenticate(header string) (*token.Claims, *AuthError) {
	raw, authErr := BearerToken(header)
	if authErr != nil {
		return nil, authErr
	}
	claims, err := token.Decode(raw, g.secret)
	if err != nil {
		return nil, unauthorized("invalid_token", MsgInvalidToken)
	}
	return claims, nil
}

// RequireAdmin accepts only valid tokens carrying the admin role.
func (g *Guard) RequireAdmin(header string) (*token.Claims, *AuthError) {
	claims, authErr := g.Authenticate(header)
	if authErr != nil {
		return nil, authErr
	}
	if authErr := RequireRole(claims, adminRole); authErr != nil {
		return nil, authErr
	}
	return claims, nil
}

// Protect runs check against the request's Authorization header and calls h
// with the resulting claims. Rejections are returned as *AuthError for the
// central error handler.
func (g *Guard) Protect(check Check, h ClaimsHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, authErr := check(c.Request().Header.Get(echo.HeaderAuthorization))
		if authErr != nil {
			if g.metrics != nil {
				g.metrics.AuthFailuresTotal.WithLabelValues(authErr.Reason).Inc()
			}
			return authErr
		}
		return h(c, claims)
	}
}
