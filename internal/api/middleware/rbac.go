package middleware

import (
	"net/http"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/token"
)

const adminRole = domain.RoleAdmin

// RequireRole rejects claims whose role is not exactly one of allowedRoles.
func RequireRole(claims *token.Claims, allowedRoles ...string) *AuthError {
	for _, r := range allowedRoles {
		if claims.Role == r {
			return nil
		}
	}
	return &AuthError{Status: http.StatusForbidden, Reason: "forbidden", Message: MsgAdminRequired}
}
