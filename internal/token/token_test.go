package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/explora/travel-booking/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}
}

func TestIssueAndDecode(t *testing.T) {
	issuer, err := NewIssuer("secret", 0)
	require.NoError(t, err)

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := Decode(raw, "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username())
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, domain.RoleUser, claims.Role)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, DefaultTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssue_TokensAreDistinct(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	first, err := issuer.Issue(testUser())
	require.NoError(t, err)
	second, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestDecode_Expired(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = Decode(raw, "secret")
	require.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = Decode(raw, "other-secret")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":     "alice",
		"user_id": 7,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = Decode(hs384, "secret")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = Decode(none, "secret")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_RequiresExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"role": "user",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Decode(raw, "secret")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode("not-a-token", "secret")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	require.Error(t, err)
}
