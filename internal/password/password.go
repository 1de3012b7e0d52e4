// Package password hashes and verifies user passwords with bcrypt or argon2id.
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/explora/travel-booking/internal/core/domain"
)

const (
	Bcrypt   = "bcrypt"
	Argon2id = "argon2id"

	argon2idPrefix = "$argon2id$"
)

// Hasher produces digests with the configured algorithm. Verification works
// for digests of either algorithm, so switching algorithms keeps existing
// accounts usable.
type Hasher struct {
	algorithm  string
	bcryptCost int
	argonParam *argon2id.Params
}

// New returns a Hasher for the named algorithm. An empty name selects bcrypt.
func New(algorithm string) (*Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", Bcrypt:
		return &Hasher{algorithm: Bcrypt, bcryptCost: bcrypt.DefaultCost}, nil
	case Argon2id:
		return &Hasher{algorithm: Argon2id, argonParam: argon2id.DefaultParams}, nil
	default:
		return nil, fmt.Errorf("password: unsupported algorithm %q", algorithm)
	}
}

// Algorithm returns the algorithm used for new digests.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash returns a salted digest of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	if h.algorithm == Argon2id {
		digest, err := argon2id.CreateHash(plain, h.argonParam)
		if err != nil {
			return "", fmt.Errorf("argon2id hash: %w", err)
		}
		return digest, nil
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A mismatch is not an error.
func (h *Hasher) Verify(plain, digest string) (bool, error) {
	if strings.HasPrefix(digest, argon2idPrefix) {
		ok, err := argon2id.ComparePasswordAndHash(plain, digest)
		if err != nil {
			return false, fmt.Errorf("argon2id verify: %w", err)
		}
		return ok, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt verify: %w", err)
	}
}
