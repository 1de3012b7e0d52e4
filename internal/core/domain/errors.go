package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrDestinationNotFound = errors.New("destination not found")
	ErrDestinationInUse    = errors.New("destination has reservations")
	ErrInvalidDateRange    = errors.New("check-out date must be after check-in date")
	ErrMissingPrice        = errors.New("destination has no price set")
)
