package postgres

import (
	"context"
	"fmt"
)

var authSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGSERIAL PRIMARY KEY,
		username        TEXT        NOT NULL,
		email           TEXT,
		hashed_password TEXT        NOT NULL,
		role            TEXT        NOT NULL DEFAULT 'user',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)`,
}

var bookingSchema = []string{
	`CREATE TABLE IF NOT EXISTS destinations (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		region      TEXT,
		price       DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT           NOT NULL,
		destination_id BIGINT           NOT NULL REFERENCES destinations (id),
		people         INTEGER          NOT NULL DEFAULT 1 CHECK (people >= 1),
		check_in       DATE             NOT NULL,
		check_out      DATE             NOT NULL,
		total_price    DOUBLE PRECISION NOT NULL,
		created_at     TIMESTAMPTZ      NOT NULL DEFAULT now(),
		CHECK (check_out > check_in)
	)`,
	`CREATE INDEX IF NOT EXISTS reservations_user_id_idx ON reservations (user_id)`,
}

// EnsureAuthSchema creates the users table when missing.
func EnsureAuthSchema(ctx context.Context, db DB) error {
	return apply(ctx, db, authSchema)
}

// EnsureBookingSchema creates the destinations and reservations tables when missing.
func EnsureBookingSchema(ctx context.Context, db DB) error {
	return apply(ctx, db, bookingSchema)
}

func apply(ctx context.Context, db DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
