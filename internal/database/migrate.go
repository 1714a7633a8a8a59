package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bookings reference flights and users with ON DELETE RESTRICT: a flight or
// user with bookings cannot be removed out from under them.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id bigserial PRIMARY KEY,
		username text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		role text NOT NULL DEFAULT 'user',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id bigserial PRIMARY KEY,
		departure_city text NOT NULL,
		arrival_city text NOT NULL,
		image text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		route text NOT NULL DEFAULT '',
		departure_datetime timestamptz NOT NULL,
		arrival_datetime timestamptz NOT NULL,
		price_cents bigint NOT NULL CHECK (price_cents >= 0),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id bigserial PRIMARY KEY,
		flight_id bigint NOT NULL REFERENCES flights(id) ON DELETE RESTRICT,
		user_id bigint NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		full_name text NOT NULL,
		email text NOT NULL,
		phone text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the schema if it does not exist yet. Safe to run on every
// startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
