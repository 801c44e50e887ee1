//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"time"

	"parkdesk/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed identifiers so tests can reference seeded rows directly.
var (
	AdminUserID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	OperatorUserID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	ViewerUserID   = uuid.MustParse("00000000-0000-0000-0000-000000000003")

	LocationID = uuid.MustParse("00000000-0000-0000-0000-000000000101")

	SpotA01ID = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	SpotA02ID = uuid.MustParse("00000000-0000-0000-0000-000000000202")
	SpotV01ID = uuid.MustParse("00000000-0000-0000-0000-000000000203")
)

const (
	AdminEmail    = "admin@example.com"
	OperatorEmail = "operator@example.com"
	ViewerEmail   = "viewer@example.com"
	SeedPassword  = "password1234"
)

// SeedReferenceData inserts the users, location and spots every e2e suite
// relies on. Idempotent so suites sharing one database can call it freely.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.HashPassword(SeedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []struct {
		id    uuid.UUID
		email string
		role  string
	}{
		{AdminUserID, AdminEmail, "admin"},
		{OperatorUserID, OperatorEmail, "operator"},
		{ViewerUserID, ViewerEmail, "viewer"},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			u.id, u.email, hash, u.role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO parking_locations (id, name, city, address)
		VALUES ($1, 'Central Garage', 'Jakarta', 'Jl. Sudirman 1')
		ON CONFLICT (id) DO NOTHING`,
		LocationID)
	if err != nil {
		return fmt.Errorf("failed to seed location: %w", err)
	}

	spots := []struct {
		id   uuid.UUID
		code string
		zone string
	}{
		{SpotA01ID, "A-01", "regular"},
		{SpotA02ID, "A-02", "regular"},
		{SpotV01ID, "V-01", "vip"},
	}
	for _, s := range spots {
		_, err := pool.Exec(ctx, `
			INSERT INTO parking_spots (id, location_id, code, zone)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			s.id, LocationID, s.code, s.zone)
		if err != nil {
			return fmt.Errorf("failed to seed spot %s: %w", s.code, err)
		}
	}

	return nil
}

// ResetDB clears mutable state between subtests while keeping reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE payments, reservations"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	if _, err := pool.Exec(ctx, "UPDATE parking_spots SET status = 'available'"); err != nil {
		return fmt.Errorf("failed to reset spot statuses: %w", err)
	}
	return nil
}
