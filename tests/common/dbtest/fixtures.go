//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, name string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, name, testPasswordHash)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// SeedReferenceData inserts the default account most e2e flows log in with.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash) VALUES
		    (gen_random_uuid(), 'agent@example.com', 'Booking Agent', $1)
		ON CONFLICT (email) DO NOTHING;
	`, testPasswordHash)
	return err
}

// ResetDB empties all mutable tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE users, reservations, history RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
