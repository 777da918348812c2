// Package testutil provides database helpers shared by the store, schema
// and handler tests.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"CONVERSOR_BACK-END/internal/db"
)

// SetupTestDB connects to TEST_DATABASE_URL, drops any leftover state and
// applies a fresh schema. Tests that need a database are skipped when the
// variable is unset.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse TEST_DATABASE_URL: %v", err)
	}
	// Same mode as production: the schema script is sent as one batch.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	// Clean up tables before each test
	_, err = pool.Exec(ctx, `
		drop table if exists public.preferences;
		drop table if exists public.profiles;
		drop table if exists auth.users cascade;
	`)
	if err != nil {
		t.Fatalf("clean test database: %v", err)
	}

	if err := db.Apply(ctx, pool); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return pool
}

// CreateAuthUser inserts a row into auth.users, which fires the profile
// provisioning trigger. An empty name leaves the signup metadata without a
// name key.
func CreateAuthUser(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	meta := map[string]string{}
	if name != "" {
		meta["name"] = name
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`insert into auth.users (id, email, raw_user_meta_data) values ($1, $2, $3::jsonb)`,
		id, id.String()+"@example.com", string(raw))
	if err != nil {
		t.Fatalf("insert auth user: %v", err)
	}
	return id
}
