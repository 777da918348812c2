package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"CONVERSOR_BACK-END/internal/store"
	"CONVERSOR_BACK-END/internal/testutil"
)

func TestPreferenceUpsertInsertsThenUpdates(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	preferences := store.NewPreferenceStore(pool)
	ctx := context.Background()

	id := testutil.CreateAuthUser(t, pool, "saver")

	first, err := preferences.Upsert(ctx, id, "USD", "EUR")
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if first.DefaultFrom != "USD" || first.DefaultTo != "EUR" {
		t.Errorf("unexpected pair %s/%s", first.DefaultFrom, first.DefaultTo)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := preferences.Upsert(ctx, id, "MXN", "ARS")
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.DefaultFrom != "MXN" || second.DefaultTo != "ARS" {
		t.Errorf("unexpected pair %s/%s", second.DefaultFrom, second.DefaultTo)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at should refresh on upsert: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	// PK = FK keeps it one row per user
	var count int
	if err := pool.QueryRow(ctx,
		`select count(*) from public.preferences where user_id = $1`, id).Scan(&count); err != nil {
		t.Fatalf("count preferences: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one preference row, got %d", count)
	}
}

func TestPreferenceUpsertWithoutProfile(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	preferences := store.NewPreferenceStore(pool)

	_, err := preferences.Upsert(context.Background(), uuid.New(), "USD", "EUR")
	if !errors.Is(err, store.ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestPreferenceGetOwn(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	preferences := store.NewPreferenceStore(pool)
	ctx := context.Background()

	id := testutil.CreateAuthUser(t, pool, "reader")

	if _, err := preferences.GetOwn(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	if _, err := preferences.Upsert(ctx, id, "GBP", "JPY"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	p, err := preferences.GetOwn(ctx, id)
	if err != nil {
		t.Fatalf("GetOwn: %v", err)
	}
	if p.UserID != id || p.DefaultFrom != "GBP" || p.DefaultTo != "JPY" {
		t.Errorf("unexpected row %+v", p)
	}
}

func TestPreferenceIsScopedToOwner(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	preferences := store.NewPreferenceStore(pool)
	ctx := context.Background()

	alice := testutil.CreateAuthUser(t, pool, "alice")
	bob := testutil.CreateAuthUser(t, pool, "bob")

	if _, err := preferences.Upsert(ctx, alice, "USD", "EUR"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Bob never saved a pair; Alice's row must not leak into his reads
	if _, err := preferences.GetOwn(ctx, bob); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bob, got %v", err)
	}
}

func TestProfileDeleteCascadesToPreference(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	preferences := store.NewPreferenceStore(pool)
	ctx := context.Background()

	id := testutil.CreateAuthUser(t, pool, "leaver")
	if _, err := preferences.Upsert(ctx, id, "BRL", "CAD"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if _, err := pool.Exec(ctx, `delete from public.profiles where id = $1`, id); err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	if _, err := preferences.GetOwn(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected cascade to remove the preference row, got %v", err)
	}
}
