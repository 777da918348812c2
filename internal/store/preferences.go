package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"CONVERSOR_BACK-END/internal/models"
)

// PreferenceStore reads and upserts the per-user default currency pair.
type PreferenceStore struct {
	pool *pgxpool.Pool
}

func NewPreferenceStore(pool *pgxpool.Pool) *PreferenceStore {
	return &PreferenceStore{pool: pool}
}

// GetOwn returns the requester's preference row, or ErrNotFound if they
// have not saved a pair yet.
func (s *PreferenceStore) GetOwn(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	const q = `
select user_id, default_from, default_to, updated_at
from public.preferences
where user_id = $1
limit 1;
`
	var p models.Preference
	err := asRequester(ctx, s.pool, userID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, userID).Scan(&p.UserID, &p.DefaultFrom, &p.DefaultTo, &p.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert saves the requester's default pair, creating the row on first use
// and refreshing updated_at on every write. The schema leaves updated_at to
// the application, so it is set here rather than by a trigger.
func (s *PreferenceStore) Upsert(ctx context.Context, userID uuid.UUID, defaultFrom, defaultTo string) (*models.Preference, error) {
	const q = `
insert into public.preferences (user_id, default_from, default_to, updated_at)
values ($1, $2, $3, now())
on conflict (user_id) do update
set default_from = excluded.default_from,
    default_to   = excluded.default_to,
    updated_at   = now()
returning user_id, default_from, default_to, updated_at;
`
	var p models.Preference
	err := asRequester(ctx, s.pool, userID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, userID, defaultFrom, defaultTo).
			Scan(&p.UserID, &p.DefaultFrom, &p.DefaultTo, &p.UpdatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			// user_id references public.profiles — no profile, no preference
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return &p, nil
}
