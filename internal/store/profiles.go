package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"CONVERSOR_BACK-END/internal/models"
)

// ProfileStore reads and updates public.profiles. There is no insert or
// delete method: rows come from the signup trigger and leave via the
// auth.users cascade.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

// GetOwn returns the requester's own profile row.
func (s *ProfileStore) GetOwn(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const q = `
select id, name, created_at
from public.profiles
where id = $1
limit 1;
`
	var p models.Profile
	err := asRequester(ctx, s.pool, userID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, userID).Scan(&p.ID, &p.Name, &p.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateName sets the display name on the requester's own profile and
// returns the updated row. An empty name is allowed — it matches the
// signup default.
func (s *ProfileStore) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*models.Profile, error) {
	const q = `
update public.profiles
set name = $2
where id = $1
returning id, name, created_at;
`
	var p models.Profile
	err := asRequester(ctx, s.pool, userID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, userID, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Provision performs the same conflict-tolerant insert the database trigger
// runs, for deployments that mirror auth events through a webhook instead.
// Returns true when a row was actually created. This is a system operation
// (the trigger is SECURITY DEFINER), so it does not run as the requester.
func (s *ProfileStore) Provision(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	const q = `
insert into public.profiles (id, name)
values ($1, $2)
on conflict (id) do nothing;
`
	ct, err := s.pool.Exec(ctx, q, id, name)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}
