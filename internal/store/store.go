// Package store owns all SQL against the profile/preference tables. Every
// read and write is scoped to the requesting user both in the statement
// itself and through the request.jwt.claim.sub setting, so the database's
// row-level-security policies apply when the service connects as a
// non-owner role.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the requester owns no matching row.
var ErrNotFound = errors.New("store: row not found")

// ErrNoProfile is returned when a preference write references a user that
// has no profile row yet.
var ErrNoProfile = errors.New("store: no profile for user")

// fkViolation is the one Postgres error code the store classifies;
// everything else is passed through.
const fkViolation = "23503"

// asRequester runs fn inside a transaction whose request.jwt.claim.sub is
// set to the requester's id, which is what auth.uid() reads.
func asRequester(ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`select set_config('request.jwt.claim.sub', $1, true)`, userID.String()); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
