package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so repository methods run against the
// pool by default and against a transaction when one is carried in the
// context.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs a function inside a transaction. Satisfied by *DB;
// services depend on this rather than the concrete pool so unit tests can
// substitute a pass-through.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}

type contextKey string

// querierKey is the context key carrying the active transaction.
const querierKey contextKey = "querier"

// WithQuerier stores a querier (normally a transaction) in the context.
func WithQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, querierKey, q)
}

// Querier returns the transaction carried in ctx if present, otherwise the
// connection pool.
func (db *DB) Querier(ctx context.Context) Querier {
	if q, ok := ctx.Value(querierKey).(Querier); ok {
		return q
	}
	return db.Pool
}

// Transact runs fn inside a transaction carried via the context. Every
// repository call made with the context fn receives joins the same
// transaction. Commit and rollback errors, like any error from fn, are
// normalized through MapError. If ctx already carries a transaction, fn runs
// inside it and commit is left to the outer Transact.
func (db *DB) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(querierKey).(Querier); ok {
		return fn(ctx)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", MapError(err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	if err := fn(WithQuerier(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", MapError(err))
	}
	return nil
}

var _ Transactor = (*DB)(nil)

// MapError translates driver-level failures into the application error
// taxonomy so callers can test with errors.Is instead of matching SQLSTATEs.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization failure, deadlock detected
			return fmt.Errorf("%w: %s", apperrors.ErrConcurrency, pgErr.Message)
		case "23505": // unique violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case "23503": // foreign key violation
			return fmt.Errorf("%w: %s", apperrors.ErrReferential, pgErr.ConstraintName)
		case "23514": // check constraint violation
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
}
