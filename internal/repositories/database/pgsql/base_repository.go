package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// works unchanged inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db querier
}

// collectAll scans every row into T by column name.
func collectAll[T any](ctx context.Context, db querier, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// collectOne scans exactly one row into T, mapping an empty result to apperrors.ErrNotFound.
func collectOne[T any](ctx context.Context, db querier, query string, args ...any) (T, error) {
	var zero T
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.ErrNotFound
		}
		return zero, err
	}
	return item, nil
}

// mapWriteError translates constraint violations into application errors.
func mapWriteError(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s conflicts with an existing record (%s)", apperrors.ErrDuplicate, entity, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s references a record that does not exist", apperrors.ErrValidation, entity)
		case "23514": // check_violation
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, entity, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to write %s: %w", entity, err)
}

// execOne runs a statement that must touch exactly one live row.
func execOne(ctx context.Context, db querier, entity string, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, entity)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s not found", apperrors.ErrNotFound, entity)
	}
	return nil
}

// pgTxManager implements portsrepo.TransactionManager over a pgx pool.
type pgTxManager struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*pgTxManager)(nil)

// WithinTransaction begins a transaction, hands fn repositories bound to it,
// and commits when fn succeeds. Any error, including a panic, rolls back.
func (m *pgTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Repositories) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				slog.ErrorContext(ctx, "Failed to rollback transaction", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(ctx, newRepositories(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
