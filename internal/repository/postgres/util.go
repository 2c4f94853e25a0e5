package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/vedran77/chirp/internal/repository"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func lockRow(ctx context.Context, tx pgx.Tx, query string, id uuid.UUID) error {
	var locked uuid.UUID
	err := tx.QueryRow(ctx, query, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// wrapTxErr adds context to err unless it is a repository sentinel.
func wrapTxErr(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	return pkgerrors.Wrap(err, op)
}

func count(ctx context.Context, pool *pgxpool.Pool, op, query string, args ...any) (int, error) {
	var n int
	if err := pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, pkgerrors.Wrap(err, op)
	}
	return n, nil
}

const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
