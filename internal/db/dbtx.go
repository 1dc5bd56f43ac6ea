package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repositories are
// built against it so lifecycle operations can rebind them to a transaction
// with WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-index violation.
// The unique indexes are the authoritative guard against check-then-insert
// races; callers map this to a Conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
