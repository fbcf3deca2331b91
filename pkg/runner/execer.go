package runner

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Execer is the minimal interface needed to run rendered statements.
// Implemented by *sql.DB, *sql.Tx, *sql.Conn and their sqlx wrappers.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Querier is the read-only subset of Execer.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Execer  = (*sql.DB)(nil)
	_ Execer  = (*sql.Tx)(nil)
	_ Execer  = (*sql.Conn)(nil)
	_ Execer  = (*sqlx.DB)(nil)
	_ Execer  = (*sqlx.Tx)(nil)
	_ Querier = (Execer)(nil)
)
