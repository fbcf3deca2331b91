// Package runner executes sqldsl statements through database/sql.
//
// The builder itself never touches a database. A Runner renders a statement
// for its dialect and hands the SQL and captured values to an Execer, which
// can be a *sql.DB, *sql.Tx, or *sql.Conn:
//
//	db, dialect, err := runner.Open(ctx, "pgx", dsn)
//	r := runner.New(db, dialect)
//	rows, err := r.Query(ctx, Jedi.SelectAll().Where(Name.Is("Luke")))
//
// Driver errors are classified by SQLSTATE (or SQLite result code) into the
// sentinel errors of this package.
package runner

import (
	"context"
	"database/sql"
	"log/slog"
	"reflect"

	"github.com/lib/pq"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Runner renders statements for one dialect and executes them.
type Runner struct {
	db       Execer
	dialect  sqldsl.Dialect
	pqArrays bool
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger logs every rendered statement at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithPQArrays binds slice arguments as PostgreSQL arrays through
// pq.Array. Needed for lib/pq, which rejects Go slices; pgx encodes them
// natively.
func WithPQArrays() Option {
	return func(r *Runner) {
		r.pqArrays = true
	}
}

// New creates a Runner. Dialect must match the driver behind db.
func New(db Execer, d sqldsl.Dialect, opts ...Option) *Runner {
	r := &Runner{db: db, dialect: d}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dialect returns the runner's dialect.
func (r *Runner) Dialect() sqldsl.Dialect {
	return r.dialect
}

// Render renders stmt for the runner's dialect without executing it.
func (r *Runner) Render(stmt sqldsl.Statement) (sqldsl.Query, error) {
	q, err := sqldsl.Render(r.dialect, stmt)
	if err != nil {
		return sqldsl.Query{}, err
	}
	if r.pqArrays {
		q.Args = wrapArrays(q.Args)
	}
	if r.logger != nil {
		r.logger.Debug("rendered statement", "dialect", r.dialect.Name(), "sql", q.SQL, "args", len(q.Args))
	}
	return q, nil
}

// Exec runs a statement that returns no rows.
func (r *Runner) Exec(ctx context.Context, stmt sqldsl.Statement) (sql.Result, error) {
	q, err := r.Render(stmt)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, mapError("exec", err)
	}
	return res, nil
}

// Query runs a statement and returns its rows. The caller closes them.
func (r *Runner) Query(ctx context.Context, stmt sqldsl.Statement) (*sql.Rows, error) {
	q, err := r.Render(stmt)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, mapError("query", err)
	}
	return rows, nil
}

// QueryRow runs a statement expected to return at most one row. Scan errors
// are returned unclassified.
func (r *Runner) QueryRow(ctx context.Context, stmt sqldsl.Statement) (*sql.Row, error) {
	q, err := r.Render(stmt)
	if err != nil {
		return nil, err
	}
	return r.db.QueryRowContext(ctx, q.SQL, q.Args...), nil
}

// QueryMaps runs a statement and decodes every row with ScanMaps.
func (r *Runner) QueryMaps(ctx context.Context, stmt sqldsl.Statement) ([]Row, error) {
	rows, err := r.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := ScanMaps(rows)
	if err != nil {
		return nil, mapError("scan", err)
	}
	return out, nil
}

// wrapArrays replaces slice arguments (other than []byte) with pq.Array.
func wrapArrays(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
		if a == nil {
			continue
		}
		if _, ok := a.([]byte); ok {
			continue
		}
		if reflect.TypeOf(a).Kind() == reflect.Slice {
			out[i] = pq.Array(a)
		}
	}
	return out
}
