package runner

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "github.com/mattn/go-sqlite3"    // registers "sqlite3"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Registered driver names.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite3"
)

// DialectForDriver returns the placeholder dialect for a driver name.
func DialectForDriver(driver string) (sqldsl.Dialect, error) {
	switch driver {
	case DriverPostgres, DriverPgx:
		return sqldsl.Postgres, nil
	case DriverSQLite:
		return sqldsl.SQLite, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open opens a database with one of the registered drivers, verifies the
// connection, and returns it with the driver's dialect.
//
// SQLite connections are limited to one open connection so that in-memory
// databases are shared and writers never contend.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, sqldsl.Dialect, error) {
	dialect, err := DialectForDriver(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	return db, dialect, nil
}

// Connect opens a database and wraps it in a Runner configured for the
// driver.
func Connect(ctx context.Context, driver, dsn string, opts ...Option) (*Runner, *sql.DB, error) {
	db, dialect, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if driver == DriverPostgres {
		opts = append([]Option{WithPQArrays()}, opts...)
	}
	return New(db, dialect, opts...), db, nil
}
