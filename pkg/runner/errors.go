package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors for driver failures. Driver errors are wrapped, so the
// original error stays reachable with errors.As.
var (
	// ErrUnsupportedDriver is returned by Open and DialectForDriver for
	// driver names this package does not register.
	ErrUnsupportedDriver = errors.New("runner: unsupported driver")

	// ErrUndefinedTable is returned when a statement references a missing table.
	ErrUndefinedTable = errors.New("runner: undefined table")

	// ErrUndefinedColumn is returned when a statement references a missing column.
	ErrUndefinedColumn = errors.New("runner: undefined column")

	// ErrUniqueViolation is returned when a write violates a unique constraint.
	ErrUniqueViolation = errors.New("runner: unique violation")

	// ErrSyntax is returned when the database rejects the statement text.
	ErrSyntax = errors.New("runner: syntax error")
)

// IsUndefinedTableErr returns true if err is or wraps ErrUndefinedTable.
func IsUndefinedTableErr(err error) bool {
	return errors.Is(err, ErrUndefinedTable)
}

// IsUniqueViolationErr returns true if err is or wraps ErrUniqueViolation.
func IsUniqueViolationErr(err error) bool {
	return errors.Is(err, ErrUniqueViolation)
}

// PostgreSQL SQLSTATE codes.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
	pgUniqueViolation = "23505"
	pgSyntaxError     = "42601"
)

// mapError classifies a driver error. Unknown errors are wrapped with the
// operation name only.
func mapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var kind error
	switch sqlState(err) {
	case pgUndefinedTable:
		kind = ErrUndefinedTable
	case pgUndefinedColumn:
		kind = ErrUndefinedColumn
	case pgUniqueViolation:
		kind = ErrUniqueViolation
	case pgSyntaxError:
		kind = ErrSyntax
	default:
		kind = sqliteKind(err)
	}

	if kind != nil {
		return fmt.Errorf("%s: %w: %w", operation, kind, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// sqlState extracts the SQLSTATE code from a PostgreSQL error.
// Works with both registered PostgreSQL drivers:
//   - pgx/pgconn: *pgconn.PgError
//   - lib/pq: *pq.Error
//
// Returns empty string if the error doesn't carry a SQLSTATE.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	// Other wrappers expose the code through a method.
	type sqlStateErr interface{ SQLState() string }
	var se sqlStateErr
	if errors.As(err, &se) {
		return se.SQLState()
	}

	// Fallback: "... (SQLSTATE 42P01)"
	errStr := err.Error()
	if idx := strings.Index(errStr, "SQLSTATE "); idx >= 0 {
		start := idx + len("SQLSTATE ")
		if start+5 <= len(errStr) {
			return errStr[start : start+5]
		}
	}
	return ""
}

// sqliteKind classifies go-sqlite3 errors, which carry result codes rather
// than SQLSTATE.
func sqliteKind(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return nil
	}
	if se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return ErrUniqueViolation
	}
	msg := se.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return ErrUndefinedTable
	case strings.Contains(msg, "no such column"):
		return ErrUndefinedColumn
	case strings.Contains(msg, "syntax error"):
		return ErrSyntax
	}
	return nil
}
