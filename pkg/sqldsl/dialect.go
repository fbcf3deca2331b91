package sqldsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect adapts rendered SQL to a target database. Only placeholder syntax
// differs between dialects; everything else is rendered identically.
type Dialect interface {
	// Name returns the canonical dialect name (e.g. "postgres").
	Name() string
	// Placeholder returns the bind marker for the 1-based parameter index.
	Placeholder(index int) string
}

type postgresDialect struct{}

func (postgresDialect) Name() string                 { return "postgres" }
func (postgresDialect) Placeholder(index int) string { return "$" + strconv.Itoa(index) }

type mysqlDialect struct{}

func (mysqlDialect) Name() string           { return "mysql" }
func (mysqlDialect) Placeholder(int) string { return "?" }

type sqliteDialect struct{}

func (sqliteDialect) Name() string                 { return "sqlite" }
func (sqliteDialect) Placeholder(index int) string { return "?" + strconv.Itoa(index) }

// Built-in dialects.
var (
	// Postgres renders numbered placeholders: $1, $2, ...
	Postgres Dialect = postgresDialect{}
	// MySQL renders positional placeholders and ignores the index: ?, ?, ...
	MySQL Dialect = mysqlDialect{}
	// SQLite renders numbered positional placeholders: ?1, ?2, ...
	SQLite Dialect = sqliteDialect{}
)

// DialectByName resolves a dialect from its name or a common driver alias.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}
