package sqldsl

import "errors"

// Sentinel errors returned by Render when a statement reaches the renderer in a
// shape the type system could not rule out. Rendering is all-or-nothing: when
// any of these is returned no SQL is produced.
var (
	// ErrNoDialect is returned when Render is called without a dialect.
	ErrNoDialect = errors.New("sqldsl: no dialect")

	// ErrUnknownDialect is returned by DialectByName for unrecognized names.
	ErrUnknownDialect = errors.New("sqldsl: unknown dialect")

	// ErrNilNode is returned when a nil expression, list or statement is
	// reached during rendering.
	ErrNilNode = errors.New("sqldsl: nil node")

	// ErrEmptyPredicate is returned when a zero Predicate is rendered on its own.
	ErrEmptyPredicate = errors.New("sqldsl: empty predicate")

	// ErrNoTable is returned for statements built from a zero Table value.
	ErrNoTable = errors.New("sqldsl: statement has no table")

	// ErrNoAssignments is returned for an UPDATE without SET fields.
	ErrNoAssignments = errors.New("sqldsl: update has no assignments")

	// ErrNoValues is returned for an INSERT without a value source.
	ErrNoValues = errors.New("sqldsl: insert has no values")

	// ErrRowWidth is returned when a raw insert row does not match the column list.
	ErrRowWidth = errors.New("sqldsl: insert row width mismatch")

	// ErrRowShape is returned when typed insert rows assign different columns.
	ErrRowShape = errors.New("sqldsl: insert rows assign different columns")

	// ErrNegativeLimit is returned for a negative LIMIT or OFFSET.
	ErrNegativeLimit = errors.New("sqldsl: negative limit or offset")

	// ErrPlaceholderIndex is returned for explicit placeholders below 1.
	ErrPlaceholderIndex = errors.New("sqldsl: placeholder index must be positive")
)

// IsNoTableErr returns true if err is or wraps ErrNoTable.
func IsNoTableErr(err error) bool {
	return errors.Is(err, ErrNoTable)
}

// IsRowWidthErr returns true if err is or wraps ErrRowWidth or ErrRowShape.
func IsRowWidthErr(err error) bool {
	return errors.Is(err, ErrRowWidth) || errors.Is(err, ErrRowShape)
}

// IsUnknownDialectErr returns true if err is or wraps ErrUnknownDialect.
func IsUnknownDialectErr(err error) bool {
	return errors.Is(err, ErrUnknownDialect)
}
