package schema

import "errors"

// Sentinel errors for schema and query documents.
var (
	// ErrUnknownTable is returned when a query names a table the catalog
	// does not declare.
	ErrUnknownTable = errors.New("schema: unknown table")

	// ErrUnknownColumn is returned when a query names an undeclared column.
	ErrUnknownColumn = errors.New("schema: unknown column")

	// ErrUnknownType is returned for column types outside the supported set.
	ErrUnknownType = errors.New("schema: unknown column type")

	// ErrTypeMismatch is returned when a literal cannot be converted to the
	// column's type. It is the dynamic counterpart of a compile error in
	// typed code.
	ErrTypeMismatch = errors.New("schema: type mismatch")

	// ErrInvalidQuery is returned for structurally invalid query documents.
	ErrInvalidQuery = errors.New("schema: invalid query")

	// ErrDuplicate is returned for repeated table or column names.
	ErrDuplicate = errors.New("schema: duplicate name")
)

// IsTypeMismatchErr returns true if err is or wraps ErrTypeMismatch.
func IsTypeMismatchErr(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsUnknownTableErr returns true if err is or wraps ErrUnknownTable.
func IsUnknownTableErr(err error) bool {
	return errors.Is(err, ErrUnknownTable)
}

// IsUnknownColumnErr returns true if err is or wraps ErrUnknownColumn.
func IsUnknownColumnErr(err error) bool {
	return errors.Is(err, ErrUnknownColumn)
}
