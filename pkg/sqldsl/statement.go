package sqldsl

// Statement is a complete renderable SQL statement.
type Statement interface {
	Node
	statement()
}

// SelectStatement is a SELECT of any shape, accepted by EXISTS, INSERT ...
// SELECT and derived tables.
type SelectStatement interface {
	Statement
	selectStatement()
}

// Arity markers: how many rows a statement yields.
type (
	// NoRows marks statements that return nothing (no RETURNING).
	NoRows struct{}
	// One marks statements that yield at most one row.
	One struct{}
	// Many marks statements that yield any number of rows.
	Many struct{}
)

// Arity is the set of arity markers.
type Arity interface {
	NoRows | One | Many
}

// Single is the row shape of a statement projecting one column of type T.
type Single[T any] struct{}

// Record is the row shape of a statement projecting an untyped list.
type Record []any

// build renders a statement and splits the result for the SQL methods.
func build(d Dialect, n Node) (string, []any, error) {
	q, err := Render(d, n)
	if err != nil {
		return "", nil, err
	}
	return q.SQL, q.Args, nil
}
