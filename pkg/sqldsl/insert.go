package sqldsl

import (
	"fmt"
	"slices"
	"strings"
)

type insertSource int

const (
	sourceNone insertSource = iota
	sourceDefault
	sourceRows
	sourceRaw
	sourceSelect
)

// InsertRow is one typed VALUES row.
type InsertRow []Field

// Row builds a typed insert row from column assignments.
func Row(fields ...Field) InsertRow {
	return InsertRow(fields)
}

type insertCore struct {
	table     FromItem
	columns   []string
	source    insertSource
	rows      []InsertRow
	raw       [][]any
	query     SelectStatement
	returning returning
}

// InsertQuery is an immutable INSERT statement. Without RETURNING it yields
// no rows; ReturningAll and Returning retag it.
type InsertQuery[S, R any, N Arity] struct {
	core insertCore
}

// Insert starts INSERT INTO t.
func (t Table[S]) Insert() InsertQuery[S, NoRows, NoRows] {
	return InsertQuery[S, NoRows, NoRows]{core: insertCore{table: t}}
}

func (InsertQuery[S, R, N]) statement() {}

// Columns sets an explicit column list. Raw rows are checked against it.
func (q InsertQuery[S, R, N]) Columns(cols ...ColumnRef) InsertQuery[S, R, N] {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.ColumnName()
	}
	q.core.columns = names
	return q
}

// DefaultValues inserts a single row of column defaults.
func (q InsertQuery[S, R, N]) DefaultValues() InsertQuery[S, R, N] {
	q.core.source = sourceDefault
	return q
}

// Values appends typed rows. Every row must assign the same columns in the
// same order; the column list is taken from the first row unless Columns
// was called.
func (q InsertQuery[S, R, N]) Values(rows ...InsertRow) InsertQuery[S, R, N] {
	if q.core.source != sourceRows {
		q.core.rows = nil
	}
	q.core.source = sourceRows
	q.core.rows = append(slices.Clip(q.core.rows), rows...)
	return q
}

// ValuesRaw appends untyped rows. Elements that are expressions are rendered;
// anything else is bound as a value.
func (q InsertQuery[S, R, N]) ValuesRaw(rows ...[]any) InsertQuery[S, R, N] {
	if q.core.source != sourceRaw {
		q.core.raw = nil
	}
	q.core.source = sourceRaw
	q.core.raw = append(slices.Clip(q.core.raw), rows...)
	return q
}

// FromSelect inserts the rows produced by sel.
func (q InsertQuery[S, R, N]) FromSelect(sel SelectStatement) InsertQuery[S, R, N] {
	q.core.source = sourceSelect
	q.core.query = sel
	return q
}

// ReturningAll adds RETURNING *.
func (q InsertQuery[S, R, N]) ReturningAll() InsertQuery[S, S, Many] {
	q.core.returning = returning{set: true}
	return InsertQuery[S, S, Many]{core: q.core}
}

// Returning adds RETURNING exprs.
func (q InsertQuery[S, R, N]) Returning(exprs ...Expression) InsertQuery[S, Record, Many] {
	q.core.returning = returning{set: true, proj: projection{items: exprs}}
	return InsertQuery[S, Record, Many]{core: q.core}
}

// SQL renders the statement for the dialect.
func (q InsertQuery[S, R, N]) SQL(d Dialect) (string, []any, error) {
	return build(d, q)
}

func (q InsertQuery[S, R, N]) render(ctx *Context) string {
	c := q.core
	if c.table == nil {
		ctx.Fail(ErrNoTable)
		return ""
	}
	s := "INSERT INTO " + c.table.renderFrom(ctx)

	switch c.source {
	case sourceDefault:
		s += " DEFAULT VALUES"
	case sourceRows:
		s += renderTypedRows(ctx, c.columns, c.rows)
	case sourceRaw:
		s += renderRawRows(ctx, c.columns, c.raw)
	case sourceSelect:
		s += columnList(c.columns) + " " + renderNode(ctx, c.query)
	default:
		ctx.Fail(ErrNoValues)
		return ""
	}
	return s + c.returning.render(ctx)
}

func columnList(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	return " (" + strings.Join(cols, ", ") + ")"
}

func renderTypedRows(ctx *Context, cols []string, rows []InsertRow) string {
	if len(rows) == 0 {
		ctx.Fail(ErrNoValues)
		return ""
	}
	if len(cols) == 0 {
		for _, f := range rows[0] {
			cols = append(cols, f.name)
		}
	}
	tuples := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			ctx.Fail(fmt.Errorf("%w: row %d assigns %d columns, want %d", ErrRowShape, i, len(row), len(cols)))
			return ""
		}
		vals := make([]string, len(row))
		for j, f := range row {
			if f.name != cols[j] {
				ctx.Fail(fmt.Errorf("%w: row %d column %d is %q, want %q", ErrRowShape, i, j, f.name, cols[j]))
				return ""
			}
			vals[j] = f.renderValue(ctx)
		}
		tuples[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	return columnList(cols) + " VALUES " + strings.Join(tuples, ", ")
}

func renderRawRows(ctx *Context, cols []string, rows [][]any) string {
	if len(rows) == 0 {
		ctx.Fail(ErrNoValues)
		return ""
	}
	width := len(cols)
	if width == 0 {
		width = len(rows[0])
	}
	tuples := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != width || width == 0 {
			ctx.Fail(fmt.Errorf("%w: row %d has %d values, want %d", ErrRowWidth, i, len(row), width))
			return ""
		}
		vals := make([]string, len(row))
		for j, v := range row {
			if e, ok := v.(Expression); ok {
				vals[j] = renderNode(ctx, e)
				continue
			}
			vals[j] = ctx.Bind(v)
		}
		tuples[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	return columnList(cols) + " VALUES " + strings.Join(tuples, ", ")
}
