package sqldsl

import (
	"slices"
	"strings"
)

type updateCore struct {
	table     FromItem
	only      bool
	set       []Field
	from      []FromItem
	where     Predicate
	all       bool
	returning returning
}

// UpdateQuery is an immutable UPDATE statement.
//
// Without a filter the statement renders WHERE true = false so that a
// forgotten Where never updates every row; call All to update the whole
// table. All wins over any filter.
type UpdateQuery[S, R any, N Arity] struct {
	core updateCore
}

// Update starts UPDATE t SET fields.
func (t Table[S]) Update(fields ...Field) UpdateQuery[S, NoRows, NoRows] {
	return UpdateQuery[S, NoRows, NoRows]{core: updateCore{table: t, set: fields}}
}

func (UpdateQuery[S, R, N]) statement() {}

// Set appends assignments.
func (q UpdateQuery[S, R, N]) Set(fields ...Field) UpdateQuery[S, R, N] {
	q.core.set = append(slices.Clip(q.core.set), fields...)
	return q
}

// Only adds ONLY, excluding inheriting tables.
func (q UpdateQuery[S, R, N]) Only() UpdateQuery[S, R, N] {
	q.core.only = true
	return q
}

// From adds tables for a correlated update.
func (q UpdateQuery[S, R, N]) From(items ...FromItem) UpdateQuery[S, R, N] {
	q.core.from = append(slices.Clip(q.core.from), items...)
	return q
}

// Where adds a filter, combined with AND.
func (q UpdateQuery[S, R, N]) Where(p Predicate) UpdateQuery[S, R, N] {
	q.core.where = And(q.core.where, p)
	return q
}

// And is Where.
func (q UpdateQuery[S, R, N]) And(p Predicate) UpdateQuery[S, R, N] {
	return q.Where(p)
}

// Exclude adds NOT p to the filter.
func (q UpdateQuery[S, R, N]) Exclude(p Predicate) UpdateQuery[S, R, N] {
	return q.Where(Not(p))
}

// All marks the update as unconditional; WHERE is never rendered.
func (q UpdateQuery[S, R, N]) All() UpdateQuery[S, R, N] {
	q.core.all = true
	return q
}

// ReturningAll adds RETURNING *.
func (q UpdateQuery[S, R, N]) ReturningAll() UpdateQuery[S, S, Many] {
	q.core.returning = returning{set: true}
	return UpdateQuery[S, S, Many]{core: q.core}
}

// Returning adds RETURNING exprs.
func (q UpdateQuery[S, R, N]) Returning(exprs ...Expression) UpdateQuery[S, Record, Many] {
	q.core.returning = returning{set: true, proj: projection{items: exprs}}
	return UpdateQuery[S, Record, Many]{core: q.core}
}

// SQL renders the statement for the dialect.
func (q UpdateQuery[S, R, N]) SQL(d Dialect) (string, []any, error) {
	return build(d, q)
}

func (q UpdateQuery[S, R, N]) render(ctx *Context) string {
	c := q.core
	if c.table == nil {
		ctx.Fail(ErrNoTable)
		return ""
	}
	if len(c.set) == 0 {
		ctx.Fail(ErrNoAssignments)
		return ""
	}
	s := "UPDATE "
	if c.only {
		s += "ONLY "
	}
	s += c.table.renderFrom(ctx)

	assigns := make([]string, len(c.set))
	for i, f := range c.set {
		assigns[i] = f.renderAssign(ctx)
	}
	s += " SET " + strings.Join(assigns, ", ")

	if len(c.from) > 0 {
		s += " FROM " + renderFromList(ctx, c.from)
	}
	s += guard(ctx, c.where, c.all)
	return s + c.returning.render(ctx)
}
