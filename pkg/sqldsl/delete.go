package sqldsl

import "slices"

type deleteCore struct {
	table     FromItem
	only      bool
	using     []FromItem
	where     Predicate
	all       bool
	returning returning
}

// DeleteQuery is an immutable DELETE statement. Like UpdateQuery it renders
// WHERE true = false until a filter is added or All is called.
type DeleteQuery[S, R any, N Arity] struct {
	core deleteCore
}

// Delete starts DELETE FROM t.
func (t Table[S]) Delete() DeleteQuery[S, NoRows, NoRows] {
	return DeleteQuery[S, NoRows, NoRows]{core: deleteCore{table: t}}
}

func (DeleteQuery[S, R, N]) statement() {}

// Only adds ONLY.
func (q DeleteQuery[S, R, N]) Only() DeleteQuery[S, R, N] {
	q.core.only = true
	return q
}

// Using adds USING tables.
func (q DeleteQuery[S, R, N]) Using(items ...FromItem) DeleteQuery[S, R, N] {
	q.core.using = append(slices.Clip(q.core.using), items...)
	return q
}

// Where adds a filter, combined with AND.
func (q DeleteQuery[S, R, N]) Where(p Predicate) DeleteQuery[S, R, N] {
	q.core.where = And(q.core.where, p)
	return q
}

// And is Where.
func (q DeleteQuery[S, R, N]) And(p Predicate) DeleteQuery[S, R, N] {
	return q.Where(p)
}

// Exclude adds NOT p to the filter.
func (q DeleteQuery[S, R, N]) Exclude(p Predicate) DeleteQuery[S, R, N] {
	return q.Where(Not(p))
}

// All marks the delete as unconditional.
func (q DeleteQuery[S, R, N]) All() DeleteQuery[S, R, N] {
	q.core.all = true
	return q
}

// ReturningAll adds RETURNING *.
func (q DeleteQuery[S, R, N]) ReturningAll() DeleteQuery[S, S, Many] {
	q.core.returning = returning{set: true}
	return DeleteQuery[S, S, Many]{core: q.core}
}

// Returning adds RETURNING exprs.
func (q DeleteQuery[S, R, N]) Returning(exprs ...Expression) DeleteQuery[S, Record, Many] {
	q.core.returning = returning{set: true, proj: projection{items: exprs}}
	return DeleteQuery[S, Record, Many]{core: q.core}
}

// SQL renders the statement for the dialect.
func (q DeleteQuery[S, R, N]) SQL(d Dialect) (string, []any, error) {
	return build(d, q)
}

func (q DeleteQuery[S, R, N]) render(ctx *Context) string {
	c := q.core
	if c.table == nil {
		ctx.Fail(ErrNoTable)
		return ""
	}
	s := "DELETE FROM "
	if c.only {
		s += "ONLY "
	}
	s += c.table.renderFrom(ctx)
	if len(c.using) > 0 {
		s += " USING " + renderFromList(ctx, c.using)
	}
	s += guard(ctx, c.where, c.all)
	return s + c.returning.render(ctx)
}
