package sqldsl

import "slices"

type selectCore struct {
	distinct distinct
	proj     projection
	from     []FromItem
	joins    []join
	where    Predicate
	groupBy  []Expression
	having   Predicate
	orderBy  []OrderTerm
	limit    *int
	offset   *int
	lock     lock
}

// SelectQuery is an immutable SELECT statement. S is the schema marker of
// the table it was built from, R the row shape and N the arity. Every method
// returns a new query; the receiver is never modified, so a base query can be
// refined in several directions.
type SelectQuery[S, R any, N Arity] struct {
	core selectCore
}

// SelectAll starts SELECT * FROM t.
func (t Table[S]) SelectAll() SelectQuery[S, S, Many] {
	return SelectQuery[S, S, Many]{core: selectCore{from: []FromItem{t}}}
}

// Select starts a single-column select. Only single-column selects restricted
// to one row with First can be used as scalar sub-selects.
func Select[T, S any](t Table[S], col Operand[T]) SelectQuery[S, Single[T], Many] {
	return SelectQuery[S, Single[T], Many]{core: selectCore{
		from: []FromItem{t},
		proj: projection{items: []Expression{col}},
	}}
}

// SelectCols starts a select with an explicit, untyped projection list.
func SelectCols[S any](t Table[S], exprs ...Expression) SelectQuery[S, Record, Many] {
	return SelectQuery[S, Record, Many]{core: selectCore{
		from: []FromItem{t},
		proj: projection{items: exprs},
	}}
}

// SelectInto starts a select whose rows the caller decodes into R.
func SelectInto[R, S any](t Table[S], exprs ...Expression) SelectQuery[S, R, Many] {
	return SelectQuery[S, R, Many]{core: selectCore{
		from: []FromItem{t},
		proj: projection{items: exprs},
	}}
}

func (SelectQuery[S, R, N]) statement()       {}
func (SelectQuery[S, R, N]) selectStatement() {}

// Distinct adds DISTINCT.
func (q SelectQuery[S, R, N]) Distinct() SelectQuery[S, R, N] {
	q.core.distinct = distinct{enabled: true}
	return q
}

// DistinctOn adds DISTINCT ON (exprs). With no expressions it is plain DISTINCT.
func (q SelectQuery[S, R, N]) DistinctOn(exprs ...Expression) SelectQuery[S, R, N] {
	q.core.distinct = distinct{enabled: true, on: exprs}
	return q
}

// From adds more FROM items after the table the query was started from.
func (q SelectQuery[S, R, N]) From(items ...FromItem) SelectQuery[S, R, N] {
	q.core.from = append(slices.Clip(q.core.from), items...)
	return q
}

func (q SelectQuery[S, R, N]) addJoin(kind JoinKind, f FromItem, on Predicate) SelectQuery[S, R, N] {
	q.core.joins = append(slices.Clip(q.core.joins), join{kind: kind, from: f, on: on})
	return q
}

// InnerJoin adds INNER JOIN f ON on.
func (q SelectQuery[S, R, N]) InnerJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinInner, f, on)
}

// LeftJoin adds LEFT JOIN f ON on.
func (q SelectQuery[S, R, N]) LeftJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinLeft, f, on)
}

// RightJoin adds RIGHT JOIN f ON on.
func (q SelectQuery[S, R, N]) RightJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinRight, f, on)
}

// FullJoin adds FULL JOIN f ON on.
func (q SelectQuery[S, R, N]) FullJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinFull, f, on)
}

// LeftOuterJoin adds LEFT OUTER JOIN f ON on.
func (q SelectQuery[S, R, N]) LeftOuterJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinLeftOuter, f, on)
}

// RightOuterJoin adds RIGHT OUTER JOIN f ON on.
func (q SelectQuery[S, R, N]) RightOuterJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinRightOuter, f, on)
}

// FullOuterJoin adds FULL OUTER JOIN f ON on.
func (q SelectQuery[S, R, N]) FullOuterJoin(f FromItem, on Predicate) SelectQuery[S, R, N] {
	return q.addJoin(JoinFullOuter, f, on)
}

// NaturalJoin adds NATURAL JOIN f.
func (q SelectQuery[S, R, N]) NaturalJoin(f FromItem) SelectQuery[S, R, N] {
	return q.addJoin(JoinNatural, f, Predicate{})
}

// NaturalLeftJoin adds NATURAL LEFT JOIN f.
func (q SelectQuery[S, R, N]) NaturalLeftJoin(f FromItem) SelectQuery[S, R, N] {
	return q.addJoin(JoinNaturalLeft, f, Predicate{})
}

// NaturalRightJoin adds NATURAL RIGHT JOIN f.
func (q SelectQuery[S, R, N]) NaturalRightJoin(f FromItem) SelectQuery[S, R, N] {
	return q.addJoin(JoinNaturalRight, f, Predicate{})
}

// NaturalFullJoin adds NATURAL FULL JOIN f.
func (q SelectQuery[S, R, N]) NaturalFullJoin(f FromItem) SelectQuery[S, R, N] {
	return q.addJoin(JoinNaturalFull, f, Predicate{})
}

// CrossJoin adds CROSS JOIN f.
func (q SelectQuery[S, R, N]) CrossJoin(f FromItem) SelectQuery[S, R, N] {
	return q.addJoin(JoinCross, f, Predicate{})
}

// Where adds a filter. An existing filter is combined with AND.
func (q SelectQuery[S, R, N]) Where(p Predicate) SelectQuery[S, R, N] {
	q.core.where = And(q.core.where, p)
	return q
}

// And is Where.
func (q SelectQuery[S, R, N]) And(p Predicate) SelectQuery[S, R, N] {
	return q.Where(p)
}

// Exclude adds NOT p to the filter, with the negation pushed into p.
func (q SelectQuery[S, R, N]) Exclude(p Predicate) SelectQuery[S, R, N] {
	return q.Where(Not(p))
}

// GroupBy appends GROUP BY expressions.
func (q SelectQuery[S, R, N]) GroupBy(exprs ...Expression) SelectQuery[S, R, N] {
	q.core.groupBy = append(slices.Clip(q.core.groupBy), exprs...)
	return q
}

// Having adds a HAVING filter, combined with AND like Where.
func (q SelectQuery[S, R, N]) Having(p Predicate) SelectQuery[S, R, N] {
	q.core.having = And(q.core.having, p)
	return q
}

// ExcludeHaving adds NOT p to the HAVING filter.
func (q SelectQuery[S, R, N]) ExcludeHaving(p Predicate) SelectQuery[S, R, N] {
	return q.Having(Not(p))
}

// OrderBy appends ORDER BY terms.
func (q SelectQuery[S, R, N]) OrderBy(terms ...OrderTerm) SelectQuery[S, R, N] {
	q.core.orderBy = append(slices.Clip(q.core.orderBy), terms...)
	return q
}

// Offset sets OFFSET n.
func (q SelectQuery[S, R, N]) Offset(n int) SelectQuery[S, R, N] {
	q.core.offset = &n
	return q
}

// Limit sets LIMIT n. The result may hold many rows.
func (q SelectQuery[S, R, N]) Limit(n int) SelectQuery[S, R, Many] {
	q.core.limit = &n
	return SelectQuery[S, R, Many]{core: q.core}
}

// First sets LIMIT 1 and marks the query as yielding at most one row.
func (q SelectQuery[S, R, N]) First() SelectQuery[S, R, One] {
	n := 1
	q.core.limit = &n
	return SelectQuery[S, R, One]{core: q.core}
}

// ForUpdate adds FOR UPDATE.
func (q SelectQuery[S, R, N]) ForUpdate() SelectQuery[S, R, N] {
	q.core.lock.mode = lockUpdate
	return q
}

// ForShare adds FOR SHARE.
func (q SelectQuery[S, R, N]) ForShare() SelectQuery[S, R, N] {
	q.core.lock.mode = lockShare
	return q
}

// NoWait adds NOWAIT to the locking clause. Without ForUpdate or ForShare it
// has no effect.
func (q SelectQuery[S, R, N]) NoWait() SelectQuery[S, R, N] {
	q.core.lock.nowait = true
	return q
}

// SQL renders the query for the dialect.
func (q SelectQuery[S, R, N]) SQL(d Dialect) (string, []any, error) {
	return build(d, q)
}

func (q SelectQuery[S, R, N]) render(ctx *Context) string {
	c := q.core
	s := "SELECT " + c.distinct.render(ctx) + c.proj.render(ctx)
	if len(c.from) > 0 {
		s += " FROM " + renderFromList(ctx, c.from)
	}
	for _, j := range c.joins {
		s += " " + j.render(ctx)
	}
	s += optionalWhere(ctx, "WHERE", c.where)
	s += renderGroupBy(ctx, c.groupBy)
	s += optionalWhere(ctx, "HAVING", c.having)
	s += renderOrderBy(ctx, c.orderBy)
	s += limitClause(ctx, "LIMIT", c.limit)
	s += limitClause(ctx, "OFFSET", c.offset)
	return s + c.lock.render()
}

// SubSelect is a parenthesized single-column, single-row select used as a
// scalar operand or as the list of IN.
type SubSelect[T any] struct {
	typed[T]
	listOf[T]
	query Node
}

// Subselect turns a one-column select restricted with First into an operand.
// Selects that may return many rows or project several columns do not
// type-check here.
func Subselect[S, T any](q SelectQuery[S, Single[T], One]) SubSelect[T] {
	return SubSelect[T]{query: q}
}

func (s SubSelect[T]) render(ctx *Context) string {
	return "(" + renderNode(ctx, s.query) + ")"
}

func (s SubSelect[T]) listLen() int { return 1 }

func (s SubSelect[T]) renderList(ctx *Context) string {
	return renderNode(ctx, s.query)
}
