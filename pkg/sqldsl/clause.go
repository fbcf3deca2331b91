package sqldsl

import "strconv"

// JoinKind is the type of a JOIN clause.
type JoinKind int

// Join kinds. Inner, left, right and full joins (plain or OUTER) are
// conditioned and render an ON clause; the rest take no condition.
const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinLeftOuter
	JoinRight
	JoinRightOuter
	JoinFull
	JoinFullOuter
	JoinNatural
	JoinNaturalLeft
	JoinNaturalRight
	JoinNaturalFull
	JoinCross
)

var joinKeywords = [...]string{
	JoinInner:        "INNER JOIN",
	JoinLeft:         "LEFT JOIN",
	JoinLeftOuter:    "LEFT OUTER JOIN",
	JoinRight:        "RIGHT JOIN",
	JoinRightOuter:   "RIGHT OUTER JOIN",
	JoinFull:         "FULL JOIN",
	JoinFullOuter:    "FULL OUTER JOIN",
	JoinNatural:      "NATURAL JOIN",
	JoinNaturalLeft:  "NATURAL LEFT JOIN",
	JoinNaturalRight: "NATURAL RIGHT JOIN",
	JoinNaturalFull:  "NATURAL FULL JOIN",
	JoinCross:        "CROSS JOIN",
}

// Keyword returns the SQL keyword for the join kind.
func (k JoinKind) Keyword() string {
	if k < 0 || int(k) >= len(joinKeywords) {
		return ""
	}
	return joinKeywords[k]
}

// Conditioned reports whether the join kind requires an ON predicate.
func (k JoinKind) Conditioned() bool {
	return k >= JoinInner && k <= JoinFullOuter
}

func (k JoinKind) String() string { return k.Keyword() }

type join struct {
	kind JoinKind
	from FromItem
	on   Predicate
}

func (j join) render(ctx *Context) string {
	if j.from == nil {
		ctx.Fail(ErrNilNode)
		return ""
	}
	s := j.kind.Keyword() + " " + j.from.renderFrom(ctx)
	if j.kind.Conditioned() {
		s += " ON " + j.on.render(ctx)
	}
	return s
}

// distinct is the DISTINCT [ON (...)] modifier of a select list.
type distinct struct {
	enabled bool
	on      []Expression
}

func (d distinct) render(ctx *Context) string {
	if !d.enabled {
		return ""
	}
	// An empty ON list is plain DISTINCT.
	if len(d.on) == 0 {
		return "DISTINCT "
	}
	return "DISTINCT ON (" + joinNodes(ctx, d.on, ", ") + ") "
}

// OrderTerm is one ORDER BY entry.
type OrderTerm struct {
	expr Expression
	desc bool
}

// Asc orders by e ascending.
func Asc(e Expression) OrderTerm { return OrderTerm{expr: e} }

// Desc orders by e descending.
func Desc(e Expression) OrderTerm { return OrderTerm{expr: e, desc: true} }

func (o OrderTerm) render(ctx *Context) string {
	if o.desc {
		return renderNode(ctx, o.expr) + " DESC"
	}
	return renderNode(ctx, o.expr) + " ASC"
}

func renderGroupBy(ctx *Context, exprs []Expression) string {
	if len(exprs) == 0 {
		return ""
	}
	return " GROUP BY " + joinNodes(ctx, exprs, ", ")
}

func renderOrderBy(ctx *Context, terms []OrderTerm) string {
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + joinNodes(ctx, terms, ", ")
}

// projection is a select list or RETURNING list: * when items is empty.
type projection struct {
	items []Expression
}

func (p projection) render(ctx *Context) string {
	if len(p.items) == 0 {
		return "*"
	}
	return joinNodes(ctx, p.items, ", ")
}

type returning struct {
	set  bool
	proj projection
}

func (r returning) render(ctx *Context) string {
	if !r.set {
		return ""
	}
	return " RETURNING " + r.proj.render(ctx)
}

type lockMode int

const (
	lockNone lockMode = iota
	lockUpdate
	lockShare
)

type lock struct {
	mode   lockMode
	nowait bool
}

func (l lock) render() string {
	var s string
	switch l.mode {
	case lockUpdate:
		s = " FOR UPDATE"
	case lockShare:
		s = " FOR SHARE"
	default:
		return ""
	}
	if l.nowait {
		s += " NOWAIT"
	}
	return s
}

// limitClause renders an inline non-negative integer clause (LIMIT or OFFSET).
func limitClause(ctx *Context, keyword string, n *int) string {
	if n == nil {
		return ""
	}
	if *n < 0 {
		ctx.Fail(ErrNegativeLimit)
		return ""
	}
	return " " + keyword + " " + strconv.Itoa(*n)
}

// guard renders the WHERE clause of UPDATE and DELETE. ALL suppresses WHERE
// entirely; a missing predicate without ALL renders an always-false filter.
func guard(ctx *Context, where Predicate, all bool) string {
	if all {
		return ""
	}
	if where.IsZero() {
		return " WHERE true = false"
	}
	return " WHERE " + where.render(ctx)
}

func optionalWhere(ctx *Context, keyword string, p Predicate) string {
	if p.IsZero() {
		return ""
	}
	return " " + keyword + " " + p.render(ctx)
}
