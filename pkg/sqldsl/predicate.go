package sqldsl

// Predicate is a boolean-valued tree. Predicates are immutable and freely
// shared between statements; the zero Predicate means "no condition".
//
// Negation is never stored on a node. It is a parameter of the render call,
// so the same subtree can be rendered affirmatively in one place and negated
// in another. Nodes with a known negated form render it directly (= becomes
// !=, IN becomes NOT IN, AND becomes OR over negated children); raw
// predicates fall back to NOT (...).
type Predicate struct {
	node condition
}

type condition interface {
	renderCond(ctx *Context, negated bool) string
}

// IsZero reports whether p holds no condition.
func (p Predicate) IsZero() bool {
	return p.node == nil
}

// And combines p and o with AND.
func (p Predicate) And(o Predicate) Predicate {
	return And(p, o)
}

// Or combines p and o with OR.
func (p Predicate) Or(o Predicate) Predicate {
	return Or(p, o)
}

// Not returns the negation of p.
func (p Predicate) Not() Predicate {
	return Not(p)
}

func (p Predicate) render(ctx *Context) string {
	return p.renderWith(ctx, false)
}

func (p Predicate) renderWith(ctx *Context, negated bool) string {
	if p.node == nil {
		ctx.Fail(ErrEmptyPredicate)
		return ""
	}
	return p.node.renderCond(ctx, negated)
}

// =============================================================================
// Connectives
// =============================================================================

type junctionOp int

const (
	opAnd junctionOp = iota
	opOr
)

func (op junctionOp) keyword(negated bool) string {
	if (op == opAnd) != negated {
		return " AND "
	}
	return " OR "
}

type junction struct {
	op          junctionOp
	left, right condition
}

func (j junction) renderCond(ctx *Context, negated bool) string {
	return "(" + j.left.renderCond(ctx, negated) + ")" + j.op.keyword(negated) +
		"(" + j.right.renderCond(ctx, negated) + ")"
}

func fold(op junctionOp, ps []Predicate) Predicate {
	var acc condition
	for _, p := range ps {
		if p.node == nil {
			continue
		}
		if acc == nil {
			acc = p.node
			continue
		}
		acc = junction{op: op, left: acc, right: p.node}
	}
	return Predicate{node: acc}
}

// And combines predicates left to right with AND. Zero predicates are skipped.
func And(ps ...Predicate) Predicate {
	return fold(opAnd, ps)
}

// Or combines predicates left to right with OR. Zero predicates are skipped.
func Or(ps ...Predicate) Predicate {
	return fold(opOr, ps)
}

type notCond struct {
	inner condition
}

func (n notCond) renderCond(ctx *Context, negated bool) string {
	return n.inner.renderCond(ctx, !negated)
}

// Not negates p. The negation is pushed down to the leaves at render time.
func Not(p Predicate) Predicate {
	if p.node == nil {
		return p
	}
	return Predicate{node: notCond{inner: p.node}}
}

type rawCond struct {
	sql string
}

func (r rawCond) renderCond(_ *Context, negated bool) string {
	if negated {
		return "NOT (" + r.sql + ")"
	}
	return r.sql
}

// RawPredicate is an unchecked predicate rendered verbatim. Negating it wraps
// the text in NOT (...); double negation cancels only because the render flag
// flips twice, not because the text is understood.
func RawPredicate(sql string) Predicate {
	return Predicate{node: rawCond{sql: sql}}
}

// =============================================================================
// Comparisons
// =============================================================================

type compareOp int

const (
	cmpEq compareOp = iota
	cmpNe
	cmpLt
	cmpLe
	cmpGt
	cmpGe
)

var compareSymbols = [...]string{
	cmpEq: "=",
	cmpNe: "!=",
	cmpLt: "<",
	cmpLe: "<=",
	cmpGt: ">",
	cmpGe: ">=",
}

var compareComplements = [...]compareOp{
	cmpEq: cmpNe,
	cmpNe: cmpEq,
	cmpLt: cmpGe,
	cmpGe: cmpLt,
	cmpLe: cmpGt,
	cmpGt: cmpLe,
}

type compareCond struct {
	op          compareOp
	left, right Expression
}

func (c compareCond) renderCond(ctx *Context, negated bool) string {
	op := c.op
	if negated {
		op = compareComplements[op]
	}
	return renderNode(ctx, c.left) + " " + compareSymbols[op] + " " + renderNode(ctx, c.right)
}

func compare(op compareOp, l, r Expression) Predicate {
	return Predicate{node: compareCond{op: op, left: l, right: r}}
}

// Eq renders l = r.
func Eq[T any](l, r Operand[T]) Predicate { return compare(cmpEq, l, r) }

// Ne renders l != r.
func Ne[T any](l, r Operand[T]) Predicate { return compare(cmpNe, l, r) }

// Lt renders l < r.
func Lt[T any](l, r Operand[T]) Predicate { return compare(cmpLt, l, r) }

// Le renders l <= r.
func Le[T any](l, r Operand[T]) Predicate { return compare(cmpLe, l, r) }

// Gt renders l > r.
func Gt[T any](l, r Operand[T]) Predicate { return compare(cmpGt, l, r) }

// Ge renders l >= r.
func Ge[T any](l, r Operand[T]) Predicate { return compare(cmpGe, l, r) }

// =============================================================================
// NULL checks, LIKE, IN
// =============================================================================

type nullCond struct {
	expr   Expression
	isNull bool
}

func (n nullCond) renderCond(ctx *Context, negated bool) string {
	if n.isNull != negated {
		return renderNode(ctx, n.expr) + " IS NULL"
	}
	return renderNode(ctx, n.expr) + " IS NOT NULL"
}

// IsNull renders e IS NULL.
func IsNull[T any](e Operand[T]) Predicate {
	return Predicate{node: nullCond{expr: e, isNull: true}}
}

// IsNotNull renders e IS NOT NULL.
func IsNotNull[T any](e Operand[T]) Predicate {
	return Predicate{node: nullCond{expr: e, isNull: false}}
}

type likeCond struct {
	expr    Expression
	pattern string
	ilike   bool
}

func (l likeCond) renderCond(ctx *Context, negated bool) string {
	kw := " LIKE "
	if l.ilike {
		kw = " ILIKE "
	}
	if negated {
		kw = " NOT" + kw
	}
	lhs := renderNode(ctx, l.expr)
	return lhs + kw + ctx.Bind(l.pattern)
}

// Like renders e LIKE pattern. The pattern is bound as a value.
func Like[T Text](e Operand[T], pattern string) Predicate {
	return Predicate{node: likeCond{expr: e, pattern: pattern}}
}

// ILike renders e ILIKE pattern (case-insensitive, PostgreSQL).
func ILike[T Text](e Operand[T], pattern string) Predicate {
	return Predicate{node: likeCond{expr: e, pattern: pattern, ilike: true}}
}

type listNode interface {
	renderList(ctx *Context) string
	listLen() int
}

type inCond struct {
	expr Expression
	list listNode
}

func (in inCond) renderCond(ctx *Context, negated bool) string {
	if in.list == nil {
		ctx.Fail(ErrNilNode)
		return ""
	}
	// An empty list matches nothing; x IN () is not valid SQL.
	if in.list.listLen() == 0 {
		if negated {
			return "true"
		}
		return "false"
	}
	kw := " IN ("
	if negated {
		kw = " NOT IN ("
	}
	lhs := renderNode(ctx, in.expr)
	return lhs + kw + in.list.renderList(ctx) + ")"
}

// In renders e IN (list).
func In[T any](e Operand[T], list List[T]) Predicate {
	return Predicate{node: inCond{expr: e, list: list}}
}

// NotIn renders e NOT IN (list).
func NotIn[T any](e Operand[T], list List[T]) Predicate {
	return Not(In(e, list))
}

// =============================================================================
// Ranges
// =============================================================================

// Bounds selects which ends of a range are inclusive.
type Bounds int

const (
	// IncludeBoth is lo <= e <= hi.
	IncludeBoth Bounds = iota
	// IncludeLeft is lo <= e < hi.
	IncludeLeft
	// IncludeRight is lo < e <= hi.
	IncludeRight
	// ExcludeBoth is lo < e < hi.
	ExcludeBoth
)

func (b Bounds) ops() (lower, upper compareOp) {
	switch b {
	case IncludeLeft:
		return cmpGe, cmpLt
	case IncludeRight:
		return cmpGt, cmpLe
	case ExcludeBoth:
		return cmpGt, cmpLt
	default:
		return cmpGe, cmpLe
	}
}

type rangeCond struct {
	expr   Expression
	lo, hi Expression
	bounds Bounds
}

// renderCond renders the range as a conjunction of two comparisons; negated,
// De Morgan turns it into a disjunction of the complements.
func (r rangeCond) renderCond(ctx *Context, negated bool) string {
	lower, upper := r.bounds.ops()
	return junction{
		op:    opAnd,
		left:  compareCond{op: lower, left: r.expr, right: r.lo},
		right: compareCond{op: upper, left: r.expr, right: r.hi},
	}.renderCond(ctx, negated)
}

// InRange renders a two-sided range check on e.
func InRange[T any](e Operand[T], lo, hi Operand[T], b Bounds) Predicate {
	return Predicate{node: rangeCond{expr: e, lo: lo, hi: hi, bounds: b}}
}

// Between is InRange with both bounds inclusive.
func Between[T any](e Operand[T], lo, hi Operand[T]) Predicate {
	return InRange(e, lo, hi, IncludeBoth)
}

// =============================================================================
// EXISTS
// =============================================================================

type existsCond struct {
	query Node
}

func (e existsCond) renderCond(ctx *Context, negated bool) string {
	kw := "EXISTS ("
	if negated {
		kw = "NOT EXISTS ("
	}
	return kw + renderNode(ctx, e.query) + ")"
}

// Exists renders EXISTS (query).
func Exists(q SelectStatement) Predicate {
	return Predicate{node: existsCond{query: q}}
}

// NotExists renders NOT EXISTS (query).
func NotExists(q SelectStatement) Predicate {
	return Not(Exists(q))
}
