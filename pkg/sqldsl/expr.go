package sqldsl

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// Expression is any node that can appear where a value is expected.
type Expression interface {
	Node
	exprNode()
}

// Operand is an expression whose value type is T. Operators accept operands of
// matching T only, so comparing a string column to an integer does not compile.
type Operand[T any] interface {
	Expression
	valueType() T
}

// List is a list-valued expression of element type T, used by IN.
type List[T any] interface {
	renderList(ctx *Context) string
	listLen() int
	elemType() T
}

// typed is embedded by every operand to carry its value type.
type typed[T any] struct{}

func (typed[T]) exprNode() {}

func (typed[T]) valueType() (zero T) { return zero }

// Numeric constrains value types accepted by SUM, AVG and arithmetic.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		decimal.Decimal |
		sql.Null[int] | sql.Null[int32] | sql.Null[int64] |
		sql.Null[float64] | sql.Null[decimal.Decimal]
}

// Text constrains value types accepted by LIKE and ILIKE.
type Text interface {
	~string | sql.Null[string]
}

// =============================================================================
// Literals
// =============================================================================

// Value is a literal of type T. It renders as an implicit placeholder and the
// value is captured for binding.
type Value[T any] struct {
	typed[T]
	v T
}

// Val wraps a Go value as a bound literal.
func Val[T any](v T) Value[T] {
	return Value[T]{v: v}
}

func (v Value[T]) render(ctx *Context) string {
	return ctx.Bind(v.v)
}

// Some returns a valid nullable value.
func Some[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

// None returns a NULL nullable value.
func None[T any]() sql.Null[T] {
	return sql.Null[T]{}
}

type widened[T any] struct {
	typed[sql.Null[T]]
	inner Operand[T]
}

// Widen lets a T operand be used where a nullable T is expected. There is no
// inverse: a nullable operand never satisfies a non-nullable position.
func Widen[T any](o Operand[T]) Operand[sql.Null[T]] {
	return widened[T]{inner: o}
}

func (w widened[T]) render(ctx *Context) string {
	return renderNode(ctx, w.inner)
}

// RawExpr is an escape hatch for SQL the typed layer does not model. The text
// is rendered verbatim and is never validated or escaped; the caller chooses T.
type RawExpr[T any] struct {
	typed[T]
	sql string
}

// Raw creates a raw expression of value type T.
func Raw[T any](sql string) RawExpr[T] {
	return RawExpr[T]{sql: sql}
}

func (r RawExpr[T]) render(*Context) string {
	return r.sql
}

// PlaceholderExpr is a bind marker with a caller-chosen index.
type PlaceholderExpr[T any] struct {
	typed[T]
	index int
}

// Placeholder creates an explicit placeholder for the 1-based index. Explicit
// placeholders do not capture values and do not advance implicit numbering.
func Placeholder[T any](index int) PlaceholderExpr[T] {
	return PlaceholderExpr[T]{index: index}
}

func (p PlaceholderExpr[T]) render(ctx *Context) string {
	return ctx.Explicit(p.index)
}

// =============================================================================
// Functions and operators
// =============================================================================

// FuncExpr is a scalar function call returning T.
type FuncExpr[T any] struct {
	typed[T]
	name string
	args []Expression
}

// Call creates a function call expression: name(arg, ...).
func Call[T any](name string, args ...Expression) FuncExpr[T] {
	return FuncExpr[T]{name: name, args: args}
}

func (f FuncExpr[T]) render(ctx *Context) string {
	return f.name + "(" + joinNodes(ctx, f.args, ", ") + ")"
}

// Coalesce returns the first non-NULL operand.
func Coalesce[T any](first Operand[sql.Null[T]], rest ...Operand[T]) FuncExpr[T] {
	args := make([]Expression, 0, len(rest)+1)
	args = append(args, first)
	for _, r := range rest {
		args = append(args, r)
	}
	return FuncExpr[T]{name: "COALESCE", args: args}
}

// Arith is a binary arithmetic expression.
type Arith[T any] struct {
	typed[T]
	op          string
	left, right Operand[T]
}

func (a Arith[T]) render(ctx *Context) string {
	return "(" + renderNode(ctx, a.left) + " " + a.op + " " + renderNode(ctx, a.right) + ")"
}

// Add renders (l + r).
func Add[T Numeric](l, r Operand[T]) Arith[T] { return Arith[T]{op: "+", left: l, right: r} }

// Sub renders (l - r).
func Sub[T Numeric](l, r Operand[T]) Arith[T] { return Arith[T]{op: "-", left: l, right: r} }

// Mul renders (l * r).
func Mul[T Numeric](l, r Operand[T]) Arith[T] { return Arith[T]{op: "*", left: l, right: r} }

// Div renders (l / r).
func Div[T Numeric](l, r Operand[T]) Arith[T] { return Arith[T]{op: "/", left: l, right: r} }

// Aliased is a projected expression with an output name (expr AS name).
type Aliased struct {
	expr Expression
	name string
}

// As names a projected expression.
func As(e Expression, name string) Aliased {
	return Aliased{expr: e, name: name}
}

func (Aliased) exprNode() {}

func (a Aliased) render(ctx *Context) string {
	return renderNode(ctx, a.expr) + " AS " + a.name
}

// =============================================================================
// Lists
// =============================================================================

type listOf[T any] struct{}

func (listOf[T]) elemType() (zero T) { return zero }

// ValueList is a list of literal values; each value becomes one placeholder.
type ValueList[T any] struct {
	listOf[T]
	values []T
}

// ListOf creates a literal list.
func ListOf[T any](values ...T) ValueList[T] {
	return ValueList[T]{values: values}
}

func (l ValueList[T]) listLen() int { return len(l.values) }

func (l ValueList[T]) renderList(ctx *Context) string {
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = ctx.Bind(v)
	}
	return strings.Join(parts, ", ")
}

// ExprList is a list of operands, e.g. columns or raw fragments.
type ExprList[T any] struct {
	listOf[T]
	items []Operand[T]
}

// ListExprs creates a list from operands.
func ListExprs[T any](items ...Operand[T]) ExprList[T] {
	return ExprList[T]{items: items}
}

func (l ExprList[T]) listLen() int { return len(l.items) }

func (l ExprList[T]) renderList(ctx *Context) string {
	return joinNodes(ctx, l.items, ", ")
}
