package sqldsl

// AggregateFunc names an aggregate function.
type AggregateFunc string

// Supported aggregate functions.
const (
	AggSum   AggregateFunc = "SUM"
	AggMin   AggregateFunc = "MIN"
	AggMax   AggregateFunc = "MAX"
	AggAvg   AggregateFunc = "AVG"
	AggCount AggregateFunc = "COUNT"
)

// Aggregate is an aggregate function applied to one expression. A nil
// argument renders as COUNT(*).
type Aggregate[T any] struct {
	typed[T]
	fn       AggregateFunc
	arg      Expression
	distinct bool
}

func (a Aggregate[T]) render(ctx *Context) string {
	if a.arg == nil {
		return string(a.fn) + "(*)"
	}
	if a.distinct {
		return string(a.fn) + "(DISTINCT " + renderNode(ctx, a.arg) + ")"
	}
	return string(a.fn) + "(" + renderNode(ctx, a.arg) + ")"
}

// Sum renders SUM(e).
func Sum[T Numeric](e Operand[T]) Aggregate[T] {
	return Aggregate[T]{fn: AggSum, arg: e}
}

// Avg renders AVG(e).
func Avg[T Numeric](e Operand[T]) Aggregate[T] {
	return Aggregate[T]{fn: AggAvg, arg: e}
}

// Min renders MIN(e).
func Min[T any](e Operand[T]) Aggregate[T] {
	return Aggregate[T]{fn: AggMin, arg: e}
}

// Max renders MAX(e).
func Max[T any](e Operand[T]) Aggregate[T] {
	return Aggregate[T]{fn: AggMax, arg: e}
}

// Count renders COUNT(e).
func Count(e Expression) Aggregate[int64] {
	if e == nil {
		return CountAll()
	}
	return Aggregate[int64]{fn: AggCount, arg: e}
}

// CountDistinct renders COUNT(DISTINCT e).
func CountDistinct(e Expression) Aggregate[int64] {
	if e == nil {
		return CountAll()
	}
	return Aggregate[int64]{fn: AggCount, arg: e, distinct: true}
}

// CountAll renders COUNT(*).
func CountAll() Aggregate[int64] {
	return Aggregate[int64]{fn: AggCount}
}
