package schema

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Supported column types.
const (
	TypeText      = "text"
	TypeBool      = "bool"
	TypeInt       = "int"
	TypeFloat     = "float"
	TypeDecimal   = "decimal"
	TypeUUID      = "uuid"
	TypeTimestamp = "timestamp"
)

// Types lists the supported column types in documentation order.
var Types = []string{TypeText, TypeBool, TypeInt, TypeFloat, TypeDecimal, TypeUUID, TypeTimestamp}

// Row is the schema marker of every table loaded from a document.
type Row struct{}

// Column is a declared column, erased to the operations a query document
// can apply. Each operation converts document literals to the column's Go
// type before building the typed sqldsl node, so a document that compares a
// bool column to a string fails here with ErrTypeMismatch.
type Column interface {
	Name() string
	Type() string
	Nullable() bool
	Ref() sqldsl.ColumnRef

	Compare(op string, v any) (sqldsl.Predicate, error)
	In(vs []any) (sqldsl.Predicate, error)
	Between(lo, hi any) (sqldsl.Predicate, error)
	Null(isNull bool) sqldsl.Predicate
	Like(pattern string, insensitive bool) (sqldsl.Predicate, error)
	Set(v any) (sqldsl.Field, error)
	SetDefault() sqldsl.Field
	Order(desc bool) sqldsl.OrderTerm
}

// typedColumn adapts a sqldsl.Column[T] to Column.
type typedColumn[T any] struct {
	col      sqldsl.Column[T]
	typ      string
	nullable bool
	parse    func(any) (T, error)
	like     func(c sqldsl.Column[T], pattern string, insensitive bool) sqldsl.Predicate
}

func (c typedColumn[T]) Name() string          { return c.col.ColumnName() }
func (c typedColumn[T]) Type() string          { return c.typ }
func (c typedColumn[T]) Nullable() bool        { return c.nullable }
func (c typedColumn[T]) Ref() sqldsl.ColumnRef { return c.col }

func (c typedColumn[T]) value(v any) (T, error) {
	t, err := c.parse(v)
	if err != nil {
		return t, fmt.Errorf("%w: column %q (%s): %w", ErrTypeMismatch, c.Name(), c.typ, err)
	}
	return t, nil
}

func (c typedColumn[T]) Compare(op string, v any) (sqldsl.Predicate, error) {
	t, err := c.value(v)
	if err != nil {
		return sqldsl.Predicate{}, err
	}
	val := sqldsl.Val(t)
	switch op {
	case "eq":
		return sqldsl.Eq[T](c.col, val), nil
	case "ne":
		return sqldsl.Ne[T](c.col, val), nil
	case "lt":
		return sqldsl.Lt[T](c.col, val), nil
	case "le":
		return sqldsl.Le[T](c.col, val), nil
	case "gt":
		return sqldsl.Gt[T](c.col, val), nil
	case "ge":
		return sqldsl.Ge[T](c.col, val), nil
	default:
		return sqldsl.Predicate{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, op)
	}
}

func (c typedColumn[T]) In(vs []any) (sqldsl.Predicate, error) {
	ts := make([]T, len(vs))
	for i, v := range vs {
		t, err := c.value(v)
		if err != nil {
			return sqldsl.Predicate{}, err
		}
		ts[i] = t
	}
	return c.col.In(ts...), nil
}

func (c typedColumn[T]) Between(lo, hi any) (sqldsl.Predicate, error) {
	l, err := c.value(lo)
	if err != nil {
		return sqldsl.Predicate{}, err
	}
	h, err := c.value(hi)
	if err != nil {
		return sqldsl.Predicate{}, err
	}
	return c.col.Between(l, h), nil
}

func (c typedColumn[T]) Null(isNull bool) sqldsl.Predicate {
	if isNull {
		return c.col.IsNull()
	}
	return c.col.IsNotNull()
}

func (c typedColumn[T]) Like(pattern string, insensitive bool) (sqldsl.Predicate, error) {
	if c.like == nil {
		return sqldsl.Predicate{}, fmt.Errorf("%w: LIKE on %s column %q", ErrTypeMismatch, c.typ, c.Name())
	}
	return c.like(c.col, pattern, insensitive), nil
}

func (c typedColumn[T]) Set(v any) (sqldsl.Field, error) {
	t, err := c.value(v)
	if err != nil {
		return sqldsl.Field{}, err
	}
	return c.col.Set(t), nil
}

func (c typedColumn[T]) SetDefault() sqldsl.Field { return c.col.SetDefault() }

func (c typedColumn[T]) Order(desc bool) sqldsl.OrderTerm {
	if desc {
		return c.col.Desc()
	}
	return c.col.Asc()
}

func newColumn[T any](t sqldsl.Table[Row], name, typ string, parse func(any) (T, error)) typedColumn[T] {
	return typedColumn[T]{col: sqldsl.NewColumn[T](t, name), typ: typ, parse: parse}
}

// nullColumn builds the sql.Null[T] variant of a column. A nil literal is
// NULL; anything else is parsed as T.
func nullColumn[T any](t sqldsl.Table[Row], name, typ string, parse func(any) (T, error)) typedColumn[sql.Null[T]] {
	c := newColumn(t, name, typ, func(v any) (sql.Null[T], error) {
		if v == nil {
			return sqldsl.None[T](), nil
		}
		x, err := parse(v)
		if err != nil {
			return sql.Null[T]{}, err
		}
		return sqldsl.Some(x), nil
	})
	c.nullable = true
	return c
}

func likeText[T sqldsl.Text](c sqldsl.Column[T], pattern string, insensitive bool) sqldsl.Predicate {
	if insensitive {
		return sqldsl.ILike[T](c, pattern)
	}
	return sqldsl.Like[T](c, pattern)
}

// buildColumn creates the typed column for a declaration.
func buildColumn(t sqldsl.Table[Row], def ColumnDef) (Column, error) {
	switch def.Type {
	case TypeText:
		if def.Nullable {
			c := nullColumn(t, def.Name, def.Type, parseText)
			c.like = likeText[sql.Null[string]]
			return c, nil
		}
		c := newColumn(t, def.Name, def.Type, parseText)
		c.like = likeText[string]
		return c, nil
	case TypeBool:
		return pick(t, def, parseBool), nil
	case TypeInt:
		return pick(t, def, parseInt), nil
	case TypeFloat:
		return pick(t, def, parseFloat), nil
	case TypeDecimal:
		return pick(t, def, parseDecimal), nil
	case TypeUUID:
		return pick(t, def, parseUUID), nil
	case TypeTimestamp:
		return pick(t, def, parseTimestamp), nil
	default:
		return nil, fmt.Errorf("%w: %q for column %q", ErrUnknownType, def.Type, def.Name)
	}
}

func pick[T any](t sqldsl.Table[Row], def ColumnDef, parse func(any) (T, error)) Column {
	if def.Nullable {
		return nullColumn(t, def.Name, def.Type, parse)
	}
	return newColumn(t, def.Name, def.Type, parse)
}

// =============================================================================
// Literal parsing
// =============================================================================

func parseText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("want string, got %T", v)
}

func parseBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("want bool, got %T", v)
}

func parseInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("want integer, got %T", v)
}

func parseFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func parseDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	}
	return decimal.Decimal{}, fmt.Errorf("want decimal, got %T", v)
}

func parseUUID(v any) (uuid.UUID, error) {
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("want uuid string, got %T", v)
	}
	return uuid.Parse(s)
}

func parseTimestamp(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("want RFC 3339 string, got %T", v)
	}
	return time.Parse(time.RFC3339, s)
}
