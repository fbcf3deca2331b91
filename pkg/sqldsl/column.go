package sqldsl

// ColumnRef is the type-erased view of a column, used where only its
// identity matters (insert column lists, RETURNING, schema documents).
type ColumnRef interface {
	Expression
	TableName() string
	ColumnName() string
}

// Column is a typed handle to a table column. T is the Go value type the
// column holds; it is used only for type checking and never reaches SQL.
//
// A column renders as its bare name, or qualifier.name once rebound with
// Qual (for joins and aliased tables).
type Column[T any] struct {
	typed[T]
	table string
	qual  string
	name  string
}

// NewColumn declares a column of t:
//
//	var Name = sqldsl.NewColumn[string](Jedi, "name")
func NewColumn[T, S any](t Table[S], name string) Column[T] {
	return Column[T]{table: t.name, name: name}
}

// Col declares a column by table name without a Table value.
func Col[T any](table, name string) Column[T] {
	return Column[T]{table: table, name: name}
}

// Qual returns a copy of c rendered as q.name.
func (c Column[T]) Qual(q string) Column[T] {
	c.qual = q
	return c
}

// Qualified returns a copy of c qualified by its own table name.
func (c Column[T]) Qualified() Column[T] {
	return c.Qual(c.table)
}

// TableName returns the declaring table's name.
func (c Column[T]) TableName() string { return c.table }

// ColumnName returns the unqualified column name.
func (c Column[T]) ColumnName() string { return c.name }

// Qualifier returns the current qualifier, or "" if unqualified.
func (c Column[T]) Qualifier() string { return c.qual }

// Equal reports whether c and o render as the same column reference.
func (c Column[T]) Equal(o Column[T]) bool {
	return c.table == o.table && c.qual == o.qual && c.name == o.name
}

func (c Column[T]) render(*Context) string {
	if c.qual != "" {
		return c.qual + "." + c.name
	}
	return c.name
}

// Is renders c = v with v bound.
func (c Column[T]) Is(v T) Predicate { return Eq[T](c, Val(v)) }

// IsNot renders c != v with v bound.
func (c Column[T]) IsNot(v T) Predicate { return Ne[T](c, Val(v)) }

// Eq compares c to another operand of the same type.
func (c Column[T]) Eq(o Operand[T]) Predicate { return Eq[T](c, o) }

// Ne renders c != o.
func (c Column[T]) Ne(o Operand[T]) Predicate { return Ne[T](c, o) }

// Lt renders c < v.
func (c Column[T]) Lt(v T) Predicate { return Lt[T](c, Val(v)) }

// Lte renders c <= v.
func (c Column[T]) Lte(v T) Predicate { return Le[T](c, Val(v)) }

// Gt renders c > v.
func (c Column[T]) Gt(v T) Predicate { return Gt[T](c, Val(v)) }

// Gte renders c >= v.
func (c Column[T]) Gte(v T) Predicate { return Ge[T](c, Val(v)) }

// In renders c IN (v, ...). An empty set renders as false.
func (c Column[T]) In(vs ...T) Predicate { return In[T](c, ListOf(vs...)) }

// NotIn renders c NOT IN (v, ...).
func (c Column[T]) NotIn(vs ...T) Predicate { return NotIn[T](c, ListOf(vs...)) }

// InRange renders a bounded range check with both bounds bound as values.
func (c Column[T]) InRange(lo, hi T, b Bounds) Predicate {
	return InRange[T](c, Val(lo), Val(hi), b)
}

// Between renders lo <= c <= hi.
func (c Column[T]) Between(lo, hi T) Predicate {
	return InRange[T](c, Val(lo), Val(hi), IncludeBoth)
}

// IsNull renders c IS NULL.
func (c Column[T]) IsNull() Predicate { return IsNull[T](c) }

// IsNotNull renders c IS NOT NULL.
func (c Column[T]) IsNotNull() Predicate { return IsNotNull[T](c) }

// Asc orders by c ascending.
func (c Column[T]) Asc() OrderTerm { return Asc(c) }

// Desc orders by c descending.
func (c Column[T]) Desc() OrderTerm { return Desc(c) }

// Set assigns a bound value to c.
func (c Column[T]) Set(v T) Field {
	return Field{name: c.name, value: Val(v)}
}

// SetTo assigns an arbitrary operand of the same type to c.
func (c Column[T]) SetTo(o Operand[T]) Field {
	return Field{name: c.name, value: o}
}

// SetDefault assigns DEFAULT to c.
func (c Column[T]) SetDefault() Field {
	return Field{name: c.name, isDefault: true}
}

// Field is a column/value pair used by UPDATE ... SET and typed INSERT rows.
type Field struct {
	name      string
	value     Expression
	isDefault bool
}

// Name returns the assigned column name.
func (f Field) Name() string { return f.name }

func (f Field) renderValue(ctx *Context) string {
	if f.isDefault {
		return "DEFAULT"
	}
	return renderNode(ctx, f.value)
}

func (f Field) renderAssign(ctx *Context) string {
	return f.name + " = " + f.renderValue(ctx)
}
