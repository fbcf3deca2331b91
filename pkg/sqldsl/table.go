package sqldsl

// Table is a named table whose rows have the schema marker S. S is usually
// an empty struct declared next to the table's columns; it ties statements
// built from the table to that definition at compile time.
//
//	type JediRow struct{}
//	var Jedi = sqldsl.NewTable[JediRow]("jedi")
type Table[S any] struct {
	name  string
	alias string
}

// NewTable declares a table.
func NewTable[S any](name string) Table[S] {
	return Table[S]{name: name}
}

// Name returns the table name.
func (t Table[S]) Name() string { return t.name }

// Alias returns the table alias, or "".
func (t Table[S]) Alias() string { return t.alias }

// As returns a copy of t rendered as "name AS alias".
func (t Table[S]) As(alias string) Table[S] {
	t.alias = alias
	return t
}

func (t Table[S]) renderFrom(ctx *Context) string {
	if t.name == "" {
		ctx.Fail(ErrNoTable)
		return ""
	}
	if t.alias != "" {
		return t.name + " AS " + t.alias
	}
	return t.name
}

// FromItem is anything that can appear in FROM, USING or a JOIN.
type FromItem interface {
	renderFrom(ctx *Context) string
}

type subqueryFrom struct {
	query SelectStatement
	alias string
}

func (s subqueryFrom) renderFrom(ctx *Context) string {
	return "(" + renderNode(ctx, s.query) + ") AS " + s.alias
}

// SubqueryAs uses a select as a derived table: (SELECT ...) AS alias.
func SubqueryAs(q SelectStatement, alias string) FromItem {
	return subqueryFrom{query: q, alias: alias}
}

func renderFromList(ctx *Context, items []FromItem) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		if item == nil {
			ctx.Fail(ErrNilNode)
			return ""
		}
		out += item.renderFrom(ctx)
	}
	return out
}
