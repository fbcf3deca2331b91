package sqldsl

import (
	"fmt"
	"slices"
	"strings"
)

// Node is anything the rendering engine can serialize: expressions,
// predicates and complete statements.
type Node interface {
	render(ctx *Context) string
}

// Context is the per-render state threaded through every node. It owns the
// implicit placeholder counter, the highest explicit placeholder seen and the
// literal values captured for binding, in encounter order.
//
// A Context belongs to a single render call and must not be shared.
type Context struct {
	dialect     Dialect
	implicit    int
	maxExplicit int
	values      []any
	err         error
}

// NewContext creates a rendering context for the dialect.
func NewContext(d Dialect) *Context {
	return &Context{dialect: d}
}

// Dialect returns the context's dialect.
func (c *Context) Dialect() Dialect {
	return c.dialect
}

// Bind captures a literal value and returns the next implicit placeholder.
func (c *Context) Bind(v any) string {
	c.implicit++
	c.values = append(c.values, v)
	return c.dialect.Placeholder(c.implicit)
}

// Explicit renders a caller-numbered placeholder. It does not reserve or bump
// the implicit counter, so mixing explicit and implicit placeholders in one
// statement can reuse indexes.
func (c *Context) Explicit(index int) string {
	if index < 1 {
		c.Fail(fmt.Errorf("%w: %d", ErrPlaceholderIndex, index))
		return ""
	}
	if index > c.maxExplicit {
		c.maxExplicit = index
	}
	return c.dialect.Placeholder(index)
}

// Values returns a copy of the captured literal values.
func (c *Context) Values() []any {
	return slices.Clone(c.values)
}

// MaxExplicit returns the highest explicit placeholder index rendered so far.
func (c *Context) MaxExplicit() int {
	return c.maxExplicit
}

// Fail records the first rendering error. Later errors are dropped.
func (c *Context) Fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first rendering error, if any.
func (c *Context) Err() error {
	return c.err
}

// Query is a rendered statement: SQL text plus the values to bind, in
// placeholder order.
type Query struct {
	SQL  string
	Args []any
}

// Render serializes n for the dialect with a fresh context.
func Render(d Dialect, n Node) (Query, error) {
	if d == nil {
		return Query{}, ErrNoDialect
	}
	if n == nil {
		return Query{}, ErrNilNode
	}
	ctx := NewContext(d)
	sql := n.render(ctx)
	if ctx.err != nil {
		return Query{}, ctx.err
	}
	return Query{SQL: sql, Args: ctx.values}, nil
}

// renderNode renders n, recording ErrNilNode instead of panicking on nil.
func renderNode(ctx *Context, n Node) string {
	if n == nil {
		ctx.Fail(ErrNilNode)
		return ""
	}
	return n.render(ctx)
}

// joinNodes renders each node and joins the results with sep.
func joinNodes[N Node](ctx *Context, nodes []N, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = renderNode(ctx, n)
	}
	return strings.Join(parts, sep)
}
