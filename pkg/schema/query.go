package schema

import (
	"fmt"
	"os"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Query kinds.
const (
	KindSelect = "select"
	KindInsert = "insert"
	KindUpdate = "update"
	KindDelete = "delete"
)

// QueryDoc is a query document. Which fields apply depends on Kind:
//
//	select: columns, distinct, where, exclude, order_by, limit, offset
//	insert: columns, values, returning
//	update: set, where, exclude, all, returning
//	delete: where, exclude, all, returning
type QueryDoc struct {
	Kind      string           `json:"kind"`
	Table     string           `json:"table"`
	Columns   []string         `json:"columns,omitempty"`
	Distinct  bool             `json:"distinct,omitempty"`
	Where     *Cond            `json:"where,omitempty"`
	Exclude   *Cond            `json:"exclude,omitempty"`
	OrderBy   []OrderDef       `json:"order_by,omitempty"`
	Limit     *int             `json:"limit,omitempty"`
	Offset    *int             `json:"offset,omitempty"`
	Values    []map[string]any `json:"values,omitempty"`
	Set       []Assignment     `json:"set,omitempty"`
	All       bool             `json:"all,omitempty"`
	Returning []string         `json:"returning,omitempty"`
}

// Cond is a predicate tree. Exactly one of And, Or, Not or Column is set.
// Leaf operators: eq, ne, lt, le, gt, ge, like, ilike, in, between,
// is_null, is_not_null.
type Cond struct {
	And    []Cond `json:"and,omitempty"`
	Or     []Cond `json:"or,omitempty"`
	Not    *Cond  `json:"not,omitempty"`
	Column string `json:"column,omitempty"`
	Op     string `json:"op,omitempty"`
	Value  any    `json:"value,omitempty"`
	Values []any  `json:"values,omitempty"`
}

// OrderDef is one ORDER BY term.
type OrderDef struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// Assignment is one SET item of an update. Default assigns DEFAULT and
// ignores Value.
type Assignment struct {
	Column  string `json:"column"`
	Value   any    `json:"value,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// ParseQuery parses a YAML (or JSON) query document.
func ParseQuery(data []byte) (QueryDoc, error) {
	var q QueryDoc
	if err := unmarshal(data, &q); err != nil {
		return QueryDoc{}, fmt.Errorf("parsing query: %w", err)
	}
	return q, nil
}

// LoadQuery reads and parses a query document from path.
func LoadQuery(path string) (QueryDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QueryDoc{}, fmt.Errorf("reading query: %w", err)
	}
	return ParseQuery(data)
}

// Build resolves a query document against the catalog and returns the typed
// statement. Every literal is converted to its column's Go type first.
func Build(cat *Catalog, q QueryDoc) (sqldsl.Statement, error) {
	t, err := cat.Table(q.Table)
	if err != nil {
		return nil, err
	}

	switch q.Kind {
	case KindSelect:
		return buildSelect(t, q)
	case KindInsert:
		return buildInsert(t, q)
	case KindUpdate:
		return buildUpdate(t, q)
	case KindDelete:
		return buildDelete(t, q)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidQuery, q.Kind)
	}
}

func buildSelect(t *Table, q QueryDoc) (sqldsl.Statement, error) {
	exprs, err := t.exprs(q.Columns)
	if err != nil {
		return nil, err
	}
	sel := sqldsl.SelectInto[sqldsl.Record](t.SQL(), exprs...)
	if q.Distinct {
		sel = sel.Distinct()
	}

	where, exclude, err := filters(t, q)
	if err != nil {
		return nil, err
	}
	sel = sel.Where(where).Exclude(exclude)

	terms := make([]sqldsl.OrderTerm, 0, len(q.OrderBy))
	for _, o := range q.OrderBy {
		c, err := t.Column(o.Column)
		if err != nil {
			return nil, err
		}
		terms = append(terms, c.Order(o.Desc))
	}
	if len(terms) > 0 {
		sel = sel.OrderBy(terms...)
	}
	if q.Offset != nil {
		sel = sel.Offset(*q.Offset)
	}
	if q.Limit != nil {
		return sel.Limit(*q.Limit), nil
	}
	return sel, nil
}

func buildInsert(t *Table, q QueryDoc) (sqldsl.Statement, error) {
	if len(q.Values) == 0 {
		return nil, fmt.Errorf("%w: insert into %q without values", ErrInvalidQuery, t.Name())
	}
	rows := make([]sqldsl.InsertRow, 0, len(q.Values))
	for i, vals := range q.Values {
		row, err := t.insertRow(q.Columns, vals)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	ins := t.SQL().Insert().Values(rows...)

	all, exprs, err := t.returning(q.Returning)
	switch {
	case err != nil:
		return nil, err
	case all:
		return ins.ReturningAll(), nil
	case len(exprs) > 0:
		return ins.Returning(exprs...), nil
	}
	return ins, nil
}

func buildUpdate(t *Table, q QueryDoc) (sqldsl.Statement, error) {
	fields := make([]sqldsl.Field, 0, len(q.Set))
	for _, a := range q.Set {
		c, err := t.Column(a.Column)
		if err != nil {
			return nil, err
		}
		if a.Default {
			fields = append(fields, c.SetDefault())
			continue
		}
		f, err := c.Set(a.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	where, exclude, err := filters(t, q)
	if err != nil {
		return nil, err
	}
	upd := t.SQL().Update(fields...).Where(where).Exclude(exclude)
	if q.All {
		upd = upd.All()
	}

	all, exprs, err := t.returning(q.Returning)
	switch {
	case err != nil:
		return nil, err
	case all:
		return upd.ReturningAll(), nil
	case len(exprs) > 0:
		return upd.Returning(exprs...), nil
	}
	return upd, nil
}

func buildDelete(t *Table, q QueryDoc) (sqldsl.Statement, error) {
	where, exclude, err := filters(t, q)
	if err != nil {
		return nil, err
	}
	del := t.SQL().Delete().Where(where).Exclude(exclude)
	if q.All {
		del = del.All()
	}

	all, exprs, err := t.returning(q.Returning)
	switch {
	case err != nil:
		return nil, err
	case all:
		return del.ReturningAll(), nil
	case len(exprs) > 0:
		return del.Returning(exprs...), nil
	}
	return del, nil
}

// filters builds the where and exclude predicates. Absent trees yield zero
// predicates, which the builders ignore.
func filters(t *Table, q QueryDoc) (where, exclude sqldsl.Predicate, err error) {
	if q.Where != nil {
		if where, err = q.Where.predicate(t); err != nil {
			return where, exclude, err
		}
	}
	if q.Exclude != nil {
		if exclude, err = q.Exclude.predicate(t); err != nil {
			return where, exclude, err
		}
	}
	return where, exclude, nil
}

func (t *Table) exprs(names []string) ([]sqldsl.Expression, error) {
	exprs := make([]sqldsl.Expression, 0, len(names))
	for _, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, c.Ref())
	}
	return exprs, nil
}

// returning resolves a RETURNING list. A single "*" means every column.
func (t *Table) returning(names []string) (all bool, exprs []sqldsl.Expression, err error) {
	if len(names) == 1 && names[0] == "*" {
		return true, nil, nil
	}
	exprs, err = t.exprs(names)
	return false, exprs, err
}

// insertRow converts one values map to typed fields. Without an explicit
// column list, fields follow declaration order.
func (t *Table) insertRow(cols []string, vals map[string]any) (sqldsl.InsertRow, error) {
	for k := range vals {
		if _, err := t.Column(k); err != nil {
			return nil, err
		}
	}

	var order []Column
	if len(cols) > 0 {
		for _, n := range cols {
			c, err := t.Column(n)
			if err != nil {
				return nil, err
			}
			if _, ok := vals[n]; !ok {
				return nil, fmt.Errorf("%w: missing value for column %q", ErrInvalidQuery, n)
			}
			order = append(order, c)
		}
		if len(vals) != len(cols) {
			return nil, fmt.Errorf("%w: values outside the column list", ErrInvalidQuery)
		}
	} else {
		for _, c := range t.columns {
			if _, ok := vals[c.Name()]; ok {
				order = append(order, c)
			}
		}
	}

	fields := make([]sqldsl.Field, 0, len(order))
	for _, c := range order {
		f, err := c.Set(vals[c.Name()])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return sqldsl.Row(fields...), nil
}

func (c *Cond) predicate(t *Table) (sqldsl.Predicate, error) {
	set := 0
	for _, b := range []bool{len(c.And) > 0, len(c.Or) > 0, c.Not != nil, c.Column != ""} {
		if b {
			set++
		}
	}
	if set != 1 {
		return sqldsl.Predicate{}, fmt.Errorf("%w: condition needs exactly one of and, or, not, column", ErrInvalidQuery)
	}

	switch {
	case len(c.And) > 0:
		ps, err := predicates(t, c.And)
		if err != nil {
			return sqldsl.Predicate{}, err
		}
		return sqldsl.And(ps...), nil
	case len(c.Or) > 0:
		ps, err := predicates(t, c.Or)
		if err != nil {
			return sqldsl.Predicate{}, err
		}
		return sqldsl.Or(ps...), nil
	case c.Not != nil:
		p, err := c.Not.predicate(t)
		if err != nil {
			return sqldsl.Predicate{}, err
		}
		return sqldsl.Not(p), nil
	}
	return c.leaf(t)
}

func predicates(t *Table, conds []Cond) ([]sqldsl.Predicate, error) {
	ps := make([]sqldsl.Predicate, 0, len(conds))
	for i := range conds {
		p, err := conds[i].predicate(t)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (c *Cond) leaf(t *Table) (sqldsl.Predicate, error) {
	col, err := t.Column(c.Column)
	if err != nil {
		return sqldsl.Predicate{}, err
	}

	switch c.Op {
	case "eq", "ne", "lt", "le", "gt", "ge":
		return col.Compare(c.Op, c.Value)
	case "like", "ilike":
		pattern, ok := c.Value.(string)
		if !ok {
			return sqldsl.Predicate{}, fmt.Errorf("%w: %s pattern must be a string", ErrInvalidQuery, c.Op)
		}
		return col.Like(pattern, c.Op == "ilike")
	case "in":
		return col.In(c.Values)
	case "between":
		if len(c.Values) != 2 {
			return sqldsl.Predicate{}, fmt.Errorf("%w: between needs two values, got %d", ErrInvalidQuery, len(c.Values))
		}
		return col.Between(c.Values[0], c.Values[1])
	case "is_null":
		return col.Null(true), nil
	case "is_not_null":
		return col.Null(false), nil
	default:
		return sqldsl.Predicate{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, c.Op)
	}
}
