package schema

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

func buildQuery(t *testing.T, cat *Catalog, doc string) (sqldsl.Query, error) {
	t.Helper()
	q, err := ParseQuery([]byte(doc))
	require.NoError(t, err)
	stmt, err := Build(cat, q)
	if err != nil {
		return sqldsl.Query{}, err
	}
	return sqldsl.Render(sqldsl.Postgres, stmt)
}

func TestLoadQuery(t *testing.T) {
	cat := loadJedi(t)

	q, err := LoadQuery("testdata/select_light_side.yaml")
	require.NoError(t, err)
	assert.Equal(t, KindSelect, q.Kind)
	require.NotNil(t, q.Limit)
	assert.Equal(t, 10, *q.Limit)

	stmt, err := Build(cat, q)
	require.NoError(t, err)
	got, err := sqldsl.Render(sqldsl.Postgres, stmt)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT name, force_level FROM jedi WHERE ((side = $1) AND (force_level >= $2)) AND (master IS NOT NULL) ORDER BY force_level DESC LIMIT 10",
		got.SQL)
	assert.Equal(t, []any{true, int64(50)}, got.Args)
}

func TestBuild(t *testing.T) {
	cat := loadJedi(t)
	id := uuid.MustParse("0b6f2a1e-9c4d-4f1a-8a53-2f7c2f3b9e10")
	knighted := time.Date(2019, 12, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		doc  string
		want string
		args []any
	}{
		{
			name: "select star",
			doc:  "{kind: select, table: jedi}",
			want: "SELECT * FROM jedi",
		},
		{
			name: "distinct with offset",
			doc:  "{kind: select, table: padawan, columns: [master], distinct: true, offset: 5}",
			want: "SELECT DISTINCT master FROM padawan OFFSET 5",
		},
		{
			name: "or, in and like",
			doc: `
kind: select
table: jedi
columns: [name]
where:
  or:
    - {column: force_level, op: in, values: [1, 2, 3]}
    - {column: name, op: like, value: "L%"}`,
			want: "SELECT name FROM jedi WHERE (force_level IN ($1, $2, $3)) OR (name LIKE $4)",
			args: []any{int64(1), int64(2), int64(3), "L%"},
		},
		{
			name: "exclude between pushes negation to the leaves",
			doc: `
kind: select
table: jedi
columns: [name]
exclude: {column: force_level, op: between, values: [60, 90]}`,
			want: "SELECT name FROM jedi WHERE (force_level < $1) OR (force_level > $2)",
			args: []any{int64(60), int64(90)},
		},
		{
			name: "not around and",
			doc: `
kind: select
table: jedi
columns: [name]
where:
  not:
    and:
      - {column: side, op: eq, value: true}
      - {column: master, op: ilike, value: "%yoda%"}`,
			want: "SELECT name FROM jedi WHERE (side != $1) OR (master NOT ILIKE $2)",
			args: []any{true, "%yoda%"},
		},
		{
			name: "typed literals",
			doc: `
kind: select
table: jedi
columns: [name]
where:
  and:
    - {column: id, op: eq, value: "0b6f2a1e-9c4d-4f1a-8a53-2f7c2f3b9e10"}
    - {column: bounty, op: gt, value: "1000.50"}
    - {column: knighted_at, op: lt, value: "2019-12-20T00:00:00Z"}
    - {column: midichlorians, op: ge, value: 20000}`,
			want: "SELECT name FROM jedi WHERE (((id = $1) AND (bounty > $2)) AND (knighted_at < $3)) AND (midichlorians >= $4)",
			args: []any{
				id,
				decimal.RequireFromString("1000.50"),
				sql.Null[time.Time]{V: knighted, Valid: true},
				sql.Null[float64]{V: 20000, Valid: true},
			},
		},
		{
			name: "insert in declaration order",
			doc: `
kind: insert
table: jedi
values:
  - {side: true, name: Luke, master: null}
  - {name: Rey, side: true, master: Luke}
returning: ["*"]`,
			want: "INSERT INTO jedi (name, side, master) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING *",
			args: []any{"Luke", true, sql.Null[string]{}, "Rey", true, sql.Null[string]{V: "Luke", Valid: true}},
		},
		{
			name: "insert with column list",
			doc: `
kind: insert
table: padawan
columns: [master, name]
values:
  - {name: Ahsoka, master: Anakin}
returning: [name]`,
			want: "INSERT INTO padawan (master, name) VALUES ($1, $2) RETURNING name",
			args: []any{"Anakin", "Ahsoka"},
		},
		{
			name: "update with default",
			doc: `
kind: update
table: jedi
set:
  - {column: force_level, value: 0}
  - {column: master, default: true}
where: {column: name, op: eq, value: Vader}
returning: [name, force_level]`,
			want: "UPDATE jedi SET force_level = $1, master = DEFAULT WHERE name = $2 RETURNING name, force_level",
			args: []any{int64(0), "Vader"},
		},
		{
			name: "update without filter is guarded",
			doc:  "{kind: update, table: jedi, set: [{column: side, value: false}]}",
			want: "UPDATE jedi SET side = $1 WHERE true = false",
			args: []any{false},
		},
		{
			name: "update all",
			doc:  "{kind: update, table: jedi, set: [{column: side, value: false}], all: true}",
			want: "UPDATE jedi SET side = $1",
			args: []any{false},
		},
		{
			name: "delete with exclude",
			doc:  "{kind: delete, table: padawan, exclude: {column: master, op: eq, value: Yoda}}",
			want: "DELETE FROM padawan WHERE master != $1",
			args: []any{"Yoda"},
		},
		{
			name: "delete all returning",
			doc:  `{kind: delete, table: padawan, all: true, returning: ["*"]}`,
			want: "DELETE FROM padawan RETURNING *",
		},
		{
			name: "null checks",
			doc:  "{kind: delete, table: jedi, where: {column: knighted_at, op: is_null}}",
			want: "DELETE FROM jedi WHERE knighted_at IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildQuery(t, cat, tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SQL)
			if tt.args == nil {
				assert.Empty(t, got.Args)
			} else {
				assert.Equal(t, tt.args, got.Args)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	cat := loadJedi(t)

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown table", "{kind: select, table: sith}", ErrUnknownTable},
		{"unknown kind", "{kind: merge, table: jedi}", ErrInvalidQuery},
		{"unknown column", "{kind: select, table: jedi, columns: [lightsaber]}", ErrUnknownColumn},
		{"unknown order column", "{kind: select, table: jedi, order_by: [{column: rank}]}", ErrUnknownColumn},
		{"bool compared to string", "{kind: select, table: jedi, where: {column: side, op: eq, value: light}}", ErrTypeMismatch},
		{"fractional int", "{kind: select, table: jedi, where: {column: force_level, op: eq, value: 1.5}}", ErrTypeMismatch},
		{"bad uuid", "{kind: select, table: jedi, where: {column: id, op: eq, value: not-a-uuid}}", ErrTypeMismatch},
		{"bad timestamp", "{kind: select, table: jedi, where: {column: knighted_at, op: lt, value: yesterday}}", ErrTypeMismatch},
		{"like on int", "{kind: select, table: jedi, where: {column: force_level, op: like, value: '1%'}}", ErrTypeMismatch},
		{"in with wrong element", "{kind: select, table: jedi, where: {column: name, op: in, values: [Luke, 3]}}", ErrTypeMismatch},
		{"unknown operator", "{kind: select, table: jedi, where: {column: name, op: sounds_like, value: x}}", ErrInvalidQuery},
		{"between arity", "{kind: select, table: jedi, where: {column: force_level, op: between, values: [1]}}", ErrInvalidQuery},
		{"ambiguous condition", "{kind: select, table: jedi, where: {column: name, op: is_null, not: {column: side, op: is_null}}}", ErrInvalidQuery},
		{"empty condition", "{kind: select, table: jedi, where: {}}", ErrInvalidQuery},
		{"insert without values", "{kind: insert, table: jedi}", ErrInvalidQuery},
		{"insert unknown key", "{kind: insert, table: jedi, values: [{saber: blue}]}", ErrUnknownColumn},
		{"insert missing listed column", "{kind: insert, table: padawan, columns: [name, master], values: [{name: Ahsoka}]}", ErrInvalidQuery},
		{"insert key outside list", "{kind: insert, table: padawan, columns: [name], values: [{name: Ahsoka, master: Anakin}]}", ErrInvalidQuery},
		{"update set mismatch", "{kind: update, table: jedi, set: [{column: force_level, value: high}], all: true}", ErrTypeMismatch},
		{"returning unknown column", "{kind: delete, table: jedi, all: true, returning: [rank]}", ErrUnknownColumn},
		{"render error surfaces", "{kind: update, table: jedi, all: true}", sqldsl.ErrNoAssignments},
		{"ragged insert rows", "{kind: insert, table: padawan, values: [{name: a}, {name: b, master: c}]}", sqldsl.ErrRowShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildQuery(t, cat, tt.doc)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseQuery_Malformed(t *testing.T) {
	_, err := ParseQuery([]byte("kind: [select"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing query")
}
