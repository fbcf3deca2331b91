package sqldsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_Jedi(t *testing.T) {
	sql, args, err := jedi.SelectAll().
		Where(jediName.Is("Luke")).
		And(jediSide.Is(true)).
		SQL(Postgres)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM jedi WHERE (name = $1) AND (side = $2)", sql)
	assert.Equal(t, []any{"Luke", true}, args)
}

func TestSelect_SQL(t *testing.T) {
	countBySide := SelectCols(jedi, jediSide, CountAll())

	tests := []struct {
		name string
		stmt Node
		want string
		args []any
	}{
		{
			name: "select all",
			stmt: jedi.SelectAll(),
			want: "SELECT * FROM jedi",
		},
		{
			name: "distinct",
			stmt: jedi.SelectAll().Distinct(),
			want: "SELECT DISTINCT * FROM jedi",
		},
		{
			name: "distinct on",
			stmt: jedi.SelectAll().DistinctOn(jediSide, jediName),
			want: "SELECT DISTINCT ON (side, name) * FROM jedi",
		},
		{
			name: "distinct on empty list is plain distinct",
			stmt: jedi.SelectAll().DistinctOn(),
			want: "SELECT DISTINCT * FROM jedi",
		},
		{
			name: "column list",
			stmt: SelectCols(jedi, jediName, As(jediForce, "power")),
			want: "SELECT name, force_level AS power FROM jedi",
		},
		{
			name: "single column",
			stmt: Select[string](jedi, jediName).Where(jediSide.Is(false)),
			want: "SELECT name FROM jedi WHERE side = $1",
			args: []any{false},
		},
		{
			name: "empty group by is elided",
			stmt: countBySide.GroupBy(),
			want: "SELECT side, COUNT(*) FROM jedi",
		},
		{
			name: "group by and having",
			stmt: countBySide.GroupBy(jediSide).Having(Gt[int64](CountAll(), Val[int64](2))),
			want: "SELECT side, COUNT(*) FROM jedi GROUP BY side HAVING COUNT(*) > $1",
			args: []any{int64(2)},
		},
		{
			name: "exclude having",
			stmt: countBySide.GroupBy(jediSide).ExcludeHaving(Gt[int64](CountAll(), Val[int64](2))),
			want: "SELECT side, COUNT(*) FROM jedi GROUP BY side HAVING COUNT(*) <= $1",
			args: []any{int64(2)},
		},
		{
			name: "order by",
			stmt: jedi.SelectAll().OrderBy(jediName.Asc(), jediForce.Desc()),
			want: "SELECT * FROM jedi ORDER BY name ASC, force_level DESC",
		},
		{
			name: "limit and offset",
			stmt: jedi.SelectAll().Limit(10).Offset(20),
			want: "SELECT * FROM jedi LIMIT 10 OFFSET 20",
		},
		{
			name: "first",
			stmt: jedi.SelectAll().Where(jediName.Is("Yoda")).First(),
			want: "SELECT * FROM jedi WHERE name = $1 LIMIT 1",
			args: []any{"Yoda"},
		},
		{
			name: "for update nowait",
			stmt: jedi.SelectAll().ForUpdate().NoWait(),
			want: "SELECT * FROM jedi FOR UPDATE NOWAIT",
		},
		{
			name: "for share",
			stmt: jedi.SelectAll().ForShare(),
			want: "SELECT * FROM jedi FOR SHARE",
		},
		{
			name: "nowait without lock",
			stmt: jedi.SelectAll().NoWait(),
			want: "SELECT * FROM jedi",
		},
		{
			name: "multiple from",
			stmt: jedi.SelectAll().From(padawan),
			want: "SELECT * FROM jedi, padawan",
		},
		{
			name: "inner join",
			stmt: jedi.As("j").SelectAll().
				InnerJoin(padawan.As("p"), jediName.Qual("j").Eq(padawanMaster.Qual("p"))),
			want: "SELECT * FROM jedi AS j INNER JOIN padawan AS p ON j.name = p.master",
		},
		{
			name: "left join then cross join",
			stmt: jedi.SelectAll().
				LeftJoin(padawan, jediName.Qualified().Eq(padawanMaster.Qualified())).
				CrossJoin(NewTable[struct{}]("planet")),
			want: "SELECT * FROM jedi LEFT JOIN padawan ON jedi.name = padawan.master CROSS JOIN planet",
		},
		{
			name: "full outer join",
			stmt: jedi.SelectAll().
				FullOuterJoin(padawan, jediName.Qualified().Eq(padawanMaster.Qualified())),
			want: "SELECT * FROM jedi FULL OUTER JOIN padawan ON jedi.name = padawan.master",
		},
		{
			name: "natural join",
			stmt: jedi.SelectAll().NaturalJoin(padawan),
			want: "SELECT * FROM jedi NATURAL JOIN padawan",
		},
		{
			name: "derived table",
			stmt: jedi.SelectAll().From(SubqueryAs(Select[string](padawan, padawanName).Distinct(), "names")),
			want: "SELECT * FROM jedi, (SELECT DISTINCT name FROM padawan) AS names",
		},
		{
			name: "all clauses in order",
			stmt: SelectCols(jedi, jediSide, Sum[int](jediForce)).
				Distinct().
				InnerJoin(padawan, padawanMaster.Qualified().Eq(jediName.Qualified())).
				Where(jediForce.Gt(5)).
				GroupBy(jediSide).
				Having(Gt[int](Sum[int](jediForce), Val(50))).
				OrderBy(jediSide.Desc()).
				Limit(3).
				Offset(1).
				ForShare(),
			want: "SELECT DISTINCT side, SUM(force_level) FROM jedi INNER JOIN padawan ON padawan.master = jedi.name " +
				"WHERE force_level > $1 GROUP BY side HAVING SUM(force_level) > $2 ORDER BY side DESC LIMIT 3 OFFSET 1 FOR SHARE",
			args: []any{5, 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustRender(t, tt.stmt)
			assert.Equal(t, tt.want, q.SQL)
			if tt.args == nil {
				assert.Empty(t, q.Args)
			} else {
				assert.Equal(t, tt.args, q.Args)
			}
		})
	}
}

func TestSelect_Exclude(t *testing.T) {
	luke, light := jediName.Is("Luke"), jediSide.Is(true)

	tests := []struct {
		name string
		stmt SelectQuery[jediRow, jediRow, Many]
		want string
	}{
		{
			name: "exclude conjunction",
			stmt: jedi.SelectAll().Exclude(luke.And(light)),
			want: "SELECT * FROM jedi WHERE (name != $1) OR (side != $2)",
		},
		{
			name: "two excludes",
			stmt: jedi.SelectAll().Exclude(luke).Exclude(light),
			want: "SELECT * FROM jedi WHERE (name != $1) AND (side != $2)",
		},
		{
			name: "where then exclude",
			stmt: jedi.SelectAll().Where(luke).Exclude(light),
			want: "SELECT * FROM jedi WHERE (name = $1) AND (side != $2)",
		},
		{
			name: "exclude nested under existing filter",
			stmt: jedi.SelectAll().Where(jediForce.Gte(100)).Exclude(luke.Or(light)),
			want: "SELECT * FROM jedi WHERE (force_level >= $1) AND ((name != $2) AND (side != $3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := tt.stmt.SQL(Postgres)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestSelect_CopyOnWrite(t *testing.T) {
	base := jedi.SelectAll().OrderBy(jediName.Asc())

	bySide := base.OrderBy(jediSide.Asc())
	byForce := base.OrderBy(jediForce.Desc())
	light := base.Where(jediSide.Is(true))

	assert.Equal(t, "SELECT * FROM jedi ORDER BY name ASC", mustRender(t, base).SQL)
	assert.Equal(t, "SELECT * FROM jedi ORDER BY name ASC, side ASC", mustRender(t, bySide).SQL)
	assert.Equal(t, "SELECT * FROM jedi ORDER BY name ASC, force_level DESC", mustRender(t, byForce).SQL)
	assert.Equal(t, "SELECT * FROM jedi WHERE side = $1 ORDER BY name ASC", mustRender(t, light).SQL)
}

func TestSelect_Dialects(t *testing.T) {
	q := jedi.SelectAll().Where(jediName.Is("Luke")).And(jediSide.Is(true))

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Postgres, "SELECT * FROM jedi WHERE (name = $1) AND (side = $2)"},
		{MySQL, "SELECT * FROM jedi WHERE (name = ?) AND (side = ?)"},
		{SQLite, "SELECT * FROM jedi WHERE (name = ?1) AND (side = ?2)"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			sql, args, err := q.SQL(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
			assert.Equal(t, []any{"Luke", true}, args)
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	t.Run("no dialect", func(t *testing.T) {
		_, _, err := jedi.SelectAll().SQL(nil)
		require.ErrorIs(t, err, ErrNoDialect)
	})

	t.Run("zero table", func(t *testing.T) {
		_, _, err := Table[jediRow]{}.SelectAll().SQL(Postgres)
		require.Error(t, err)
		assert.True(t, IsNoTableErr(err))
	})

	t.Run("negative limit", func(t *testing.T) {
		sql, args, err := jedi.SelectAll().Where(jediName.Is("x")).Limit(-1).SQL(Postgres)
		require.ErrorIs(t, err, ErrNegativeLimit)
		assert.Empty(t, sql)
		assert.Nil(t, args)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, _, err := jedi.SelectAll().Offset(-5).SQL(Postgres)
		require.ErrorIs(t, err, ErrNegativeLimit)
	})

	t.Run("conditioned join without predicate", func(t *testing.T) {
		_, _, err := jedi.SelectAll().InnerJoin(padawan, Predicate{}).SQL(Postgres)
		require.ErrorIs(t, err, ErrEmptyPredicate)
	})
}

func TestJoinKind_Keyword(t *testing.T) {
	kinds := []JoinKind{
		JoinInner, JoinLeft, JoinLeftOuter, JoinRight, JoinRightOuter, JoinFull, JoinFullOuter,
		JoinNatural, JoinNaturalLeft, JoinNaturalRight, JoinNaturalFull, JoinCross,
	}

	seen := make(map[string]JoinKind)
	for _, k := range kinds {
		kw := k.Keyword()
		require.NotEmpty(t, kw)
		if prev, ok := seen[kw]; ok {
			t.Fatalf("join kinds %d and %d share keyword %q", prev, k, kw)
		}
		seen[kw] = k
	}

	assert.True(t, JoinInner.Conditioned())
	assert.True(t, JoinFull.Conditioned())
	assert.True(t, JoinLeftOuter.Conditioned())
	assert.True(t, JoinFullOuter.Conditioned())
	assert.Equal(t, "RIGHT OUTER JOIN", JoinRightOuter.Keyword())
	assert.False(t, JoinCross.Conditioned())
	assert.False(t, JoinNatural.Conditioned())
	assert.Equal(t, "CROSS JOIN", JoinCross.String())
	assert.Empty(t, JoinKind(99).Keyword())
}
