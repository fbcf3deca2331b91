// Package sqldsl provides a type-checked builder for SQL statements.
//
// # Overview
//
// Statements are immutable values built by chaining pure methods and then
// rendered to SQL text plus an ordered list of bind values. Column and
// operand types are Go type parameters, so comparing a text column to an
// integer, or using a many-row select as a scalar, fails to compile rather
// than failing at the database.
//
// # Core Interfaces
//
//   - Node: anything that renders (expressions, predicates, statements)
//   - Expression: a value-producing node
//   - Operand[T]: an expression whose value type is T
//   - List[T]: a list-valued expression for IN
//   - Statement: a complete SELECT, INSERT, UPDATE or DELETE
//
// # Tables and Columns
//
//	type JediRow struct{}
//
//	var (
//	    Jedi       = sqldsl.NewTable[JediRow]("jedi")
//	    Name       = sqldsl.NewColumn[string](Jedi, "name")
//	    Side       = sqldsl.NewColumn[bool](Jedi, "side")
//	    ForceLevel = sqldsl.NewColumn[int](Jedi, "force_level")
//	)
//
// # Predicates
//
//	Name.Is("Luke")                          // name = $1
//	ForceLevel.Gte(100)                      // force_level >= $1
//	Name.In("Luke", "Leia")                  // name IN ($1, $2)
//	Name.Is("Luke").Or(Name.Is("Anakin"))    // (name = $1) OR (name = $2)
//	Not(ForceLevel.Gte(100))                 // force_level < $1
//
// Negation is applied while rendering rather than stored in the tree. Known
// forms are negated in place (= to !=, IN to NOT IN, AND to OR with negated
// children); RawPredicate falls back to NOT (...).
//
// # Statements
//
//	q := Jedi.SelectAll().
//	    Where(Name.Is("Luke")).
//	    And(Side.Is(true))
//
//	sql, args, err := q.SQL(sqldsl.Postgres)
//	// SELECT * FROM jedi WHERE (name = $1) AND (side = $2)
//	// [Luke true]
//
// UPDATE and DELETE without a filter render WHERE true = false. Call All to
// affect every row.
//
// # Placeholders
//
// Literal values become implicit placeholders numbered in the order they are
// rendered. Placeholder[T](n) renders an explicit placeholder and does not
// advance the implicit counter, so mixing the two can reuse an index.
//
// # Dialects
//
// Postgres renders $N, MySQL renders ?, SQLite renders ?N. Nothing else
// about the output depends on the dialect.
package sqldsl
