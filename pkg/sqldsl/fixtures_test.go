package sqldsl

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

type jediRow struct{}

type padawanRow struct{}

var (
	jedi       = NewTable[jediRow]("jedi")
	jediName   = NewColumn[string](jedi, "name")
	jediSide   = NewColumn[bool](jedi, "side")
	jediForce  = NewColumn[int](jedi, "force_level")
	jediMaster = NewColumn[sql.Null[string]](jedi, "master")

	padawan       = NewTable[padawanRow]("padawan")
	padawanName   = NewColumn[string](padawan, "name")
	padawanMaster = NewColumn[string](padawan, "master")
)

// mustRender renders n for Postgres and fails the test on error.
func mustRender(t *testing.T, n Node) Query {
	t.Helper()
	q, err := Render(Postgres, n)
	require.NoError(t, err)
	return q
}
