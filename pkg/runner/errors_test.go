package runner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLState(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"pq error", &pq.Error{Code: "42P01"}, "42P01"},
		{"pgconn error", &pgconn.PgError{Code: "23505"}, "23505"},
		{"wrapped pgconn error", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42703"}), "42703"},
		{"message fallback", errors.New(`ERROR: relation "x" does not exist (SQLSTATE 42P01)`), "42P01"},
		{"no code", errors.New("connection refused"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqlState(tt.err))
		})
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"undefined table", &pq.Error{Code: "42P01"}, ErrUndefinedTable},
		{"undefined column", &pgconn.PgError{Code: "42703"}, ErrUndefinedColumn},
		{"unique violation", &pgconn.PgError{Code: "23505"}, ErrUniqueViolation},
		{"syntax", &pq.Error{Code: "42601"}, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("query", tt.err)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err, "driver error must stay reachable")
			assert.Contains(t, err.Error(), "query: ")
		})
	}

	t.Run("unclassified", func(t *testing.T) {
		cause := errors.New("boom")
		err := mapError("exec", cause)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "exec: boom", err.Error())
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapError("exec", nil))
	})
}

func TestWrapArrays(t *testing.T) {
	raw := []byte("abc")
	out := wrapArrays([]any{[]string{"a", "b"}, []int64{1}, raw, nil, 7})

	assert.IsType(t, (*pq.StringArray)(nil), out[0])
	assert.IsType(t, (*pq.Int64Array)(nil), out[1])
	assert.Equal(t, raw, out[2])
	assert.Nil(t, out[3])
	assert.Equal(t, 7, out[4])
}
