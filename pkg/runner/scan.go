package runner

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Row is one decoded result row. Columns keep the order of the select list.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Map returns the row as a column-keyed map.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

// ScanMaps decodes all remaining rows without a destination type. Byte
// slices are converted to strings so rows print and marshal readably.
func ScanMaps(rows *sql.Rows) ([]Row, error) {
	xr := &sqlx.Rows{Rows: rows}
	cols, err := xr.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var out []Row
	for xr.Next() {
		values, err := xr.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(out), err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, Row{Columns: cols, Values: values})
	}
	if err := xr.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
