// Package schema loads table and query documents and turns them into typed
// sqldsl statements.
//
// A table document declares tables and typed columns:
//
//	tables:
//	  - name: jedi
//	    columns:
//	      - {name: name, type: text}
//	      - {name: side, type: bool}
//	      - {name: master, type: text, nullable: true}
//
// Each column becomes a sqldsl.Column[T] of the matching Go type (string,
// bool, int64, float64, decimal.Decimal, uuid.UUID, time.Time, or sql.Null
// of those for nullable columns). Query documents reference the catalog by
// name; literals are converted to the column type when the query is built,
// and mismatches are reported as ErrTypeMismatch.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Document is a table document.
type Document struct {
	Tables []TableDef `json:"tables"`
}

// TableDef declares one table.
type TableDef struct {
	Name    string      `json:"name"`
	Columns []ColumnDef `json:"columns"`
}

// ColumnDef declares one column.
type ColumnDef struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// Table is a loaded table with its typed columns in declaration order.
type Table struct {
	table   sqldsl.Table[Row]
	columns []Column
	byName  map[string]Column
}

// Name returns the table name.
func (t *Table) Name() string { return t.table.Name() }

// SQL returns the underlying sqldsl table.
func (t *Table) SQL() sqldsl.Table[Row] { return t.table }

// Columns returns the columns in declaration order.
func (t *Table) Columns() []Column { return t.columns }

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name(), name)
	}
	return c, nil
}

// Catalog is the set of tables loaded from a document.
type Catalog struct {
	tables []*Table
	byName map[string]*Table
}

// Tables returns the tables in declaration order.
func (c *Catalog) Tables() []*Table { return c.tables }

// Table looks up a table by name.
func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// NewCatalog builds a catalog from a document.
func NewCatalog(doc Document) (*Catalog, error) {
	cat := &Catalog{byName: make(map[string]*Table, len(doc.Tables))}
	for _, td := range doc.Tables {
		if td.Name == "" {
			return nil, fmt.Errorf("%w: table without a name", ErrInvalidQuery)
		}
		if _, dup := cat.byName[td.Name]; dup {
			return nil, fmt.Errorf("%w: table %q", ErrDuplicate, td.Name)
		}

		t := &Table{
			table:  sqldsl.NewTable[Row](td.Name),
			byName: make(map[string]Column, len(td.Columns)),
		}
		for _, cd := range td.Columns {
			if _, dup := t.byName[cd.Name]; dup {
				return nil, fmt.Errorf("%w: column %s.%s", ErrDuplicate, td.Name, cd.Name)
			}
			col, err := buildColumn(t.table, cd)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", td.Name, err)
			}
			t.columns = append(t.columns, col)
			t.byName[cd.Name] = col
		}

		cat.tables = append(cat.tables, t)
		cat.byName[td.Name] = t
	}
	return cat, nil
}

// Parse parses a YAML (or JSON) table document.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return NewCatalog(doc)
}

// Load reads and parses a table document from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return Parse(data)
}

// unmarshal decodes YAML keeping numbers as json.Number so integer and
// decimal literals are not rounded through float64.
func unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v, func(d *json.Decoder) *json.Decoder {
		d.UseNumber()
		return d
	})
}
