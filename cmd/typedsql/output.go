package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/pthm/typedsql/internal/cli"
	"github.com/pthm/typedsql/pkg/runner"
	"github.com/pthm/typedsql/pkg/schema"
	"github.com/pthm/typedsql/pkg/sqldsl"
)

// renderedQuery is the json/yaml shape of a rendered statement.
type renderedQuery struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Args    []any  `json:"args,omitempty"`
}

// tableInfo is the json/yaml shape of a catalog table.
type tableInfo struct {
	Name    string             `json:"name"`
	Columns []schema.ColumnDef `json:"columns"`
}

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case cli.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case cli.OutputYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeQuery(w io.Writer, format string, d sqldsl.Dialect, q sqldsl.Query, showArgs bool) error {
	if format != cli.OutputText {
		out := renderedQuery{Dialect: d.Name(), SQL: q.SQL}
		if showArgs {
			out.Args = q.Args
		}
		return writeStructured(w, format, out)
	}

	if _, err := fmt.Fprintln(w, q.SQL); err != nil {
		return err
	}
	if showArgs && len(q.Args) > 0 {
		_, err := fmt.Fprintf(w, "-- args: %v\n", q.Args)
		return err
	}
	return nil
}

func writeRows(w io.Writer, format string, rows []runner.Row) error {
	if format != cli.OutputText {
		out := make([]map[string]any, len(rows))
		for i, r := range rows {
			out[i] = r.Map()
		}
		return writeStructured(w, format, out)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range rows[0].Columns {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, c)
	}
	_, _ = fmt.Fprintln(tw)
	for _, r := range rows {
		for i, v := range r.Values {
			if i > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			if v == nil {
				v = "NULL"
			}
			_, _ = fmt.Fprint(tw, v)
		}
		_, _ = fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return err
}

func writeTables(w io.Writer, format string, cat *schema.Catalog) error {
	infos := make([]tableInfo, 0, len(cat.Tables()))
	for _, t := range cat.Tables() {
		info := tableInfo{Name: t.Name()}
		for _, c := range t.Columns() {
			info.Columns = append(info.Columns, schema.ColumnDef{Name: c.Name(), Type: c.Type(), Nullable: c.Nullable()})
		}
		infos = append(infos, info)
	}

	if format != cli.OutputText {
		return writeStructured(w, format, infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, info := range infos {
		_, _ = fmt.Fprintln(tw, info.Name)
		for _, c := range info.Columns {
			null := ""
			if c.Nullable {
				null = "null"
			}
			_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, c.Type, null)
		}
	}
	return tw.Flush()
}
