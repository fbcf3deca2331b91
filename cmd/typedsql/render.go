package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/typedsql/internal/cli"
	"github.com/pthm/typedsql/pkg/schema"
	"github.com/pthm/typedsql/pkg/sqldsl"
)

var (
	renderSchema  string
	renderDialect string
	renderOutput  string
	renderNoArgs  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <query.yaml>",
	Short: "Render a query document as SQL",
	Long: `Render a query document as parameterized SQL.

The query is checked against the table document first: unknown tables or
columns and literals that do not fit the column type are reported before any
SQL is produced.`,
	Example: `  # Render for the configured dialect
  typedsql render queries/light_side.yaml

  # Render for MySQL as JSON
  typedsql render queries/light_side.yaml --dialect mysql -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := sqldsl.DialectByName(resolveString(renderDialect, cfg.ResolvedDialect()))
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}

		stmt, _, err := loadStatement(resolveString(renderSchema, cfg.Schema), args[0])
		if err != nil {
			return err
		}

		q, err := sqldsl.Render(d, stmt)
		if err != nil {
			return cli.SchemaError("rendering query", err)
		}
		logger.Debug("rendered", "dialect", d.Name(), "args", len(q.Args))

		showArgs := cfg.Render.ShowArgs && !renderNoArgs
		return writeQuery(cmd.OutOrStdout(), resolveString(renderOutput, cfg.Output), d, q, showArgs)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderSchema, "schema", "", "path to the table document")
	f.StringVar(&renderDialect, "dialect", "", "postgres, mysql or sqlite (default: from config)")
	f.StringVarP(&renderOutput, "output", "o", "", "text, json or yaml")
	f.BoolVar(&renderNoArgs, "no-args", false, "omit bound arguments")
}

// loadStatement loads the table document and builds the query document
// against it.
func loadStatement(schemaPath, queryPath string) (sqldsl.Statement, schema.QueryDoc, error) {
	cat, err := schema.Load(schemaPath)
	if err != nil {
		return nil, schema.QueryDoc{}, cli.SchemaError("loading schema", err)
	}
	doc, err := schema.LoadQuery(queryPath)
	if err != nil {
		return nil, doc, cli.SchemaError("loading query", err)
	}
	stmt, err := schema.Build(cat, doc)
	if err != nil {
		return nil, doc, cli.SchemaError("checking query", err)
	}
	return stmt, doc, nil
}
