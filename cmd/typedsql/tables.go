package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/typedsql/internal/cli"
	"github.com/pthm/typedsql/pkg/schema"
)

var (
	tablesSchema string
	tablesOutput string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables and columns of the table document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := schema.Load(resolveString(tablesSchema, cfg.Schema))
		if err != nil {
			return cli.SchemaError("loading schema", err)
		}
		return writeTables(cmd.OutOrStdout(), resolveString(tablesOutput, cfg.Output), cat)
	},
}

func init() {
	f := tablesCmd.Flags()
	f.StringVar(&tablesSchema, "schema", "", "path to the table document")
	f.StringVarP(&tablesOutput, "output", "o", "", "text, json or yaml")
}
