package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/typedsql/internal/cli"
	"github.com/pthm/typedsql/internal/doctor"
	"github.com/pthm/typedsql/pkg/runner"
)

var (
	doctorDB      string
	doctorDriver  string
	doctorSchema  string
	doctorVerbose bool
	doctorOffline bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long:  `Check that the table document loads and that every declared table and column exists in the database.`,
	Example: `  # Run health checks against the configured database
  typedsql doctor

  # Only validate the table document
  typedsql doctor --offline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var r *runner.Runner
		if !doctorOffline {
			rr, db, err := connect(ctx, doctorDriver, doctorDB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			r = rr
		}

		if !quiet {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "typedsql doctor - Health Check")
		}

		d := doctor.New(r, resolveString(doctorSchema, cfg.Schema))
		report, err := d.Run(ctx)
		if err != nil {
			return cli.GeneralError("running doctor", err)
		}

		report.Print(cmd.OutOrStdout(), doctorVerbose)

		if report.HasErrors() {
			return cli.GeneralError("health checks failed", nil)
		}
		return nil
	},
}

func init() {
	f := doctorCmd.Flags()
	f.StringVar(&doctorDB, "db", "", "database URL or SQLite file (default: from config)")
	f.StringVar(&doctorDriver, "driver", "", "postgres, pgx or sqlite3 (default: from config)")
	f.StringVar(&doctorSchema, "schema", "", "path to the table document")
	f.BoolVar(&doctorVerbose, "details", false, "show detailed output")
	f.BoolVar(&doctorOffline, "offline", false, "skip database checks")
}
