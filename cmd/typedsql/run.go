package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/typedsql/internal/cli"
	"github.com/pthm/typedsql/pkg/runner"
	"github.com/pthm/typedsql/pkg/schema"
)

var (
	runDB     string
	runDriver string
	runSchema string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run <query.yaml>",
	Short: "Execute a query document",
	Long: `Execute a query document against the configured database.

Selects and statements with a returning list print their rows; other
statements print the number of affected rows. The dialect always follows
the driver.`,
	Example: `  # Run against the configured database
  typedsql run queries/light_side.yaml

  # Run against a local SQLite file
  typedsql run queries/light_side.yaml --driver sqlite3 --db jedi.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmt, doc, err := loadStatement(resolveString(runSchema, cfg.Schema), args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		r, db, err := connect(ctx, runDriver, runDB)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		out := cmd.OutOrStdout()
		if doc.Kind == schema.KindSelect || len(doc.Returning) > 0 {
			rows, err := r.QueryMaps(ctx, stmt)
			if err != nil {
				return cli.GeneralError("running query", err)
			}
			return writeRows(out, resolveString(runOutput, cfg.Output), rows)
		}

		res, err := r.Exec(ctx, stmt)
		if err != nil {
			return cli.GeneralError("running statement", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return cli.GeneralError("reading affected rows", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(out, "%d rows affected\n", n)
		}
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runDB, "db", "", "database URL or SQLite file (default: from config)")
	f.StringVar(&runDriver, "driver", "", "postgres, pgx or sqlite3 (default: from config)")
	f.StringVar(&runSchema, "schema", "", "path to the table document")
	f.StringVarP(&runOutput, "output", "o", "", "text, json or yaml")
}

// connect opens the database named by flags or config.
func connect(ctx context.Context, driverFlag, dbFlag string) (*runner.Runner, *sql.DB, error) {
	driver := resolveString(driverFlag, cfg.Database.Driver)

	dsn := dbFlag
	if dsn == "" {
		var err error
		if dsn, err = cfg.DSN(); err != nil {
			return nil, nil, cli.ConfigError("resolving database", err)
		}
	}

	r, db, err := runner.Connect(ctx, driver, dsn, runner.WithLogger(logger))
	if err != nil {
		return nil, nil, cli.DBConnectError("connecting to database", err)
	}
	logger.Info("connected", "driver", driver, "dialect", r.Dialect().Name())
	return r, db, nil
}
