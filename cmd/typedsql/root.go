package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/typedsql/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     = slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "typedsql",
	Short: "Type-checked SQL from query documents",
	Long: `typedsql - type-checked SQL query builder

typedsql loads a table document describing typed columns, checks query
documents against it and renders them as parameterized SQL for PostgreSQL,
MySQL or SQLite.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose, quiet)
		slog.SetDefault(logger)

		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		logger.Debug("configuration loaded", "path", configPath)

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupQuery   = "query"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover typedsql.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupQuery, Title: "Query:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupQuery
	runCmd.GroupID = groupQuery
	tablesCmd.GroupID = groupQuery
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tablesCmd)

	doctorCmd.GroupID = groupUtility
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// newLogger builds the stderr logger: warn by default, info with -v, debug
// with -vv, error only with --quiet.
func newLogger(verbosity int, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
