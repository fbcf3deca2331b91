package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var configShowSource bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  `Show the effective configuration after merging defaults, config file, and environment variables. Passwords are masked.`,
	Example: `  # Show effective configuration
  typedsql config show

  # Show configuration with source file path
  typedsql config show --source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if configShowSource {
			if configPath != "" {
				_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)
			} else {
				_, _ = fmt.Fprintln(out, "Config file: (none, using defaults)")
				_, _ = fmt.Fprintln(out)
			}
		}

		data, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSource, "source", false, "show config file source")
	configCmd.AddCommand(configShowCmd)
}
