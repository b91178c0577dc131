package main

import (
	"fmt"

	"github.com/jpalmerr/dispatcher/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a scenario file without running it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Long: `Validate a dispatcher scenario file without running it.

This command parses the YAML, applies DISPATCHER_* environment overrides,
expands environment variables, and validates all fields.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  dispatcher validate -c scenario.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Logging:      %t\n", cfg.Logging)
	fmt.Fprintf(out, "  Identity:     %s\n", cfg.Identity)
	fmt.Fprintf(out, "  Panic policy: %s\n", cfg.PanicPolicy)
	fmt.Fprintf(out, "  Subscribers:  %d\n", len(cfg.Subscribers))
	fmt.Fprintf(out, "  Steps:        %d\n", len(cfg.Steps))

	return nil
}
