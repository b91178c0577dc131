package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jpalmerr/dispatcher"
	"github.com/jpalmerr/dispatcher/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newLogger creates a logger for CLI use from the configured level and format.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// runCmd replays a scenario file against a fresh dispatcher.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario",
	Long: `Run a dispatcher scenario.

The command will:
  - Load variables from --env-file, if given
  - Load the scenario from the specified YAML file
  - Register every declared subscriber on its channel
  - Execute the steps in order, printing each delivery
  - Print how many deliveries each subscriber received

With panic_policy: propagate a subscriber with action: fail aborts the
publish and the run exits with an error. With panic_policy: recover the
panic is logged and the run continues.

Example:
  dispatcher run -c scenario.yaml
  dispatcher run -c scenario.yaml --env-file .env`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	runCmd.Flags().String("env-file", "", "path to a .env file loaded before the config")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	logger.Info("config loaded",
		"subscribers", len(cfg.Subscribers),
		"steps", len(cfg.Steps),
	)

	opts, err := config.BuildOptions(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}

	d, err := dispatcher.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	sc := newScenario(d, cfg, cmd.OutOrStdout(), logger)
	runErr := sc.run()
	sc.summary()
	return runErr
}
