// Package main is the entry point for the dispatcher CLI.
//
// The dispatcher is a library first. This CLI replays scripted
// publish/subscribe scenarios from YAML files against a fresh dispatcher,
// which is handy for exploring delivery order and panic policies.
//
// Usage:
//
//	dispatcher run -c scenario.yaml      # Run a scenario
//	dispatcher validate -c scenario.yaml # Validate a scenario file
//	dispatcher version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "dispatcher",
	Short: "An in-process publish/subscribe dispatcher",
	Long: `Dispatcher is an in-process publish/subscribe dispatcher with
named channels and synchronous delivery.

The CLI runs scripted scenarios: subscribers are registered on channels,
then publish, subscribe, unsubscribe and destroy steps are executed in order.

Quick start:
  1. Create a scenario file (scenario.yaml)
  2. Run: dispatcher run -c scenario.yaml

Example scenario:
  logging: true
  subscribers:
    - name: audit
      channel: news
  steps:
    - op: publish
      channel: news
      data: {headline: markets up}`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this dispatcher binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dispatcher %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
