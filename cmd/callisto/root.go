package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"optward-hq/callisto/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - broker form-analysis exporter",
	Long: `Callisto reads broker form-analysis records from the submissions
database and renders them for downstream consumers:

  - Full-fidelity JSON dumps for inspection and archival
  - Automation-ready configuration for the form-submission executor
  - CSV and Markdown summaries for human review
  - Aggregate coverage statistics

The database is produced by the upstream page analyzer and is strictly
read-only input to this tool.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

// Execute runs the root command. Domain errors carry their own exit
// codes (2: store file missing, 3: form_analysis table missing).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
