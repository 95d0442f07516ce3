package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"optward-hq/callisto/pkg/analysis"
	"optward-hq/callisto/pkg/analysis/export"
	"optward-hq/callisto/pkg/analysis/storage"
	"optward-hq/callisto/pkg/analysis/watch"
	"optward-hq/callisto/pkg/cli"
	"optward-hq/callisto/pkg/config"
)

var exportFlags struct {
	format string
	broker string
	output string
	store  string
	pretty bool
	watch  bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export form-analysis records",
	Long: `Export form-analysis records from the submissions database.

Formats:
  full        Full-fidelity JSON dump of every field (default)
  csv         All columns with stored-value fidelity
  markdown    Summary table: broker, URL, CAPTCHA, multi-step, working, date
  automation  Automation-ready config map, known-working profiles only
  stats       Aggregate coverage statistics

Examples:
  # Dump everything, pretty-printed
  callisto export --pretty

  # Automation config for the submission executor
  callisto export --format automation --output configs.json

  # A single broker
  callisto export --broker spokeo --format markdown

  # Keep configs.json current while the analyzer runs
  callisto export --format automation --output configs.json --watch`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.format, "format", "", "output format: full, csv, markdown, automation, stats (default: full)")
	exportCmd.Flags().StringVar(&exportFlags.broker, "broker", "", "export a specific broker only")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFlags.store, "store", "", "submissions database path (overrides config)")
	exportCmd.Flags().BoolVar(&exportFlags.pretty, "pretty", false, "pretty-print JSON output (full format only)")
	exportCmd.Flags().BoolVar(&exportFlags.watch, "watch", false, "re-export whenever the database changes")
}

// exportOptions is the resolved export request: flags merged with config
// defaults.
type exportOptions struct {
	format    string
	broker    string
	output    string
	storePath string
	pretty    bool
	watch     bool
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	opts := exportOptions{
		format:    exportFlags.format,
		broker:    exportFlags.broker,
		output:    exportFlags.output,
		storePath: exportFlags.store,
		pretty:    exportFlags.pretty,
		watch:     exportFlags.watch,
	}
	if opts.format == "" {
		opts.format = cfg.Export.Format
	}
	if opts.storePath == "" {
		opts.storePath = cfg.Store.Path
	}
	if !cmd.Flags().Changed("pretty") {
		opts.pretty = cfg.Export.Pretty
	}

	if !validFormat(opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)",
			opts.format, strings.Join(config.Formats, ", "))
	}

	if opts.watch {
		return runExportWatch(opts, cfg)
	}
	return exportOnce(opts, cfg)
}

// exportOnce performs a single fetch-render-write cycle.
func exportOnce(opts exportOptions, cfg *config.Config) error {
	store, err := storage.Open(&storage.Config{
		Path:        opts.storePath,
		BusyTimeout: cfg.Store.BusyTimeout,
	})
	if err != nil {
		// Store-level failures carry their own exit codes.
		return err
	}
	defer store.Close()

	query := &analysis.Query{BrokerID: opts.broker}
	if opts.format == "automation" {
		// The automation renderer expects pre-filtered input; the filter
		// belongs in the query, not in the renderer.
		query.KnownWorkingOnly = true
	}

	ctx := context.Background()
	profiles, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	// The stats report writes directly to the output stream.
	if opts.format == "stats" {
		w, closeFn, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.NewStatsReporter().Report(profiles, w)
	}

	// Everything else renders fully in memory first, so a failed render
	// never leaves a truncated output file behind.
	var buf bytes.Buffer
	if err := render(ctx, opts, profiles, &buf); err != nil {
		return cli.NewCommandError("export", err)
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", opts.output)
	return nil
}

// render dispatches to the renderer for the requested format.
func render(ctx context.Context, opts exportOptions, profiles []*analysis.FormProfile, w io.Writer) error {
	switch opts.format {
	case "full":
		return export.NewFullExporter(opts.pretty).Export(ctx, profiles, w)
	case "csv":
		return export.NewCSVExporter(true).Export(ctx, profiles, w)
	case "markdown":
		return export.NewMarkdownExporter().Export(ctx, profiles, w)
	case "automation":
		return export.NewAutomationExporter().Export(ctx, profiles, w)
	default:
		return fmt.Errorf("unsupported format: %s", opts.format)
	}
}

// openOutput opens the output destination: the named file, or stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// runExportWatch performs an initial export and then repeats it after
// every debounced change to the store file, until interrupted.
func runExportWatch(opts exportOptions, cfg *config.Config) error {
	if err := exportOnce(opts, cfg); err != nil {
		return err
	}

	watcher, err := watch.New(&watch.Config{
		Path:             opts.storePath,
		DebounceInterval: cfg.Watch.Debounce,
	}, nil)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer watcher.Close()

	ctx := cli.SetupSignalHandler()
	return watcher.Watch(ctx, func() error {
		return exportOnce(opts, cfg)
	})
}

// validFormat reports whether format is a supported export format.
func validFormat(format string) bool {
	for _, f := range config.Formats {
		if f == format {
			return true
		}
	}
	return false
}
