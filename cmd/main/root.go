package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	csvPath     string
	xlsxPath    string
	summaryPath string
	verbose     bool
}

// NewRootCmd creates the merkato command. Without arguments it crawls the
// configured directory and writes output.csv and output.xlsx.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "merkato",
		Short: "Scrape the 2merkato business directory into CSV and XLSX",
		Long: `merkato walks the 2merkato business directory (categories, subcategories,
businesses and their detail pages) and writes one row per business to a CSV
file, then converts it to an Excel spreadsheet.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file (default ./config.yaml if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVarP(&opts.csvPath, "output", "o", "", "CSV output path (overrides export.csv_path)")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "Spreadsheet output path (overrides export.xlsx_path)")
	cmd.Flags().StringVar(&opts.summaryPath, "summary", "", "Write a Markdown crawl summary to this path")

	cmd.AddCommand(NewConvertCmd())

	return cmd
}

func runCrawl(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Export.CSVPath = opts.csvPath
	}
	if flags.Changed("xlsx") {
		cfg.Export.XLSXPath = opts.xlsxPath
	}
	if flags.Changed("summary") {
		cfg.Export.SummaryPath = opts.summaryPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := container.New(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	return app.Run(ctx)
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := configureLogging(cfg.Log, opts.verbose); err != nil {
		return nil, err
	}
	log.Debug("Configuration loaded successfully")

	return cfg, nil
}

func configureLogging(cfg config.LogConfig, verbose bool) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q: expected text or json", cfg.Format)
	}
	return nil
}
