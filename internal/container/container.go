package container

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Esubaalew/2merkato/internal/client"
	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/export"
	"github.com/Esubaalew/2merkato/internal/proxy"
	"github.com/Esubaalew/2merkato/internal/service"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.DirectoryClient
	Service *service.Service

	runID    string
	logger   *log.Entry
	progress io.Writer
}

// New creates a new container with all dependencies initialized. Progress
// lines are written to progress, or stdout when it is nil.
func New(ctx context.Context, cfg *config.Config, progress io.Writer) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = os.Stdout
	}

	runID := uuid.NewString()
	logger := log.WithField("run_id", runID)

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Site.Proxies, cfg.Site.DirectoryURL, cfg.Site.UserAgent)
	fetcher := client.NewFetcher(cfg.Site, proxySupplier)
	directoryClient := client.NewDirectoryClient(cfg, fetcher)

	return &Container{
		Config:   cfg,
		Client:   directoryClient,
		Service:  service.NewService(directoryClient, cfg.Crawl, progress, logger),
		runID:    runID,
		logger:   logger,
		progress: progress,
	}, nil
}

// RunID identifies this crawl in the logs
func (c *Container) RunID() string {
	return c.runID
}

// Run crawls the directory and writes every configured export
func (c *Container) Run(ctx context.Context) error {
	c.logger.Infof("🚀 Crawling %s", c.Config.Site.DirectoryURL)

	categories, err := c.Service.Walk(ctx, c.Config.Site.DirectoryURL)
	if err != nil {
		return fmt.Errorf("crawl interrupted: %w", err)
	}

	records := export.Flatten(categories)

	csvPath := c.Config.Export.CSVPath
	if err := export.WriteCSVFile(csvPath, records); err != nil {
		return err
	}
	fmt.Fprintf(c.progress, "CSV file '%s' created successfully.\n", csvPath)

	if xlsxPath := c.Config.Export.XLSXPath; xlsxPath != "" {
		rows, err := export.ConvertCSVToXLSX(csvPath, xlsxPath)
		if err != nil {
			return err
		}
		c.logger.Debugf("Wrote %d spreadsheet rows", rows)
		fmt.Fprintf(c.progress, "Excel file '%s' created successfully.\n", xlsxPath)
	}

	if summaryPath := c.Config.Export.SummaryPath; summaryPath != "" {
		if err := export.WriteSummaryFile(summaryPath, categories); err != nil {
			return err
		}
		c.logger.Infof("Summary written to %s", summaryPath)
	}

	c.logger.Infof("✅ Completed crawl: %d categories, %d businesses", len(categories), len(records))
	return nil
}
