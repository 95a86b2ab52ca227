package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	ErrEmptyDirectoryURL  = errors.New("invalid config: site.directory_url is empty")
	ErrInvalidTimeout     = errors.New("invalid config: site.timeout must be positive")
	ErrInvalidMaxPages    = errors.New("invalid config: crawl.max_pages must be positive")
	ErrInvalidConcurrency = errors.New("invalid config: crawl.concurrency must be at least 1")
	ErrEmptyOutputPath    = errors.New("invalid config: export.csv_path is empty")
)

// Validate checks the values that would otherwise fail deep inside a crawl.
func (c *Config) Validate() error {
	switch {
	case c.Site.DirectoryURL == "":
		return ErrEmptyDirectoryURL
	case c.Site.Timeout <= 0:
		return ErrInvalidTimeout
	case c.Crawl.MaxPages <= 0:
		return ErrInvalidMaxPages
	case c.Crawl.Concurrency < 1:
		return ErrInvalidConcurrency
	case c.Export.CSVPath == "":
		return ErrEmptyOutputPath
	}
	return nil
}
