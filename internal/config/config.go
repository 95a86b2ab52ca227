package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Site      SiteConfig     `mapstructure:"site"`
	Selectors SelectorConfig `mapstructure:"selectors"`
	Crawl     CrawlConfig    `mapstructure:"crawl"`
	Export    ExportConfig   `mapstructure:"export"`
	Log       LogConfig      `mapstructure:"log"`
}

// SiteConfig holds the target site and HTTP transport settings
type SiteConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	DirectoryURL         string   `mapstructure:"directory_url"`
	UserAgent            string   `mapstructure:"user_agent"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	Proxies              []string `mapstructure:"proxies"`
}

// SelectorConfig is the structural selector set used by the extractors
type SelectorConfig struct {
	CategoryBlock string `mapstructure:"category_block"`
	CategoryLink  string `mapstructure:"category_link"`
	CountBadge    string `mapstructure:"count_badge"`

	SubcategoryContainer string `mapstructure:"subcategory_container"`
	SubcategoryList      string `mapstructure:"subcategory_list"`
	SubcategoryItem      string `mapstructure:"subcategory_item"`

	Listings       string `mapstructure:"listings"`
	ListingHeading string `mapstructure:"listing_heading"`
	ListingTitle   string `mapstructure:"listing_title"`
	ListingLink    string `mapstructure:"listing_link"`
	NextPage       string `mapstructure:"next_page"`

	DetailTable string `mapstructure:"detail_table"`
	DetailRow   string `mapstructure:"detail_row"`
	DetailCell  string `mapstructure:"detail_cell"`
}

// CrawlConfig controls how deep the walker descends
type CrawlConfig struct {
	FetchSubcategories bool `mapstructure:"fetch_subcategories"`
	FetchBusinesses    bool `mapstructure:"fetch_businesses"`
	FetchDetails       bool `mapstructure:"fetch_details"`
	MaxPages           int  `mapstructure:"max_pages"`
	MaxCategories      int  `mapstructure:"max_categories"`
	Concurrency        int  `mapstructure:"concurrency"`
}

// ExportConfig holds output file locations. Empty XLSXPath or SummaryPath
// disables that output.
type ExportConfig struct {
	CSVPath     string `mapstructure:"csv_path"`
	XLSXPath    string `mapstructure:"xlsx_path"`
	SummaryPath string `mapstructure:"summary_path"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path looks for config.yaml in the current directory and falls back
// to defaults when it is absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("merkato")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.base_url", "https://www.2merkato.com")
	v.SetDefault("site.directory_url", "https://www.2merkato.com/directory/")
	v.SetDefault("site.user_agent", "Mozilla/5.0")
	v.SetDefault("site.timeout", 30)
	v.SetDefault("site.max_retries", 0)
	v.SetDefault("site.max_requests_per_second", 0)
	v.SetDefault("site.proxies", []string{})

	v.SetDefault("selectors.category_block", "div.row-fluid.mtree_category")
	v.SetDefault("selectors.category_link", "a")
	v.SetDefault("selectors.count_badge", "span.count")
	v.SetDefault("selectors.subcategory_container", "div.row-fluid.mtree_sub_category")
	v.SetDefault("selectors.subcategory_list", "ul.pad10")
	v.SetDefault("selectors.subcategory_item", "li")
	v.SetDefault("selectors.listings", "div#listings")
	v.SetDefault("selectors.listing_heading", "div.span12.heading")
	v.SetDefault("selectors.listing_title", "h4")
	v.SetDefault("selectors.listing_link", "a")
	v.SetDefault("selectors.next_page", "a[title='Next']")
	v.SetDefault("selectors.detail_table", "table.table-condensed")
	v.SetDefault("selectors.detail_row", "tr")
	v.SetDefault("selectors.detail_cell", "td")

	v.SetDefault("crawl.fetch_subcategories", true)
	v.SetDefault("crawl.fetch_businesses", true)
	v.SetDefault("crawl.fetch_details", true)
	v.SetDefault("crawl.max_pages", 500)
	v.SetDefault("crawl.max_categories", 0)
	v.SetDefault("crawl.concurrency", 1)

	v.SetDefault("export.csv_path", "output.csv")
	v.SetDefault("export.xlsx_path", "output.xlsx")
	v.SetDefault("export.summary_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
