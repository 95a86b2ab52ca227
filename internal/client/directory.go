package client

import (
	"context"
	"fmt"

	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/domain"

	log "github.com/sirupsen/logrus"
)

// DirectoryClient fetches and extracts each level of the business directory
type DirectoryClient interface {
	GetCategories(ctx context.Context, directoryURL string) ([]*domain.Category, error)
	GetSubcategories(ctx context.Context, categoryURL string) ([]*domain.Subcategory, error)
	GetBusinesses(ctx context.Context, subcategoryURL string) ([]*domain.Business, error)
	GetBusinessDetails(ctx context.Context, businessURL string) (domain.Details, error)
}

type directoryClient struct {
	fetcher  Fetcher
	parser   *catalogParser
	maxPages int
}

func NewDirectoryClient(cfg *config.Config, fetcher Fetcher) DirectoryClient {
	return &directoryClient{
		fetcher:  fetcher,
		parser:   newCatalogParser(cfg.Site.BaseURL, cfg.Selectors),
		maxPages: cfg.Crawl.MaxPages,
	}
}

func (c *directoryClient) GetCategories(ctx context.Context, directoryURL string) ([]*domain.Category, error) {
	html, err := c.fetcher.Fetch(ctx, directoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory page: %w", err)
	}

	categories, err := c.parser.ParseCategories(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory page: %w", err)
	}

	return categories, nil
}

func (c *directoryClient) GetSubcategories(ctx context.Context, categoryURL string) ([]*domain.Subcategory, error) {
	html, err := c.fetcher.Fetch(ctx, categoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category page: %w", err)
	}

	subcategories, err := c.parser.ParseSubcategories(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category page: %w", err)
	}

	return subcategories, nil
}

// GetBusinesses follows the "next page" links of a subcategory listing and
// returns the businesses of every page in page-then-document order. It stops
// at the last page, at a page without listings, at an already visited URL or
// after maxPages pages.
func (c *directoryClient) GetBusinesses(ctx context.Context, subcategoryURL string) ([]*domain.Business, error) {
	businesses := make([]*domain.Business, 0)
	visited := make(map[string]bool)

	pageURL := subcategoryURL
	for pageURL != "" {
		if visited[pageURL] {
			log.Warnf("⚠️ Pagination loops back to %s, stopping", pageURL)
			break
		}
		if len(visited) >= c.maxPages {
			log.Warnf("⚠️ Reached page limit of %d for %s, stopping", c.maxPages, subcategoryURL)
			break
		}
		visited[pageURL] = true

		html, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch listing page: %w", err)
		}

		page, err := c.parser.ParseListingPage(html)
		if err != nil {
			return nil, fmt.Errorf("failed to parse listing page: %w", err)
		}
		if !page.Found {
			break
		}

		businesses = append(businesses, page.Businesses...)
		log.Debugf("Listing page %s: %d businesses", pageURL, len(page.Businesses))

		pageURL = page.NextURL
	}

	return businesses, nil
}

func (c *directoryClient) GetBusinessDetails(ctx context.Context, businessURL string) (domain.Details, error) {
	html, err := c.fetcher.Fetch(ctx, businessURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business page: %w", err)
	}

	details, err := c.parser.ParseDetails(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse business page: %w", err)
	}

	return details, nil
}
