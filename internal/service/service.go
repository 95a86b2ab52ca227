package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Esubaalew/2merkato/internal/client"
	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service walks the directory tree: categories, their subcategories, the
// paginated businesses of each subcategory and each business's details.
type Service struct {
	client client.DirectoryClient
	crawl  config.CrawlConfig
	logger logrus.FieldLogger

	progress   io.Writer
	progressMu sync.Mutex
}

func NewService(
	client client.DirectoryClient,
	crawl config.CrawlConfig,
	progress io.Writer,
	logger logrus.FieldLogger,
) *Service {
	if progress == nil {
		progress = io.Discard
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if crawl.Concurrency < 1 {
		crawl.Concurrency = 1
	}

	return &Service{
		client:   client,
		crawl:    crawl,
		logger:   logger,
		progress: progress,
	}
}

// Walk builds the category tree rooted at directoryURL. A page that cannot be
// fetched is logged and contributes an empty subtree; only cancellation of ctx
// ends the walk early, in which case the partial tree is returned with
// ctx.Err().
func (s *Service) Walk(ctx context.Context, directoryURL string) ([]*domain.Category, error) {
	categories, err := s.client.GetCategories(ctx, directoryURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithField("url", directoryURL).Errorf("❌ Failed to scrape directory: %v", err)
		return []*domain.Category{}, nil
	}

	if s.crawl.MaxCategories > 0 && len(categories) > s.crawl.MaxCategories {
		s.logger.Infof("Limiting crawl to %d of %d categories", s.crawl.MaxCategories, len(categories))
		categories = categories[:s.crawl.MaxCategories]
	}

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return categories, err
		}

		s.printf("Category: %s\n", category.Name)
		if !s.crawl.FetchSubcategories {
			continue
		}
		s.walkCategory(ctx, category)
	}

	return categories, ctx.Err()
}

func (s *Service) walkCategory(ctx context.Context, category *domain.Category) {
	subcategories, err := s.client.GetSubcategories(ctx, category.URL)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WithField("url", category.URL).Errorf("❌ Failed to scrape category %q: %v", category.Name, err)
		}
		category.Subcategories = []*domain.Subcategory{}
		return
	}
	category.Subcategories = subcategories

	// Each worker fills in its own subcategory, so the tree keeps document
	// order whatever order the fetches complete in.
	var g errgroup.Group
	g.SetLimit(s.crawl.Concurrency)

	for _, subcategory := range subcategories {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s.walkSubcategory(ctx, subcategory)
			return nil
		})
	}

	// workers never return errors
	_ = g.Wait()
}

func (s *Service) walkSubcategory(ctx context.Context, subcategory *domain.Subcategory) {
	s.printf("  Subcategory: %s\n", subcategory.Name)
	if !s.crawl.FetchBusinesses {
		return
	}

	businesses, err := s.client.GetBusinesses(ctx, subcategory.URL)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WithField("url", subcategory.URL).Errorf("❌ Failed to scrape subcategory %q: %v", subcategory.Name, err)
		}
		subcategory.Businesses = []*domain.Business{}
		return
	}
	subcategory.Businesses = businesses

	if !s.crawl.FetchDetails {
		return
	}

	for _, business := range businesses {
		if ctx.Err() != nil {
			return
		}

		details, err := s.client.GetBusinessDetails(ctx, business.URL)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.WithField("url", business.URL).Errorf("❌ Failed to scrape business %q: %v", business.Name, err)
			}
			business.Details = domain.Details{}
			continue
		}
		business.Details = details
	}
}

func (s *Service) printf(format string, args ...any) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	fmt.Fprintf(s.progress, format, args...)
}
