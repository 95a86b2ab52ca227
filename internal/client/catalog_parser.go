package client

import (
	"fmt"
	"strings"

	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// listingPage is one page of a paginated subcategory listing
type listingPage struct {
	Businesses []*domain.Business
	NextURL    string // Empty on the last page
	Found      bool   // False when the listings container is missing
}

type catalogParser struct {
	baseURL   string
	selectors config.SelectorConfig
}

func newCatalogParser(baseURL string, selectors config.SelectorConfig) *catalogParser {
	return &catalogParser{
		baseURL:   strings.TrimRight(baseURL, "/"),
		selectors: selectors,
	}
}

// ParseCategories extracts category shells from the directory page. Links and
// count badges inside one block are paired by position; extra links or badges
// are dropped.
func (p *catalogParser) ParseCategories(html string) ([]*domain.Category, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0)

	doc.Find(p.selectors.CategoryBlock).Each(func(i int, block *goquery.Selection) {
		links := block.Find(p.selectors.CategoryLink)
		badges := block.Find(p.selectors.CountBadge)

		n := min(links.Length(), badges.Length())
		if links.Length() != badges.Length() {
			log.Debugf("Category block %d has %d links and %d badges, keeping %d", i, links.Length(), badges.Length(), n)
		}

		for j := 0; j < n; j++ {
			link := links.Eq(j)
			href, exists := link.Attr("href")
			if !exists {
				continue
			}

			categories = append(categories, &domain.Category{
				Name:  cleanText(link),
				URL:   p.absoluteURL(href),
				Count: domain.ParseCount(badges.Eq(j).Text()),
			})
		}
	})

	log.Debugf("Extracted %d categories", len(categories))
	return categories, nil
}

// ParseSubcategories extracts subcategory shells from a category page. A page
// without the subcategory container or list has no subcategories.
func (p *catalogParser) ParseSubcategories(html string) ([]*domain.Subcategory, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	subcategories := make([]*domain.Subcategory, 0)

	container := doc.Find(p.selectors.SubcategoryContainer).First()
	if container.Length() == 0 {
		return subcategories, nil
	}

	list := container.Find(p.selectors.SubcategoryList).First()
	if list.Length() == 0 {
		return subcategories, nil
	}

	list.Find(p.selectors.SubcategoryItem).Each(func(i int, item *goquery.Selection) {
		link := item.Find(p.selectors.CategoryLink).First()
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		subcategories = append(subcategories, &domain.Subcategory{
			Name:  cleanText(link),
			URL:   p.absoluteURL(href),
			Count: domain.ParseCount(item.Find(p.selectors.CountBadge).First().Text()),
		})
	})

	log.Debugf("Extracted %d subcategories", len(subcategories))
	return subcategories, nil
}

// ParseListingPage extracts the business shells of one listing page and the
// URL of the next page, if any.
func (p *catalogParser) ParseListingPage(html string) (*listingPage, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	page := &listingPage{
		Businesses: make([]*domain.Business, 0),
	}

	listings := doc.Find(p.selectors.Listings).First()
	if listings.Length() == 0 {
		return page, nil
	}
	page.Found = true

	listings.Find(p.selectors.ListingHeading).Each(func(i int, heading *goquery.Selection) {
		title := heading.Find(p.selectors.ListingTitle).First()
		if title.Length() == 0 {
			return
		}

		link := title.Find(p.selectors.ListingLink).First()
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		page.Businesses = append(page.Businesses, &domain.Business{
			Name: cleanText(link),
			URL:  p.absoluteURL(href),
		})
	})

	if href, exists := doc.Find(p.selectors.NextPage).First().Attr("href"); exists && strings.TrimSpace(href) != "" {
		page.NextURL = p.absoluteURL(href)
	}

	return page, nil
}

// ParseDetails reads the two-column attribute table of a business page. Rows
// with any other number of cells are skipped; a repeated key keeps the last
// value.
func (p *catalogParser) ParseDetails(html string) (domain.Details, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	details := make(domain.Details)

	table := doc.Find(p.selectors.DetailTable).First()
	if table.Length() == 0 {
		return details, nil
	}

	table.Find(p.selectors.DetailRow).Each(func(i int, row *goquery.Selection) {
		cells := row.Find(p.selectors.DetailCell)
		if cells.Length() != 2 {
			return
		}
		details[cleanText(cells.Eq(0))] = cleanText(cells.Eq(1))
	})

	return details, nil
}

// absoluteURL prefixes site-relative hrefs with the base URL.
func (p *catalogParser) absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return p.baseURL + href
	default:
		return p.baseURL + "/" + href
	}
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// cleanText returns the element text with runs of whitespace collapsed.
func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
