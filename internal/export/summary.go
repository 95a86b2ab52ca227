package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Esubaalew/2merkato/internal/domain"

	"github.com/nao1215/markdown"
)

// WriteSummary renders a Markdown report comparing the business counts the
// site declares with the businesses actually scraped.
func WriteSummary(w io.Writer, categories []*domain.Category) error {
	md := markdown.NewMarkdown(w)

	md.H1("2merkato Directory Summary")
	md.PlainText("")

	declared, scraped, subcategories := 0, 0, 0
	for _, category := range categories {
		declared += category.Count
		scraped += category.BusinessCount()
		subcategories += len(category.Subcategories)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Categories", strconv.Itoa(len(categories))},
			{"Subcategories", strconv.Itoa(subcategories)},
			{"Declared Businesses", strconv.Itoa(declared)},
			{"Scraped Businesses", strconv.Itoa(scraped)},
		},
	})
	md.PlainText("")

	for _, category := range categories {
		md.H2(fmt.Sprintf("%s (%d)", category.Name, category.Count))
		md.PlainText("")

		if len(category.Subcategories) == 0 {
			md.PlainText("No subcategories scraped.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(category.Subcategories))
		for _, sub := range category.Subcategories {
			rows = append(rows, []string{
				sub.Name,
				strconv.Itoa(sub.Count),
				strconv.Itoa(len(sub.Businesses)),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Subcategory", "Declared", "Scraped"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

// WriteSummaryFile writes the summary report to path.
func WriteSummaryFile(path string, categories []*domain.Category) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	if err := WriteSummary(f, categories); err != nil {
		f.Close()
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close summary file: %w", err)
	}
	return nil
}
