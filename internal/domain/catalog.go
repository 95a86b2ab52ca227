package domain

// Category is a top-level taxonomy node scraped from the directory page
type Category struct {
	Name          string         `json:"name"`
	URL           string         `json:"url"`   // Absolute, domain-prefixed
	Count         int            `json:"count"` // Business count declared by the badge
	Subcategories []*Subcategory `json:"subcategories,omitempty"`
}

// BusinessCount returns the number of businesses scraped under the category.
func (c *Category) BusinessCount() int {
	total := 0
	for _, sub := range c.Subcategories {
		total += len(sub.Businesses)
	}
	return total
}
