package domain

// Subcategory is the second taxonomy level, listed on a category page
type Subcategory struct {
	Name       string      `json:"name"`
	URL        string      `json:"url"`   // First listing page
	Count      int         `json:"count"` // Business count declared by the badge
	Businesses []*Business `json:"businesses,omitempty"`
}
