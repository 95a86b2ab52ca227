package export

import "github.com/Esubaalew/2merkato/internal/domain"

// Flatten walks the tree depth-first and emits one record per business, in
// document order. Subcategories without businesses emit nothing.
func Flatten(categories []*domain.Category) []domain.Record {
	records := make([]domain.Record, 0)

	for _, category := range categories {
		for _, subcategory := range category.Subcategories {
			for _, business := range subcategory.Businesses {
				records = append(records, domain.Record{
					BusinessName: business.Name,
					Subcategory:  subcategory.Name,
					Category:     category.Name,
					Details:      business.Details.String(),
				})
			}
		}
	}

	return records
}
