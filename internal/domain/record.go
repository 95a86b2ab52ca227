package domain

// RecordHeader is the fixed column order of the tabular export
var RecordHeader = []string{"Business Name", "Subcategory", "Category", "Details"}

// Record is one flattened export row
type Record struct {
	BusinessName string `json:"business_name"`
	Subcategory  string `json:"subcategory"`
	Category     string `json:"category"`
	Details      string `json:"details"`
}

// Values returns the record cells in RecordHeader order.
func (r Record) Values() []string {
	return []string{r.BusinessName, r.Subcategory, r.Category, r.Details}
}
