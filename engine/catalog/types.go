// Package catalog defines core domain types, constants, and validation for the
// PartDesk pipeline. It acts as the validation gate at pipeline entry points.
package catalog

// Product categories supported by the assistant.
const (
	CategoryRefrigerator = "refrigerator"
	CategoryDishwasher   = "dishwasher"
)

// ValidCategories is the set of supported product categories.
var ValidCategories = map[string]bool{
	CategoryRefrigerator: true,
	CategoryDishwasher:   true,
}

// DefaultSearchLimit caps semantic search results when the caller does not
// specify a limit.
const DefaultSearchLimit = 3

// Product is an immutable catalog entry. Records are created at index-build
// time and never mutated by the pipeline.
type Product struct {
	ID                  string            `json:"id"`
	PartNumber          string            `json:"partNumber"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Price               float64           `json:"price"`
	OriginalPrice       float64           `json:"originalPrice"`
	Discount            int               `json:"discount"`
	Category            string            `json:"category"`
	Subcategory         string            `json:"subcategory"`
	Brand               string            `json:"brand"`
	ImageURL            string            `json:"imageUrl,omitempty"`
	InStock             bool              `json:"inStock"`
	StockCount          int               `json:"stockCount"`
	Rating              float64           `json:"rating,omitempty"`
	ReviewCount         int               `json:"reviewCount,omitempty"`
	CompatibleModels    []string          `json:"compatibleModels"`
	DeliveryEstimate    string            `json:"deliveryEstimate,omitempty"`
	Specifications      map[string]string `json:"specifications,omitempty"`
	InstallationSteps   []string          `json:"installationSteps,omitempty"`
	TroubleshootingTips []string          `json:"troubleshootingTips,omitempty"`
}

// SearchArgs is the ephemeral argument set for one product search call.
// Query drives the semantic search; the remaining fields are exact-match
// filters applied at the index.
type SearchArgs struct {
	Query       string `json:"query"`
	PartNumber  string `json:"partNumber,omitempty"`
	ModelNumber string `json:"modelNumber,omitempty"`
	Category    string `json:"category,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// EffectiveLimit returns the result cap for this search.
func (a SearchArgs) EffectiveLimit() int {
	if a.Limit > 0 {
		return a.Limit
	}
	return DefaultSearchLimit
}

// Retrieved is a Product plus per-search ranking state. Score is only
// meaningful within the search call that produced it. ModelCompatUnknown is
// set when the model-compatibility filter was relaxed to produce a non-empty
// result set; it is mutually exclusive with an affirmative CompatibleModels
// match for the same result.
type Retrieved struct {
	Product
	Score              float32 `json:"score,omitempty"`
	ModelCompatUnknown bool    `json:"modelCompatibilityUnknown,omitempty"`
}
