package semantic

import "github.com/PartDeskAI/partdesk-mvp/engine/catalog"

// Hit represents a single vector search match: the decoded product record
// plus its similarity score.
type Hit struct {
	ID      string          `json:"id"`
	Score   float32         `json:"score"`
	Product catalog.Product `json:"product"`
}

// ProductPoint is a single product vector to store in Qdrant.
type ProductPoint struct {
	ID        string
	Embedding []float32
	Product   catalog.Product
}

// Filter restricts a similarity search by exact payload values. Zero-value
// fields are not applied. CompatibleModel requires membership in the
// array-valued compatible_models payload field.
type Filter struct {
	Category        string
	Brand           string
	PartNumber      string
	CompatibleModel string
}

// IsZero reports whether no filter condition is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// WithoutCompatibleModel returns a copy of the filter with the
// model-membership constraint removed. Used for the relaxed fallback search.
func (f Filter) WithoutCompatibleModel() Filter {
	f.CompatibleModel = ""
	return f
}
