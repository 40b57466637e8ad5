package catalog

import (
	"regexp"
	"strings"
)

// Part numbers are vendor SKUs: uppercase alphanumerics with optional dashes.
var partNumberRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{2,}$`)

// LooksLikePartNumber reports whether s is shaped like a vendor SKU. Tool
// arguments sometimes carry a free-text description where a part number is
// expected; those must not become exact-match filters.
func LooksLikePartNumber(s string) bool {
	return partNumberRegex.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// ValidateProduct validates a catalog entry before indexing.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.PartNumber) == "" {
		return NewValidationError("partNumber", p.PartNumber, ErrMissingPartNo)
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", p.Name, ErrInvalidProduct)
	}
	if !ValidCategories[p.Category] {
		return NewValidationError("category", p.Category, ErrInvalidCategory)
	}
	if p.Discount > 0 && p.Price >= p.OriginalPrice {
		return NewValidationError("price", p.PartNumber, ErrPriceDiscount)
	}
	if p.InStock && p.StockCount < 0 {
		return NewValidationError("stockCount", p.PartNumber, ErrNegativeStock)
	}
	return nil
}

// ValidateSearchArgs validates search arguments before they reach the
// retrieval engine. Query is required because it drives the embedding.
func ValidateSearchArgs(a SearchArgs) error {
	if strings.TrimSpace(a.Query) == "" && a.PartNumber == "" {
		return NewValidationError("query", a.Query, ErrEmptyQuery)
	}
	if a.Limit < 0 {
		return NewValidationError("limit", "", ErrInvalidLimit)
	}
	if a.Category != "" && !ValidCategories[strings.ToLower(a.Category)] {
		return NewValidationError("category", a.Category, ErrInvalidCategory)
	}
	return nil
}
