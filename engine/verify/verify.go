// Package verify grounds generated answers in retrieved product data.
// When an answer describes a mentioned part as the wrong kind of
// component, the whole answer is replaced with a factual summary built
// from the product record.
package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

// DefaultVocabulary lists the component types the verifier can detect
// in answer text.
func DefaultVocabulary() []string {
	return []string{
		"water filter", "ice maker", "drawer", "fan", "motor",
		"thermostat", "valve", "pump", "door", "seal", "gasket",
		"light", "bulb", "dispenser", "shelf", "element",
	}
}

// Verifier checks answers against product records using a component
// type vocabulary.
type Verifier struct {
	vocabulary []string
}

// New creates a verifier. An empty vocabulary takes the default.
func New(vocabulary []string) *Verifier {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary()
	}
	return &Verifier{vocabulary: vocabulary}
}

// Verify returns content unchanged when every mentioned part is
// described consistently with its product record. On the first
// mismatch it returns a corrected summary for that product instead.
// Empty content or an empty product list passes through untouched.
func (v *Verifier) Verify(content string, products []catalog.Retrieved) string {
	if len(products) == 0 || strings.TrimSpace(content) == "" {
		return content
	}

	for _, product := range products {
		partRegexp := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(product.PartNumber) + `\b`)
		if !partRegexp.MatchString(content) {
			continue
		}

		nameLower := strings.ToLower(product.Name)
		subLower := strings.ToLower(product.Subcategory)

		for _, typ := range v.vocabulary {
			if strings.Contains(nameLower, typ) || (subLower != "" && strings.Contains(subLower, typ)) {
				continue
			}
			// Mismatch counts only when the wrong type appears in the
			// same sentence as the part number.
			typeRegexp := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(product.PartNumber) + `[^.]*?\b` + regexp.QuoteMeta(typ) + `\b`)
			if typeRegexp.MatchString(content) {
				return correctedSummary(product)
			}
		}
	}
	return content
}

func correctedSummary(product catalog.Retrieved) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I found information about part number %s:\n\n", product.PartNumber)

	fmt.Fprintf(&b, "This is a %s %s for %ss", product.Brand, product.Name, product.Category)
	if product.Subcategory != "" {
		fmt.Fprintf(&b, " (%s)", product.Subcategory)
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Price: $%.2f\n", product.Price)
	if product.InStock {
		fmt.Fprintf(&b, "✅ This part is currently in stock (%d available).\n", product.StockCount)
	} else {
		b.WriteString("❌ This part is currently out of stock.\n")
	}

	fmt.Fprintf(&b, "\n%s\n", product.Description)

	if len(product.CompatibleModels) > 0 {
		shown := product.CompatibleModels
		more := ""
		if len(shown) > 3 {
			shown = shown[:3]
			more = " and more"
		}
		fmt.Fprintf(&b, "\nThis part is compatible with models: %s%s\n", strings.Join(shown, ", "), more)
	}

	b.WriteString("\nWould you like more information about this part or help with anything else?")
	return b.String()
}
