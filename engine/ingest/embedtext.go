package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

// EmbedText builds the rich text representation of a product that gets
// embedded. Specifications are emitted in sorted key order so the text
// is stable across runs.
func EmbedText(p catalog.Product) string {
	lines := []string{
		"Product: " + p.Name,
		"Part Number: " + p.PartNumber,
		"Description: " + p.Description,
		"Category: " + p.Category,
		"Subcategory: " + p.Subcategory,
		"Brand: " + p.Brand,
		"Compatible Models: " + strings.Join(p.CompatibleModels, ", "),
	}

	keys := make([]string, 0, len(p.Specifications))
	for k := range p.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, p.Specifications[k]))
	}

	if len(p.InstallationSteps) > 0 {
		lines = append(lines, "Installation Steps: "+strings.Join(p.InstallationSteps, ". "))
	}
	if len(p.TroubleshootingTips) > 0 {
		lines = append(lines, "Troubleshooting Tips: "+strings.Join(p.TroubleshootingTips, ". "))
	}

	return strings.Join(lines, "\n")
}
