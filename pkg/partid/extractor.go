// Package partid extracts part and appliance model numbers from
// unstructured text using regex patterns. No external dependencies.
package partid

import (
	"regexp"
	"strings"
)

// Match represents extracted identifiers from one message.
type Match struct {
	PartNumber  string // e.g. "WPW10730972"
	ModelNumber string // e.g. "LFSS2612TF0"
}

// Labeled forms like "part number: W10295370A" or "part # W10295370A".
var partLabeledRe = regexp.MustCompile(`(?i)(?:part(?:\s+number)?(?:\s*#?\s*|\s+)):?\s*([A-Z0-9]{8,12})\b`)

// Labeled model forms like "model number LFSS2612TF0".
var modelLabeledRe = regexp.MustCompile(`(?i)(?:model(?:\s+number)?(?:\s*#?\s*|\s+)):?\s*([A-Z0-9]{9,12})\b`)

// Bare part numbers: a short letter prefix followed by digits, like
// "WP8268743" or "DA9707603B" style tokens.
var partBareRe = regexp.MustCompile(`(?i)\b([A-Z]{2,3}[0-9]{6,10})\b`)

// Extract pulls a part number and a model number out of text. Labeled
// mentions win over bare tokens; either field may be empty.
func Extract(text string) Match {
	var m Match

	if groups := partLabeledRe.FindStringSubmatch(text); groups != nil {
		m.PartNumber = strings.ToUpper(groups[1])
	} else if groups := partBareRe.FindStringSubmatch(text); groups != nil {
		m.PartNumber = strings.ToUpper(groups[1])
	}

	if groups := modelLabeledRe.FindStringSubmatch(text); groups != nil {
		m.ModelNumber = strings.ToUpper(groups[1])
	}

	return m
}

// IsEmpty reports whether nothing was extracted.
func (m Match) IsEmpty() bool {
	return m.PartNumber == "" && m.ModelNumber == ""
}
