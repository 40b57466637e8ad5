package retrieval

import (
	"sort"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/pkg/fn"
)

// Score-gap heuristic thresholds: a top hit this far ahead of the runner-up
// is treated as a confident single match; otherwise tail hits below the
// relative band are dropped.
const (
	scoreGapRatio  = 1.5
	scoreBandRatio = 0.7
)

// Stopwords dropped from query tokens before term matching, together with
// the minimum significant token length.
var stopwords = map[string]bool{
	"the": true, "and": true, "with": true, "for": true, "this": true,
	"that": true, "what": true, "have": true, "does": true,
}

const minTokenLength = 4

// Refine narrows raw retrieval results to the most relevant subset. Rules
// apply in order and the first one whose precondition holds wins; exact
// identifiers dominate fuzzy semantic ranking, and the score heuristics only
// compress a noisy "related items" list when no identifier is available.
// Refine is idempotent: applying it to its own output is a no-op.
func Refine(results []catalog.Retrieved, args catalog.SearchArgs, userText string) []catalog.Retrieved {
	if len(results) == 0 {
		return nil
	}

	// Rule 1: exact part-number match.
	if args.PartNumber != "" {
		exact := fn.Filter(results, func(r catalog.Retrieved) bool {
			return r.PartNumber == args.PartNumber
		})
		if len(exact) > 0 {
			return exact
		}
	}

	// Rule 2: model-compatibility filter.
	if args.ModelNumber != "" {
		compatible := fn.Filter(results, func(r catalog.Retrieved) bool {
			return matchesModel(r.Product, args.ModelNumber)
		})
		if len(compatible) > 0 {
			return compatible
		}
	}

	// Rule 3: joint query-term and model match. Its model predicate is
	// rule 2's, so rule 2 coming up empty means this comes up empty too
	// and the rule can never fire; it stays in place because the rule
	// order is the refiner's contract.
	if args.Query != "" && args.ModelNumber != "" {
		terms := significantTerms(args.Query)
		if len(terms) > 0 {
			joint := fn.Filter(results, func(r catalog.Retrieved) bool {
				return matchesTerms(r.Product, terms) && matchesModel(r.Product, args.ModelNumber)
			})
			if len(joint) > 0 {
				return joint
			}
		}
	}

	// Rule 4: score-gap heuristic.
	if len(results) > 1 {
		sorted := make([]catalog.Retrieved, len(results))
		copy(sorted, results)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Score > sorted[j].Score
		})

		if sorted[0].Score > sorted[1].Score*scoreGapRatio {
			return sorted[:1]
		}
		if len(sorted) > 2 {
			top := sorted[0].Score
			return fn.Filter(sorted, func(r catalog.Retrieved) bool {
				return r.Score >= top*scoreBandRatio
			})
		}
	}

	// Default: pass through unchanged.
	return results
}

// matchesModel reports whether any stored compatible model contains the
// requested model number, case-insensitively. Substring matching tolerates
// suffix revisions in stored model strings.
func matchesModel(p catalog.Product, modelNumber string) bool {
	needle := strings.ToLower(modelNumber)
	for _, m := range p.CompatibleModels {
		if strings.Contains(strings.ToLower(m), needle) {
			return true
		}
	}
	return false
}

// matchesTerms reports whether any term appears in the product's name,
// subcategory, or description.
func matchesTerms(p catalog.Product, terms []string) bool {
	name := strings.ToLower(p.Name)
	sub := strings.ToLower(p.Subcategory)
	desc := strings.ToLower(p.Description)
	for _, t := range terms {
		if strings.Contains(name, t) || strings.Contains(sub, t) || strings.Contains(desc, t) {
			return true
		}
	}
	return false
}

// significantTerms tokenizes a query into lowercase words, dropping
// stopwords and short tokens.
func significantTerms(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	return fn.Filter(words, func(w string) bool {
		return len(w) >= minTokenLength && !stopwords[w]
	})
}
