package tools

import (
	"context"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

const (
	tipsSearchLimit = 3
	issueMatchFloor = 0.3
)

// troubleshootingTips gathers advice for an appliance issue. Tips
// attached to relevant products win; otherwise the static issue table
// is consulted, matching the described issue against known issue keys
// by word overlap. No match yields an empty result, not an error.
func (d *Dispatcher) troubleshootingTips(ctx context.Context, issue, applianceType string) (TipsOutput, error) {
	args := catalog.SearchArgs{
		Query:    applianceType + " " + issue,
		Category: strings.ToLower(applianceType),
		Limit:    tipsSearchLimit,
	}

	results, err := d.searcher.Search(ctx, args)
	if err != nil {
		d.logger.Warn("tools: tip search failed, using fallback table", "error", err)
	} else {
		var tips []string
		for _, item := range results.Items {
			tips = append(tips, item.TroubleshootingTips...)
		}
		if len(tips) > 0 {
			d.logger.Info("tools: troubleshooting tips from product data", "count", len(tips))
			return TipsOutput{Tips: tips}, nil
		}
	}

	issues, ok := fallbackTroubleshootingTips[strings.ToLower(applianceType)]
	if !ok {
		return TipsOutput{Tips: []string{}}, nil
	}

	bestKey := ""
	bestScore := 0.0
	for key := range issues {
		if score := jaccard(strings.ToLower(issue), key); score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore > issueMatchFloor && bestKey != "" {
		return TipsOutput{Tips: issues[bestKey]}, nil
	}
	return TipsOutput{Tips: []string{}}, nil
}

// jaccard computes word-set overlap between two phrases.
func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
