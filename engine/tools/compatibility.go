package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

const compatSearchLimit = 5

// checkCompatibility decides whether a part fits a model. The verdict
// comes from an exact case-insensitive match over the compatible model
// lists of retrieved products; the fitment graph only decorates the
// detail text and is skipped on failure. partNumberOrDesc may be a
// descriptive phrase, in which case it is used as a search query only.
func (d *Dispatcher) checkCompatibility(ctx context.Context, partNumberOrDesc, modelNumber string) (CompatOutput, error) {
	args := catalog.SearchArgs{
		Query:       partNumberOrDesc + " " + modelNumber,
		ModelNumber: modelNumber,
		Limit:       compatSearchLimit,
	}
	if catalog.LooksLikePartNumber(partNumberOrDesc) {
		args.PartNumber = strings.ToUpper(strings.TrimSpace(partNumberOrDesc))
	}

	results, err := d.searcher.Search(ctx, args)
	if err != nil {
		return CompatOutput{}, err
	}
	if len(results.Items) == 0 {
		return CompatOutput{
			Compatible: false,
			Details:    fmt.Sprintf("No compatibility information found for part %s with model %s.", partNumberOrDesc, modelNumber),
		}, nil
	}

	for _, item := range results.Items {
		if matchesModelExact(item.CompatibleModels, modelNumber) {
			out := CompatOutput{
				Compatible: true,
				Details:    fmt.Sprintf("Part %s (%s) is compatible with model %s.", item.PartNumber, item.Name, modelNumber),
			}
			out.Details += d.fitmentDetail(ctx, item.PartNumber, modelNumber)
			return out, nil
		}
	}

	first := results.Items[0]
	out := CompatOutput{
		Compatible: false,
		Details:    fmt.Sprintf("Part %s (%s) is NOT compatible with model %s.", first.PartNumber, first.Name, modelNumber),
	}
	out.Details += d.knownPartsDetail(ctx, modelNumber)
	return out, nil
}

// fitmentDetail adds graph-derived context to a positive verdict. A nil
// graph or a lookup failure produces no detail at all.
func (d *Dispatcher) fitmentDetail(ctx context.Context, partNumber, modelNumber string) string {
	if d.graph == nil {
		return ""
	}
	models, err := d.graph.ModelsForPart(ctx, partNumber)
	if err != nil {
		d.logger.Warn("tools: fitment graph lookup failed", "part", partNumber, "error", err)
		return ""
	}
	others := 0
	for _, m := range models {
		if !strings.EqualFold(m, modelNumber) {
			others++
		}
	}
	if others == 0 {
		return ""
	}
	return fmt.Sprintf(" It also fits %d other known models.", others)
}

// knownPartsDetail notes how many parts the graph records for a model when
// the verdict is negative, so the answer can point at alternatives. A nil
// graph or a lookup failure produces no detail at all.
func (d *Dispatcher) knownPartsDetail(ctx context.Context, modelNumber string) string {
	if d.graph == nil {
		return ""
	}
	parts, err := d.graph.PartsForModel(ctx, modelNumber)
	if err != nil {
		d.logger.Warn("tools: fitment graph lookup failed", "model", modelNumber, "error", err)
		return ""
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" There are %d parts on record that do fit this model.", len(parts))
}

func matchesModelExact(models []string, modelNumber string) bool {
	for _, m := range models {
		if strings.EqualFold(m, modelNumber) {
			return true
		}
	}
	return false
}
