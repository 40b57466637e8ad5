package tools

import (
	"context"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

// installationSteps looks up installation instructions, preferring the
// product index and falling back to the static step table. An empty
// part number or a part with no known steps yields an empty result, not
// an error.
func (d *Dispatcher) installationSteps(ctx context.Context, partNumber string) (StepsOutput, error) {
	if partNumber == "" {
		return StepsOutput{Steps: []string{}}, nil
	}

	results, err := d.searcher.Search(ctx, catalog.SearchArgs{PartNumber: partNumber, Limit: 1})
	if err == nil && len(results.Items) > 0 && len(results.Items[0].InstallationSteps) > 0 {
		d.logger.Info("tools: installation steps from index", "part", partNumber)
		return StepsOutput{Steps: results.Items[0].InstallationSteps}, nil
	}
	if err != nil {
		d.logger.Warn("tools: index lookup failed, using fallback table", "part", partNumber, "error", err)
	}

	if steps, ok := fallbackInstallationSteps[partNumber]; ok {
		return StepsOutput{Steps: steps}, nil
	}

	d.logger.Info("tools: no installation steps found", "part", partNumber)
	return StepsOutput{Steps: []string{}}, nil
}
