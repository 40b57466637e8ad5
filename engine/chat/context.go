package chat

import (
	"fmt"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/retrieval"
	"github.com/PartDeskAI/partdesk-mvp/engine/tools"
)

// buildToolContext turns tool outcomes into the grounding context for
// the final completion and collects the product results to return to
// the client. Failed calls contribute an error line and nothing else.
func buildToolContext(outcomes []tools.Outcome, userText string) (string, []catalog.Retrieved) {
	var b strings.Builder
	var productResults []catalog.Retrieved

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(&b, "\n\nError executing %s: %v", outcome.Call.Name, outcome.Err)
			continue
		}

		switch outcome.Call.Name {
		case tools.ToolSearchProducts:
			out, ok := outcome.Result.(tools.SearchOutput)
			if !ok {
				continue
			}
			args := searchArgsFromCall(outcome.Call)
			refined := retrieval.Refine(out.Products, args, userText)
			productResults = refined
			writeSearchContext(&b, refined, args)

		case tools.ToolInstallationSteps:
			out, ok := outcome.Result.(tools.StepsOutput)
			if !ok {
				continue
			}
			part := strArg(outcome.Call.Args, "partNumber")
			if len(out.Steps) > 0 {
				fmt.Fprintf(&b, "\n\nInstallation Steps for Part %s:\n", part)
				for i, step := range out.Steps {
					fmt.Fprintf(&b, "%d. %s\n", i+1, step)
				}
			} else {
				fmt.Fprintf(&b, "\n\nNo installation steps found for part %s.", part)
			}

		case tools.ToolCheckCompatibility:
			out, ok := outcome.Result.(tools.CompatOutput)
			if !ok {
				continue
			}
			verdict := "Not compatible"
			if out.Compatible {
				verdict = "Compatible"
			}
			fmt.Fprintf(&b, "\n\nCompatibility Check Result: %s.", verdict)
			if out.Details != "" {
				fmt.Fprintf(&b, " %s", out.Details)
			}

		case tools.ToolTroubleshootingTips:
			out, ok := outcome.Result.(tools.TipsOutput)
			if !ok {
				continue
			}
			if len(out.Tips) > 0 {
				b.WriteString("\n\nTroubleshooting Tips:\n")
				for i, tip := range out.Tips {
					fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
				}
			} else {
				b.WriteString("\n\nNo troubleshooting tips found for this issue.")
			}
		}
	}

	return b.String(), productResults
}

// writeSearchContext emits the retrieved product block the model must
// ground its answer in.
func writeSearchContext(b *strings.Builder, products []catalog.Retrieved, args catalog.SearchArgs) {
	if len(products) == 0 {
		b.WriteString("\n\nNo products found matching the search criteria.\n")
		return
	}

	if args.ModelNumber != "" && !anyModelMatch(products, args.ModelNumber) {
		fmt.Fprintf(b, "\n\nIMPORTANT: None of the found products explicitly list model %s as compatible. These are the most relevant parts based on your search, but confirm compatibility before purchasing.\n", args.ModelNumber)
	}

	b.WriteString("\n\n### RETRIEVED PRODUCT INFORMATION ###\n")
	for i, product := range products {
		fmt.Fprintf(b, "\nProduct %d:\n", i+1)
		fmt.Fprintf(b, "PART NUMBER: %s\n", product.PartNumber)
		fmt.Fprintf(b, "EXACT PRODUCT TYPE: %s\n", product.Name)
		fmt.Fprintf(b, "CATEGORY: %s\n", product.Category)
		fmt.Fprintf(b, "SUBCATEGORY: %s\n", orNA(product.Subcategory))
		fmt.Fprintf(b, "BRAND: %s\n", product.Brand)
		fmt.Fprintf(b, "PRICE: $%.2f\n", product.Price)
		if product.InStock {
			fmt.Fprintf(b, "STOCK STATUS: In Stock (%d available)\n", product.StockCount)
		} else {
			b.WriteString("STOCK STATUS: Out of Stock\n")
		}
		fmt.Fprintf(b, "DESCRIPTION: %s\n", product.Description)
		if len(product.CompatibleModels) > 0 {
			fmt.Fprintf(b, "COMPATIBLE MODELS: %s\n", strings.Join(product.CompatibleModels, ", "))
		}
		fmt.Fprintf(b, "\nIMPORTANT: When referring to part %s, you MUST describe it as a %q and NEVER as any other type of product.\n", product.PartNumber, product.Name)
	}
	b.WriteString("\n### END PRODUCT INFORMATION ###\n")

	for _, product := range products {
		if product.ModelCompatUnknown {
			fmt.Fprintf(b, "\nNOTE: Compatibility with model %s couldn't be confirmed. The listed products are our most relevant options for %q.\n", args.ModelNumber, args.Query)
			break
		}
	}
}

func anyModelMatch(products []catalog.Retrieved, modelNumber string) bool {
	lower := strings.ToLower(modelNumber)
	for _, p := range products {
		for _, m := range p.CompatibleModels {
			if strings.ToLower(m) == lower {
				return true
			}
		}
	}
	return false
}

func searchArgsFromCall(call tools.Call) catalog.SearchArgs {
	return catalog.SearchArgs{
		Query:       strArg(call.Args, "query"),
		PartNumber:  strArg(call.Args, "partNumber"),
		ModelNumber: strArg(call.Args, "modelNumber"),
		Category:    strArg(call.Args, "category"),
		Brand:       strArg(call.Args, "brand"),
	}
}

func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
