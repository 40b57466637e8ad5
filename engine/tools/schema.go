package tools

import "github.com/PartDeskAI/partdesk-mvp/pkg/llm"

// Tool names as exposed to the model.
const (
	ToolSearchProducts      = "search_products"
	ToolInstallationSteps   = "get_installation_steps"
	ToolCheckCompatibility  = "check_compatibility"
	ToolTroubleshootingTips = "get_troubleshooting_tips"
)

// Definitions returns the tool set offered to the model on every turn.
func Definitions() []llm.Tool {
	return []llm.Tool{
		{
			Name:        ToolSearchProducts,
			Description: "Search for products based on part number, model compatibility, keywords, or description",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query, can include part numbers, model numbers, or descriptive terms",
					},
					"partNumber": map[string]any{
						"type":        "string",
						"description": "Specific part number to search for",
					},
					"modelNumber": map[string]any{
						"type":        "string",
						"description": "Appliance model number to check compatibility with",
					},
					"category": map[string]any{
						"type":        "string",
						"description": `Product category (e.g., "refrigerator", "dishwasher")`,
						"enum":        []string{"refrigerator", "dishwasher"},
					},
					"limit": map[string]any{
						"type":        "number",
						"description": "Maximum number of results to return",
						"default":     3,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        ToolInstallationSteps,
			Description: "Get installation instructions for a specific part",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"partNumber": map[string]any{
						"type":        "string",
						"description": "Part number to get installation instructions for",
					},
				},
				"required": []string{"partNumber"},
			},
		},
		{
			Name:        ToolCheckCompatibility,
			Description: "Check if a part is compatible with a specific model",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"partNumber": map[string]any{
						"type":        "string",
						"description": "Part number to check compatibility for",
					},
					"modelNumber": map[string]any{
						"type":        "string",
						"description": "Model number to check compatibility with",
					},
				},
				"required": []string{"partNumber", "modelNumber"},
			},
		},
		{
			Name:        ToolTroubleshootingTips,
			Description: "Get troubleshooting tips for a specific issue",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"issue": map[string]any{
						"type":        "string",
						"description": "Description of the issue to troubleshoot",
					},
					"applianceType": map[string]any{
						"type":        "string",
						"description": "Type of appliance with the issue",
						"enum":        []string{"refrigerator", "dishwasher"},
					},
					"modelNumber": map[string]any{
						"type":        "string",
						"description": "Model number of the appliance (optional)",
					},
				},
				"required": []string{"issue", "applianceType"},
			},
		},
	}
}
