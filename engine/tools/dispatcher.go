// Package tools implements the assistant's callable tools: product
// search, installation steps, compatibility checks, and troubleshooting
// tips. A Dispatcher routes model tool calls to implementations and runs
// independent calls concurrently with per-call error isolation.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/graph"
	"github.com/PartDeskAI/partdesk-mvp/engine/retrieval"
	"github.com/PartDeskAI/partdesk-mvp/pkg/fn"
)

// ProductSearcher is the retrieval surface the tools need.
type ProductSearcher interface {
	Search(ctx context.Context, args catalog.SearchArgs) (retrieval.Results, error)
}

// FitmentGraph supplies optional fitment detail for compatibility
// answers. It never decides the compatibility verdict itself.
type FitmentGraph interface {
	ModelsForPart(ctx context.Context, partNumber string) ([]string, error)
	PartsForModel(ctx context.Context, modelNumber string) ([]graph.Part, error)
}

// Call is one tool invocation requested by the model.
type Call struct {
	ID   string
	Name string
	Args map[string]any
}

// Outcome pairs a call with its result or error. Exactly one of Result
// and Err is set.
type Outcome struct {
	Call   Call
	Result any
	Err    error
}

// SearchOutput is the search_products tool result.
type SearchOutput struct {
	Products []catalog.Retrieved `json:"products"`
	Relaxed  bool                `json:"relaxed,omitempty"`
}

// StepsOutput is the get_installation_steps tool result.
type StepsOutput struct {
	Steps []string `json:"steps"`
}

// CompatOutput is the check_compatibility tool result.
type CompatOutput struct {
	Compatible bool   `json:"compatible"`
	Details    string `json:"details,omitempty"`
}

// TipsOutput is the get_troubleshooting_tips tool result.
type TipsOutput struct {
	Tips []string `json:"tips"`
}

// Dispatcher executes tool calls against the product index.
type Dispatcher struct {
	searcher ProductSearcher
	graph    FitmentGraph
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher. graph may be nil; compatibility
// answers then carry no fitment detail.
func NewDispatcher(searcher ProductSearcher, graph FitmentGraph, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{searcher: searcher, graph: graph, logger: logger}
}

// Execute runs a single tool call.
func (d *Dispatcher) Execute(ctx context.Context, call Call) (any, error) {
	d.logger.Info("tools: executing call", "tool", call.Name, "id", call.ID)

	switch call.Name {
	case ToolSearchProducts:
		args := catalog.SearchArgs{
			Query:       strArg(call.Args, "query"),
			PartNumber:  strArg(call.Args, "partNumber"),
			ModelNumber: strArg(call.Args, "modelNumber"),
			Category:    strArg(call.Args, "category"),
			Brand:       strArg(call.Args, "brand"),
			Limit:       intArg(call.Args, "limit"),
		}
		results, err := d.searcher.Search(ctx, args)
		if err != nil {
			return nil, err
		}
		return SearchOutput{Products: results.Items, Relaxed: results.Relaxed}, nil

	case ToolInstallationSteps:
		return d.installationSteps(ctx, strArg(call.Args, "partNumber"))

	case ToolCheckCompatibility:
		return d.checkCompatibility(ctx, strArg(call.Args, "partNumber"), strArg(call.Args, "modelNumber"))

	case ToolTroubleshootingTips:
		return d.troubleshootingTips(ctx, strArg(call.Args, "issue"), strArg(call.Args, "applianceType"))

	default:
		return nil, fmt.Errorf("tools: %w: %s", catalog.ErrUnknownTool, call.Name)
	}
}

// ExecuteAll runs calls concurrently. A failed call yields an Outcome
// with Err set and never affects its siblings.
func (d *Dispatcher) ExecuteAll(ctx context.Context, calls []Call) []Outcome {
	return fn.ParMap(calls, len(calls), func(call Call) Outcome {
		result, err := d.Execute(ctx, call)
		if err != nil {
			d.logger.Error("tools: call failed", "tool", call.Name, "error", err)
			return Outcome{Call: call, Err: &catalog.ToolError{Tool: call.Name, Err: err}}
		}
		return Outcome{Call: call, Result: result}
	})
}

func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
