// Package retrieval implements the filtered semantic search over the product
// index, including the relaxed fallback for unconfirmed model compatibility,
// and the result refiner that narrows raw hits to the most relevant subset.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/semantic"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher abstracts the product index similarity search.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, topK int, filter semantic.Filter) ([]semantic.Hit, error)
}

// Results is the outcome of one search call. Relaxed is true when the
// model-compatibility constraint was dropped to produce a non-empty set; in
// that case every item carries ModelCompatUnknown.
type Results struct {
	Items   []catalog.Retrieved
	Relaxed bool
}

// Engine executes filtered semantic searches against the product index.
type Engine struct {
	embed  Embedder
	index  Searcher
	logger *slog.Logger
}

// NewEngine creates a retrieval Engine.
func NewEngine(embed Embedder, index Searcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{embed: embed, index: index, logger: logger}
}

// Search embeds the query, applies exact-match filters, and runs a k-NN
// search. When a model-constrained search comes back empty it re-runs with
// the compatibility constraint removed and flags every result, so the user
// gets the closest available parts instead of an empty answer.
//
// An empty result from both passes is a valid "no match", not an error.
func (e *Engine) Search(ctx context.Context, args catalog.SearchArgs) (Results, error) {
	if err := catalog.ValidateSearchArgs(args); err != nil {
		return Results{}, fmt.Errorf("retrieval: %w", err)
	}

	// Part-number-only lookups arrive with an empty query; embed the part
	// number itself so the index still gets a meaningful vector.
	embedText := strings.TrimSpace(args.Query)
	if embedText == "" {
		embedText = args.PartNumber
	}

	embedding, err := e.embed.Embed(ctx, embedText)
	if err != nil {
		return Results{}, fmt.Errorf("retrieval: embed query: %w: %v", catalog.ErrEmbedding, err)
	}

	filter := buildFilter(args)
	limit := args.EffectiveLimit()

	hits, err := e.index.Search(ctx, embedding, limit, filter)
	if err != nil {
		return Results{}, fmt.Errorf("retrieval: %w", err)
	}
	if len(hits) > 0 {
		return Results{Items: toRetrieved(hits, false)}, nil
	}

	// Fallback: only when a model constraint was in play and there is a
	// semantic query to fall back on.
	if args.ModelNumber == "" || strings.TrimSpace(args.Query) == "" {
		return Results{}, nil
	}

	e.logger.Info("retrieval: no strict matches, relaxing model constraint",
		"model", args.ModelNumber, "query", args.Query)

	relaxedHits, err := e.index.Search(ctx, embedding, limit, filter.WithoutCompatibleModel())
	if err != nil {
		return Results{}, fmt.Errorf("retrieval: relaxed search: %w", err)
	}
	if len(relaxedHits) == 0 {
		return Results{}, nil
	}
	return Results{Items: toRetrieved(relaxedHits, true), Relaxed: true}, nil
}

// buildFilter maps search arguments onto index filter conditions. Model
// compatibility is enforced at the index only for the direct
// "part X on model Y" question, i.e. when both identifiers are present.
func buildFilter(args catalog.SearchArgs) semantic.Filter {
	f := semantic.Filter{
		Category: strings.ToLower(args.Category),
		Brand:    args.Brand,
	}
	if args.PartNumber != "" {
		f.PartNumber = args.PartNumber
		if args.ModelNumber != "" {
			f.CompatibleModel = args.ModelNumber
		}
	}
	return f
}

func toRetrieved(hits []semantic.Hit, relaxed bool) []catalog.Retrieved {
	out := make([]catalog.Retrieved, len(hits))
	for i, h := range hits {
		out[i] = catalog.Retrieved{
			Product:            h.Product,
			Score:              h.Score,
			ModelCompatUnknown: relaxed,
		}
	}
	return out
}
