package graph

import (
	"context"
	"fmt"

	"github.com/PartDeskAI/partdesk-mvp/pkg/repo"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// FitmentStore provides fitment operations on top of the generic Neo4j
// repository.
type FitmentStore struct {
	driver neo4j.DriverWithContext
	parts  *repo.Neo4jRepo[Part, string]
}

// New creates a new FitmentStore.
func New(driver neo4j.DriverWithContext) *FitmentStore {
	return &FitmentStore{
		driver: driver,
		parts:  newPartRepo(driver),
	}
}

// GetPart returns a part node by part number.
func (f *FitmentStore) GetPart(ctx context.Context, partNumber string) (Part, error) {
	p, err := f.parts.Get(ctx, partNumber)
	if err != nil {
		return Part{}, fmt.Errorf("graph: get part %s: %w", partNumber, err)
	}
	return p, nil
}

// SavePart creates or updates a part node.
func (f *FitmentStore) SavePart(ctx context.Context, p Part) error {
	_, err := f.parts.Upsert(ctx, p)
	if err != nil {
		return fmt.Errorf("graph: save part %s: %w", p.PartNumber, err)
	}
	return nil
}

// LinkModel records that a part fits an appliance model, creating the
// model node if needed.
func (f *FitmentStore) LinkModel(ctx context.Context, partNumber string, m Model) error {
	sess := f.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (p:Part {partNumber: $part})
			   MERGE (m:Model {number: $model})
			   SET m.category = $category
			   MERGE (p)-[:FITS]->(m)`
	_, err := sess.Run(ctx, cypher, map[string]any{
		"part":     partNumber,
		"model":    m.Number,
		"category": m.Category,
	})
	if err != nil {
		return fmt.Errorf("graph: link %s to %s: %w", partNumber, m.Number, err)
	}
	return nil
}

// SaveFitment upserts a part node and merges all its model edges. Both
// writes are idempotent, so a partial failure is safe to retry.
func (f *FitmentStore) SaveFitment(ctx context.Context, p Part, models []Model) error {
	if err := f.SavePart(ctx, p); err != nil {
		return err
	}
	for _, m := range models {
		if err := f.LinkModel(ctx, p.PartNumber, m); err != nil {
			return err
		}
	}
	return nil
}

// ModelsForPart returns the model numbers a part is known to fit.
func (f *FitmentStore) ModelsForPart(ctx context.Context, partNumber string) ([]string, error) {
	sess := f.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (:Part {partNumber: $part})-[:FITS]->(m:Model)
			   RETURN m.number AS number ORDER BY number`
	result, err := sess.Run(ctx, cypher, map[string]any{"part": partNumber})
	if err != nil {
		return nil, fmt.Errorf("graph: models for %s: %w", partNumber, err)
	}
	return collectStrings(ctx, result, "number")
}

// PartsForModel returns the parts known to fit a model.
func (f *FitmentStore) PartsForModel(ctx context.Context, modelNumber string) ([]Part, error) {
	sess := f.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (n:Part)-[:FITS]->(:Model {number: $model})
			   RETURN n ORDER BY n.partNumber`
	result, err := sess.Run(ctx, cypher, map[string]any{"model": modelNumber})
	if err != nil {
		return nil, fmt.Errorf("graph: parts for %s: %w", modelNumber, err)
	}

	var parts []Part
	for result.Next(ctx) {
		p, err := partFromRecord(result.Record())
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// KnownModelCount returns how many models the graph has seen.
func (f *FitmentStore) KnownModelCount(ctx context.Context) (int, error) {
	sess := f.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	result, err := sess.Run(ctx, `MATCH (m:Model) RETURN count(m) AS c`, nil)
	if err != nil {
		return 0, fmt.Errorf("graph: model count: %w", err)
	}
	if !result.Next(ctx) {
		return 0, fmt.Errorf("graph: model count: empty result")
	}
	v, ok := result.Record().Get("c")
	if !ok {
		return 0, fmt.Errorf("graph: model count: missing column")
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("graph: model count: unexpected type %T", v)
	}
	return int(n), nil
}

func collectStrings(ctx context.Context, result neo4j.ResultWithContext, key string) ([]string, error) {
	var items []string
	for result.Next(ctx) {
		v, ok := result.Record().Get(key)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items, nil
}
