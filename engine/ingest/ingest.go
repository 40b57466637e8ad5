// Package ingest provides the catalog ingestion pipeline that processes
// product records through validation, embedding, and storage stages.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/graph"
	"github.com/PartDeskAI/partdesk-mvp/engine/semantic"
	"github.com/PartDeskAI/partdesk-mvp/pkg/fn"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	// IngestSubject is the NATS subject for incoming product records.
	IngestSubject = "catalog.ingest"
	// DLQSubject is the dead letter queue subject for failed messages.
	DLQSubject = "catalog.ingest.dlq"
	// MaxRetries before sending to DLQ.
	MaxRetries = 3
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Deps holds the external dependencies for the ingestion pipeline.
type Deps struct {
	Embedder    Embedder
	VectorStore *semantic.VectorStore
	// Fitment receives part-to-model edges at index time. Nil disables
	// graph writes.
	Fitment *graph.FitmentStore
	Logger  *slog.Logger
}

// --- Pipeline Stages ---

// Validate rejects malformed product records.
var Validate fn.Stage[catalog.Product, catalog.Product] = func(_ context.Context, p catalog.Product) fn.Result[catalog.Product] {
	if err := catalog.ValidateProduct(p); err != nil {
		return fn.Err[catalog.Product](err)
	}
	return fn.Ok(p)
}

// NewEmbed creates a stage that embeds the product's text representation.
func NewEmbed(embedder Embedder) fn.Stage[catalog.Product, semantic.ProductPoint] {
	return func(ctx context.Context, p catalog.Product) fn.Result[semantic.ProductPoint] {
		vec, err := embedder.Embed(ctx, EmbedText(p))
		if err != nil {
			return fn.Err[semantic.ProductPoint](fmt.Errorf("embed product %s: %w", p.PartNumber, err))
		}
		return fn.Ok(semantic.ProductPoint{
			ID:        PointID(p.PartNumber),
			Embedding: vec,
			Product:   p,
		})
	}
}

// NewStore creates a stage that writes the vector to Qdrant and the
// fitment edges to Neo4j. Graph failures are logged, not fatal; the
// vector index is the source of truth for retrieval.
func NewStore(vs *semantic.VectorStore, fitment *graph.FitmentStore, log *slog.Logger) fn.Stage[semantic.ProductPoint, string] {
	return func(ctx context.Context, point semantic.ProductPoint) fn.Result[string] {
		if err := vs.Upsert(ctx, []semantic.ProductPoint{point}); err != nil {
			return fn.Err[string](fmt.Errorf("vector upsert: %w", err))
		}

		if fitment != nil {
			p := point.Product
			part := graph.Part{
				PartNumber: p.PartNumber,
				Name:       p.Name,
				Category:   p.Category,
				Brand:      p.Brand,
			}
			models := make([]graph.Model, len(p.CompatibleModels))
			for i, m := range p.CompatibleModels {
				models[i] = graph.Model{Number: m, Category: p.Category}
			}
			if err := fitment.SaveFitment(ctx, part, models); err != nil {
				log.Warn("ingest: fitment write failed", "part", p.PartNumber, "error", err)
			}
		}

		return fn.Ok(point.Product.PartNumber)
	}
}

// PointID derives a deterministic Qdrant point ID from a part number,
// so re-ingesting a product overwrites its previous vector.
func PointID(partNumber string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("partdesk:"+partNumber)).String()
}

// LoggedTap returns a stage that logs entry and exit with duration.
func LoggedTap[T any](name string, log *slog.Logger) fn.Stage[T, T] {
	return func(ctx context.Context, t T) fn.Result[T] {
		log.Info("stage.enter", "stage", name)
		start := time.Now()
		defer func() {
			log.Info("stage.exit", "stage", name, "duration", time.Since(start))
		}()
		return fn.Ok(t)
	}
}

// NewPipeline constructs the full ingestion pipeline with all stages wired.
// Each stage runs in its own span; the embed stage retries, since embedding
// calls fail transiently far more often than validation or storage.
func NewPipeline(deps Deps) fn.Stage[catalog.Product, string] {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	embed := fn.RetryStage(fn.DefaultRetry, fn.TracedStage("ingest.embed", NewEmbed(deps.Embedder)))
	store := fn.TracedStage("ingest.store", NewStore(deps.VectorStore, deps.Fitment, log))

	validated := fn.Then(LoggedTap[catalog.Product]("validate", log), fn.TracedStage("ingest.validate", Validate))
	embedded := fn.Then(validated, fn.Then(LoggedTap[catalog.Product]("embed", log), embed))
	stored := fn.Then(embedded, fn.Then(LoggedTap[semantic.ProductPoint]("store", log), store))

	return stored
}

// dlqMessage is published to the DLQ on repeated failure.
type dlqMessage struct {
	Product catalog.Product `json:"product"`
	Error   string          `json:"error"`
	Retries int             `json:"retries"`
}

// StartConsumer starts a NATS consumer that runs product records
// through the ingestion pipeline with retry and DLQ support.
func StartConsumer(nc *nats.Conn, deps Deps) (*nats.Subscription, error) {
	pipeline := NewPipeline(deps)
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return nc.Subscribe(IngestSubject, func(msg *nats.Msg) {
		var product catalog.Product
		if err := json.Unmarshal(msg.Data, &product); err != nil {
			log.Error("ingest: unmarshal failed", "error", err)
			return
		}

		ctx := context.Background()

		retries := 0
		if msg.Header != nil {
			if v := msg.Header.Get("X-Retry-Count"); v != "" {
				fmt.Sscanf(v, "%d", &retries)
			}
		}

		result := pipeline(ctx, product)
		if result.IsErr() {
			_, pipeErr := result.Unwrap()
			retries++
			log.Error("ingest: pipeline failed",
				"error", pipeErr,
				"part", product.PartNumber,
				"retry", retries,
			)

			if retries >= MaxRetries {
				dlq := dlqMessage{
					Product: product,
					Error:   pipeErr.Error(),
					Retries: retries,
				}
				data, _ := json.Marshal(dlq)
				if err := nc.Publish(DLQSubject, data); err != nil {
					log.Error("ingest: DLQ publish failed", "error", err)
				}
			} else {
				retryMsg := nats.NewMsg(IngestSubject)
				retryMsg.Data = msg.Data
				retryMsg.Header = nats.Header{}
				retryMsg.Header.Set("X-Retry-Count", fmt.Sprintf("%d", retries))
				if err := nc.PublishMsg(retryMsg); err != nil {
					log.Error("ingest: retry publish failed", "error", err)
				}
			}
		} else {
			partNumber, _ := result.Unwrap()
			log.Info("ingest: success", "part", partNumber)
		}

		if msg.Reply != "" {
			_ = msg.Ack()
		}
	})
}
