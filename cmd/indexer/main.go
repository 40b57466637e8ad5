// Command indexer loads the product catalog into Qdrant and the fitment
// graph into Neo4j. By default it indexes the built-in seed catalog
// directly; with -publish it sends products to the NATS ingest subject
// instead and lets a running consumer do the work.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/graph"
	"github.com/PartDeskAI/partdesk-mvp/engine/ingest"
	"github.com/PartDeskAI/partdesk-mvp/engine/semantic"
	"github.com/PartDeskAI/partdesk-mvp/pkg/fn"
	"github.com/PartDeskAI/partdesk-mvp/pkg/metrics"
	"github.com/PartDeskAI/partdesk-mvp/pkg/natsutil"
	"github.com/PartDeskAI/partdesk-mvp/pkg/openai"
)

// text-embedding-3-small
const vectorDims = 1536

// indexWorkers bounds concurrent pipeline runs; the embedding client
// rate-limits itself below this.
const indexWorkers = 4

func main() {
	var (
		file       = flag.String("file", "", "JSON file with products to index (defaults to the seed catalog)")
		openaiURL  = flag.String("openai", "https://api.openai.com/v1", "OpenAI-compatible base URL")
		embedModel = flag.String("model", "text-embedding-3-small", "embedding model")
		neo4jURL   = flag.String("neo4j", "neo4j://localhost:7687", "Neo4j bolt URL")
		neo4jUser  = flag.String("neo4j-user", "neo4j", "Neo4j username")
		neo4jPass  = flag.String("neo4j-pass", "password", "Neo4j password")
		qdrantAddr = flag.String("qdrant", "localhost:6334", "Qdrant gRPC address")
		collection = flag.String("collection", "partdesk", "Qdrant collection name")
		natsURL    = flag.String("nats", nats.DefaultURL, "NATS URL (with -publish)")
		publish    = flag.Bool("publish", false, "publish products to NATS instead of indexing directly")
		reset      = flag.Bool("reset", false, "delete all existing vectors before indexing")
	)
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	products, err := loadProducts(*file)
	if err != nil {
		log.Error("load products failed", "error", err)
		os.Exit(1)
	}
	log.Info("indexing products", "count", len(products))

	if *publish {
		if err := publishProducts(ctx, *natsURL, products, log); err != nil {
			log.Error("publish failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Connect Qdrant
	vectorStore, err := semantic.New(*qdrantAddr, *collection)
	if err != nil {
		log.Error("qdrant connect failed", "error", err)
		os.Exit(1)
	}
	defer vectorStore.Close()

	if err := vectorStore.EnsureCollection(ctx, vectorDims); err != nil {
		log.Error("ensure collection failed", "error", err)
		os.Exit(1)
	}
	if *reset {
		log.Info("clearing existing product vectors")
		if err := vectorStore.DeleteAll(ctx); err != nil {
			log.Error("delete all failed", "error", err)
			os.Exit(1)
		}
	}

	// Connect Neo4j
	driver, err := neo4j.NewDriverWithContext(*neo4jURL, neo4j.BasicAuth(*neo4jUser, *neo4jPass, ""))
	if err != nil {
		log.Error("neo4j connect failed", "error", err)
		os.Exit(1)
	}
	defer driver.Close(ctx)

	met := metrics.New()
	mIndexed := met.Counter("partdesk_index_products_total", "Products indexed")
	mErrors := met.Counter("partdesk_index_errors_total", "Products that failed to index")
	mEmbedDur := met.Histogram("partdesk_index_embed_duration_seconds", "Embed call time", nil)

	embedder := &timedEmbedder{
		inner: openai.New(openai.Config{
			BaseURL:           *openaiURL,
			APIKey:            os.Getenv("OPENAI_API_KEY"),
			Model:             *embedModel,
			RequestsPerSecond: 5,
		}),
		dur: mEmbedDur,
	}

	fitment := graph.New(driver)
	pipeline := ingest.NewPipeline(ingest.Deps{
		Embedder:    embedder,
		VectorStore: vectorStore,
		Fitment:     fitment,
		Logger:      log,
	})

	results := fn.ParMapResult(products, indexWorkers, func(p catalog.Product) fn.Result[string] {
		return pipeline(ctx, p)
	})

	failed := 0
	lastIndexed := ""
	for i, r := range results {
		p := products[i]
		if _, err := r.Unwrap(); err != nil {
			mErrors.Inc()
			failed++
			log.Error("index product failed", "part", p.PartNumber, "error", err)
			continue
		}
		mIndexed.Inc()
		lastIndexed = p.PartNumber
		log.Info("indexed product", "part", p.PartNumber, "name", p.Name)
	}

	// Read one node back so a silently empty graph shows up in the logs.
	if lastIndexed != "" {
		if _, err := fitment.GetPart(ctx, lastIndexed); err != nil {
			log.Warn("graph read-back failed", "part", lastIndexed, "error", err)
		}
	}

	summary := []any{"indexed", len(products) - failed, "failed", failed}
	if n, err := fitment.KnownModelCount(ctx); err != nil {
		log.Warn("model count failed", "error", err)
	} else {
		summary = append(summary, "known_models", n)
	}
	log.Info("indexing finished", summary...)

	fmt.Print(met.Render())
	if failed > 0 {
		os.Exit(1)
	}
}

func loadProducts(path string) ([]catalog.Product, error) {
	if path == "" {
		return catalog.SeedProducts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return products, nil
}

func publishProducts(ctx context.Context, url string, products []catalog.Product, log *slog.Logger) error {
	nc, err := nats.Connect(url)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()

	for _, p := range products {
		if err := natsutil.Publish(ctx, nc, ingest.IngestSubject, p); err != nil {
			return fmt.Errorf("publish %s: %w", p.PartNumber, err)
		}
		log.Info("published product", "part", p.PartNumber)
	}
	return nc.Flush()
}

// timedEmbedder records embed latency.
type timedEmbedder struct {
	inner *openai.Client
	dur   *metrics.Histogram
}

func (t *timedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	defer t.dur.Since(start)
	return t.inner.Embed(ctx, text)
}
