// Package main implements the PartDesk API server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/PartDeskAI/partdesk-mvp/engine/chat"
	"github.com/PartDeskAI/partdesk-mvp/engine/graph"
	"github.com/PartDeskAI/partdesk-mvp/engine/guard"
	"github.com/PartDeskAI/partdesk-mvp/engine/ingest"
	"github.com/PartDeskAI/partdesk-mvp/engine/retrieval"
	"github.com/PartDeskAI/partdesk-mvp/engine/semantic"
	"github.com/PartDeskAI/partdesk-mvp/engine/tools"
	"github.com/PartDeskAI/partdesk-mvp/engine/verify"
	"github.com/PartDeskAI/partdesk-mvp/pkg/llm"
	"github.com/PartDeskAI/partdesk-mvp/pkg/metrics"
	"github.com/PartDeskAI/partdesk-mvp/pkg/mid"
	"github.com/PartDeskAI/partdesk-mvp/pkg/openai"
	"github.com/PartDeskAI/partdesk-mvp/pkg/partid"
	"github.com/PartDeskAI/partdesk-mvp/pkg/resilience"
)

// Config holds all environment-based configuration.
type Config struct {
	Port           string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	EmbeddingModel string
	Neo4jURL       string
	Neo4jUser      string
	Neo4jPass      string
	QdrantURL      string
	Collection     string
	NATSURL        string
	CORSOrigin     string
	TurnBudget     time.Duration
	RequestRate    float64
}

func loadConfig() Config {
	return Config{
		Port:           envOr("PORT", "8080"),
		LLMBaseURL:     envOr("LLM_BASE_URL", "https://api.deepseek.com"),
		LLMAPIKey:      envOr("LLM_API_KEY", ""),
		LLMModel:       envOr("LLM_MODEL", "deepseek-chat"),
		OpenAIBaseURL:  envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:   envOr("OPENAI_API_KEY", ""),
		EmbeddingModel: envOr("EMBEDDING_MODEL", "text-embedding-3-small"),
		Neo4jURL:       envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:      envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:      envOr("NEO4J_PASS", "password"),
		QdrantURL:      envOr("QDRANT_URL", "localhost:6334"),
		Collection:     envOr("QDRANT_COLLECTION", "partdesk"),
		NATSURL:        envOr("NATS_URL", ""),
		CORSOrigin:     envOr("CORS_ORIGIN", "*"),
		TurnBudget:     envDuration("TURN_BUDGET", chat.DefaultTurnBudget),
		RequestRate:    envFloat("REQUEST_RATE", 10),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Qdrant ---
	vectorStore, err := semantic.New(cfg.QdrantURL, cfg.Collection)
	if err != nil {
		return fmt.Errorf("qdrant connect: %w", err)
	}
	defer vectorStore.Close()

	// --- Connect to Neo4j ---
	neo4jDriver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}
	defer neo4jDriver.Close(ctx)

	fitment := graph.New(neo4jDriver)

	// --- Outbound model clients, breaker-protected ---
	embedder := &guardedEmbedder{
		inner: openai.New(openai.Config{
			BaseURL:           cfg.OpenAIBaseURL,
			APIKey:            cfg.OpenAIAPIKey,
			Model:             cfg.EmbeddingModel,
			RequestsPerSecond: 5,
		}),
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
	}
	completer := &guardedCompleter{
		inner: llm.New(llm.Config{
			BaseURL:           cfg.LLMBaseURL,
			APIKey:            cfg.LLMAPIKey,
			Model:             cfg.LLMModel,
			RequestsPerSecond: 5,
		}),
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
	}

	// --- Assemble the chat pipeline ---
	engine := retrieval.NewEngine(embedder, vectorStore, logger)
	dispatcher := tools.NewDispatcher(engine, fitment, logger)
	pipeline := chat.New(
		completer,
		dispatcher,
		guard.New(guard.DefaultConfig()),
		verify.New(nil),
		cfg.TurnBudget,
		logger,
	)

	// --- Optional NATS ingest consumer ---
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()

		sub, err := ingest.StartConsumer(nc, ingest.Deps{
			Embedder:    embedder,
			VectorStore: vectorStore,
			Fitment:     fitment,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("ingest consumer: %w", err)
		}
		defer sub.Unsubscribe()
		logger.Info("ingest consumer started", "subject", ingest.IngestSubject)
	}

	// --- Metrics ---
	reg := metrics.New()

	// --- Build HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.Handle("GET /metrics", reg.Handler())
	mux.HandleFunc("POST /api/chat", handleChat(pipeline, reg, logger))

	limiter := resilience.NewLimiter(resilience.LimiterOpts{Rate: cfg.RequestRate, Burst: int(cfg.RequestRate) * 2})
	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.OTel("partdesk-api"),
		mid.CORS(cfg.CORSOrigin),
		mid.RateLimit(limiter),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.TurnBudget + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// --- Handlers ---

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errorResponse mirrors the success shape so clients can always render
// an assistant message.
type errorResponse struct {
	Error   string       `json:"error"`
	Message chat.Message `json:"message"`
}

func handleChat(pipeline *chat.Pipeline, reg *metrics.Registry, logger *slog.Logger) http.HandlerFunc {
	turns := reg.Counter("partdesk_chat_turns_total", "Total chat turns processed")
	failures := reg.Counter("partdesk_chat_failures_total", "Chat turns that ended in error")
	duration := reg.Histogram("partdesk_chat_turn_seconds", "Chat turn duration in seconds", nil)

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		turns.Inc()

		var req chat.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		// Clients usually extract identifiers themselves; fall back to
		// server-side extraction when they did not.
		if req.PartNumber == "" && req.ModelNumber == "" {
			if text, ok := lastUserContent(req.Messages); ok {
				m := partid.Extract(text)
				req.PartNumber = m.PartNumber
				req.ModelNumber = m.ModelNumber
			}
		}

		resp, err := pipeline.Run(r.Context(), req)
		duration.Since(start)
		if err != nil {
			if errors.Is(err, chat.ErrNoUserMessage) {
				writeBadRequest(w, "No user message found")
				return
			}
			failures.Inc()
			logger.Error("chat turn failed", "err", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(errorResponse{
				Error: err.Error(),
				Message: chat.Message{
					ID:        uuid.NewString(),
					Role:      "assistant",
					Content:   "I'm sorry, I encountered an error while processing your request. Please try again or rephrase your question.",
					Timestamp: time.Now().UnixMilli(),
				},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func lastUserContent(messages []chat.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content, true
		}
	}
	return "", false
}

// --- Breaker adapters ---

// guardedEmbedder wraps the embeddings client with a circuit breaker.
type guardedEmbedder struct {
	inner   *openai.Client
	breaker *resilience.Breaker
}

func (g *guardedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		vec, err = g.inner.Embed(ctx, text)
		return err
	})
	return vec, err
}

// guardedCompleter wraps the chat model client with a circuit breaker.
type guardedCompleter struct {
	inner   *llm.Client
	breaker *resilience.Breaker
}

func (g *guardedCompleter) Complete(ctx context.Context, messages []llm.Message, toolDefs []llm.Tool) (llm.Response, error) {
	var resp llm.Response
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = g.inner.Complete(ctx, messages, toolDefs)
		return err
	})
	return resp, err
}
