// Package chat orchestrates one assistant turn: scope screening, model
// completions, concurrent tool execution, grounding context, and answer
// verification, all inside a fixed turn budget.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/guard"
	"github.com/PartDeskAI/partdesk-mvp/engine/tools"
	"github.com/PartDeskAI/partdesk-mvp/engine/verify"
	"github.com/PartDeskAI/partdesk-mvp/pkg/llm"
)

// DefaultTurnBudget bounds one full turn, tool calls included.
const DefaultTurnBudget = 30 * time.Second

// ErrNoUserMessage is returned when a request carries no user message.
var ErrNoUserMessage = errors.New("chat: no user message found")

// Message is one conversation message in API form.
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Request is one chat turn from the client. PartNumber and ModelNumber
// are optional hints the client extracted from the user's text.
type Request struct {
	Messages    []Message `json:"messages"`
	PartNumber  string    `json:"partNumber,omitempty"`
	ModelNumber string    `json:"modelNumber,omitempty"`
}

// Response is the assistant's reply plus any products retrieved while
// answering.
type Response struct {
	Message        Message             `json:"message"`
	ProductResults []catalog.Retrieved `json:"productResults"`
}

// turnState tracks progress through one assistant turn.
type turnState int

const (
	stateAwaitingFirstCompletion turnState = iota
	stateExecutingTools
	stateAwaitingFinalCompletion
	stateDone
)

// Completer is the language model surface the pipeline needs.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, tools []llm.Tool) (llm.Response, error)
}

// ToolRunner executes tool calls with per-call error isolation.
type ToolRunner interface {
	ExecuteAll(ctx context.Context, calls []tools.Call) []tools.Outcome
}

// Pipeline runs assistant turns.
type Pipeline struct {
	model      Completer
	runner     ToolRunner
	guard      *guard.Guard
	verifier   *verify.Verifier
	turnBudget time.Duration
	logger     *slog.Logger
}

// New creates a pipeline. A zero turnBudget takes DefaultTurnBudget.
func New(model Completer, runner ToolRunner, g *guard.Guard, v *verify.Verifier, turnBudget time.Duration, logger *slog.Logger) *Pipeline {
	if turnBudget <= 0 {
		turnBudget = DefaultTurnBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		model:      model,
		runner:     runner,
		guard:      g,
		verifier:   v,
		turnBudget: turnBudget,
		logger:     logger,
	}
}

// Run executes one assistant turn. Out-of-scope queries short-circuit
// to the redirect message without any model call.
func (p *Pipeline) Run(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.turnBudget)
	defer cancel()

	userText, ok := lastUserMessage(req.Messages)
	if !ok {
		return Response{}, ErrNoUserMessage
	}

	if p.guard.CheckQuery(userText) {
		p.logger.Info("chat: query out of scope, redirecting")
		return redirectResponse(), nil
	}

	msgs := toModelMessages(req.Messages)
	if !hasSystemMessage(req.Messages) {
		msgs = append([]llm.Message{{Role: "system", Content: systemPrompt}}, msgs...)
	}
	if hint := detectedHint(req.PartNumber, req.ModelNumber); hint != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: hint})
	}

	var (
		state          = stateAwaitingFirstCompletion
		content        string
		toolCalls      []tools.Call
		productResults []catalog.Retrieved
	)

	for state != stateDone {
		switch state {
		case stateAwaitingFirstCompletion:
			resp, err := p.model.Complete(ctx, msgs, tools.Definitions())
			if err != nil {
				return Response{}, fmt.Errorf("chat: first completion: %w: %v", catalog.ErrLanguageModel, err)
			}
			content = resp.Content
			toolCalls = toToolCalls(resp.ToolCalls)
			if len(toolCalls) == 0 {
				state = stateDone
			} else {
				state = stateExecutingTools
			}

		case stateExecutingTools:
			p.logger.Info("chat: executing tool calls", "count", len(toolCalls))
			outcomes := p.runner.ExecuteAll(ctx, toolCalls)

			toolContext, results := buildToolContext(outcomes, userText)
			productResults = results
			if toolContext == "" {
				state = stateDone
				break
			}
			msgs = append(msgs, llm.Message{
				Role:    "system",
				Content: "Use the following information to enhance your response:" + toolContext + "\n\nIncorporate this information naturally into your response without explicitly mentioning that you received this additional context.",
			})
			state = stateAwaitingFinalCompletion

		case stateAwaitingFinalCompletion:
			resp, err := p.model.Complete(ctx, msgs, nil)
			if err != nil {
				return Response{}, fmt.Errorf("chat: final completion: %w: %v", catalog.ErrLanguageModel, err)
			}
			content = resp.Content
			state = stateDone
		}
	}

	if p.guard.CheckAnswer(content) {
		p.logger.Warn("chat: answer drifted out of scope, replacing")
		content = guard.RedirectMessage
	}
	if len(productResults) > 0 {
		content = p.verifier.Verify(content, productResults)
	}

	return Response{
		Message:        assistantMessage(content),
		ProductResults: ensureResults(productResults),
	}, nil
}

func lastUserMessage(messages []Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content, true
		}
	}
	return "", false
}

func hasSystemMessage(messages []Message) bool {
	for _, m := range messages {
		if m.Role == "system" {
			return true
		}
	}
	return false
}

func toModelMessages(messages []Message) []llm.Message {
	out := make([]llm.Message, len(messages))
	for i, m := range messages {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func toToolCalls(calls []llm.ToolCall) []tools.Call {
	out := make([]tools.Call, len(calls))
	for i, c := range calls {
		out[i] = tools.Call{ID: c.ID, Name: c.Name, Args: c.Args}
	}
	return out
}

func redirectResponse() Response {
	return Response{
		Message:        assistantMessage(guard.RedirectMessage),
		ProductResults: []catalog.Retrieved{},
	}
}

func assistantMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
}

func ensureResults(results []catalog.Retrieved) []catalog.Retrieved {
	if results == nil {
		return []catalog.Retrieved{}
	}
	return results
}
