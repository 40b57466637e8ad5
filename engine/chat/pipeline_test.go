package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
	"github.com/PartDeskAI/partdesk-mvp/engine/guard"
	"github.com/PartDeskAI/partdesk-mvp/engine/tools"
	"github.com/PartDeskAI/partdesk-mvp/engine/verify"
	"github.com/PartDeskAI/partdesk-mvp/pkg/llm"
)

// fakeCompleter returns one staged response per call and records the
// message and tool lists it saw.
type fakeCompleter struct {
	responses []llm.Response
	err       error
	calls     int
	messages  [][]llm.Message
	toolDefs  [][]llm.Tool
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message, defs []llm.Tool) (llm.Response, error) {
	f.messages = append(f.messages, messages)
	f.toolDefs = append(f.toolDefs, defs)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

type fakeRunner struct {
	outcomes []tools.Outcome
	calls    [][]tools.Call
}

func (f *fakeRunner) ExecuteAll(_ context.Context, calls []tools.Call) []tools.Outcome {
	f.calls = append(f.calls, calls)
	return f.outcomes
}

func newTestPipeline(c Completer, r ToolRunner) *Pipeline {
	return New(c, r, guard.New(guard.Config{}), verify.New(nil), 0, slog.Default())
}

func userRequest(text string) Request {
	return Request{Messages: []Message{{ID: "1", Role: "user", Content: text}}}
}

func iceMakerResult() catalog.Retrieved {
	return catalog.Retrieved{Product: catalog.Product{
		PartNumber:       "PS11752778",
		Name:             "Ice Maker Assembly",
		Category:         "refrigerator",
		Brand:            "Whirlpool",
		Price:            89.95,
		InStock:          true,
		StockCount:       12,
		Description:      "Complete ice maker assembly.",
		CompatibleModels: []string{"WRS325SDHZ00"},
	}, Score: 0.9}
}

// deadlineCompleter records the deadline of the context it completes under.
type deadlineCompleter struct {
	resp        llm.Response
	deadline    time.Time
	hasDeadline bool
}

func (d *deadlineCompleter) Complete(ctx context.Context, _ []llm.Message, _ []llm.Tool) (llm.Response, error) {
	d.deadline, d.hasDeadline = ctx.Deadline()
	return d.resp, nil
}

// blockedCompleter stands in for a model call that never returns on its own.
type blockedCompleter struct{}

func (blockedCompleter) Complete(ctx context.Context, _ []llm.Message, _ []llm.Tool) (llm.Response, error) {
	<-ctx.Done()
	return llm.Response{}, ctx.Err()
}

func TestRun_TurnBudgetSetsDeadline(t *testing.T) {
	budget := 5 * time.Second
	completer := &deadlineCompleter{resp: llm.Response{Content: "Happy to help."}}
	p := New(completer, &fakeRunner{}, guard.New(guard.Config{}), verify.New(nil), budget, slog.Default())

	start := time.Now()
	if _, err := p.Run(context.Background(), userRequest("what is an ice maker assembly")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completer.hasDeadline {
		t.Fatal("completion context must carry a deadline")
	}
	if remaining := completer.deadline.Sub(start); remaining <= 0 || remaining > budget {
		t.Fatalf("deadline %v from start is outside the %v budget", remaining, budget)
	}
}

func TestRun_ExhaustedBudgetFailsTurn(t *testing.T) {
	p := New(blockedCompleter{}, &fakeRunner{}, guard.New(guard.Config{}), verify.New(nil), time.Millisecond, slog.Default())

	_, err := p.Run(context.Background(), userRequest("what is an ice maker assembly"))
	if !errors.Is(err, catalog.ErrLanguageModel) {
		t.Fatalf("expected language model error after budget expiry, got %v", err)
	}
}

func TestRun_NoUserMessage(t *testing.T) {
	p := newTestPipeline(&fakeCompleter{}, &fakeRunner{})

	_, err := p.Run(context.Background(), Request{Messages: []Message{
		{Role: "assistant", Content: "Hello!"},
	}})
	if !errors.Is(err, ErrNoUserMessage) {
		t.Fatalf("expected ErrNoUserMessage, got %v", err)
	}
}

func TestRun_OutOfScopeRedirect(t *testing.T) {
	completer := &fakeCompleter{}
	p := newTestPipeline(completer, &fakeRunner{})

	resp, err := p.Run(context.Background(), userRequest("how do I fix my oven"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message.Content != guard.RedirectMessage {
		t.Fatalf("expected redirect message, got %q", resp.Message.Content)
	}
	if resp.Message.Role != "assistant" {
		t.Fatalf("expected assistant role, got %q", resp.Message.Role)
	}
	if completer.calls != 0 {
		t.Fatalf("out-of-scope query must not reach the model, got %d calls", completer.calls)
	}
	if resp.ProductResults == nil || len(resp.ProductResults) != 0 {
		t.Fatalf("expected empty product results, got %v", resp.ProductResults)
	}
}

func TestRun_DirectAnswer(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{
		{Content: "An ice maker assembly replaces the whole unit."},
	}}
	p := newTestPipeline(completer, &fakeRunner{})

	resp, err := p.Run(context.Background(), userRequest("what is an ice maker assembly"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completer.calls != 1 {
		t.Fatalf("expected a single completion, got %d", completer.calls)
	}
	if resp.Message.Content != "An ice maker assembly replaces the whole unit." {
		t.Fatalf("unexpected content: %q", resp.Message.Content)
	}
	if len(resp.ProductResults) != 0 {
		t.Fatalf("expected no product results, got %v", resp.ProductResults)
	}

	// First completion advertises the tool set and injects the system prompt.
	if len(completer.toolDefs[0]) != 4 {
		t.Fatalf("expected 4 tool definitions, got %d", len(completer.toolDefs[0]))
	}
	if completer.messages[0][0].Role != "system" {
		t.Fatal("expected injected system prompt as first message")
	}
}

func TestRun_ToolFlow(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:   "call-1",
			Name: tools.ToolSearchProducts,
			Args: map[string]any{"query": "ice maker"},
		}}},
		{Content: "I found the Ice Maker Assembly PS11752778 for you."},
	}}
	runner := &fakeRunner{outcomes: []tools.Outcome{{
		Call:   tools.Call{ID: "call-1", Name: tools.ToolSearchProducts, Args: map[string]any{"query": "ice maker"}},
		Result: tools.SearchOutput{Products: []catalog.Retrieved{iceMakerResult()}},
	}}}
	p := newTestPipeline(completer, runner)

	resp, err := p.Run(context.Background(), userRequest("find me an ice maker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completer.calls != 2 {
		t.Fatalf("expected two completions, got %d", completer.calls)
	}
	if len(runner.calls) != 1 || runner.calls[0][0].ID != "call-1" {
		t.Fatalf("expected one dispatched call, got %v", runner.calls)
	}

	// The final completion sees the grounding context and no tool defs.
	finalMsgs := completer.messages[1]
	last := finalMsgs[len(finalMsgs)-1]
	if last.Role != "system" || !strings.Contains(last.Content, "### RETRIEVED PRODUCT INFORMATION ###") {
		t.Fatalf("expected grounding context message, got %+v", last)
	}
	if completer.toolDefs[1] != nil {
		t.Fatal("final completion must not advertise tools")
	}

	if len(resp.ProductResults) != 1 || resp.ProductResults[0].PartNumber != "PS11752778" {
		t.Fatalf("expected refined product results, got %+v", resp.ProductResults)
	}
	if resp.Message.Content != "I found the Ice Maker Assembly PS11752778 for you." {
		t.Fatalf("unexpected content: %q", resp.Message.Content)
	}
}

func TestRun_ToolErrorStillAnswers(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:   "call-1",
			Name: tools.ToolSearchProducts,
			Args: map[string]any{"query": "ice maker"},
		}}},
		{Content: "I couldn't search right now, but I can still help."},
	}}
	runner := &fakeRunner{outcomes: []tools.Outcome{{
		Call: tools.Call{ID: "call-1", Name: tools.ToolSearchProducts},
		Err:  &catalog.ToolError{Tool: tools.ToolSearchProducts, Err: errors.New("index down")},
	}}}
	p := newTestPipeline(completer, runner)

	resp, err := p.Run(context.Background(), userRequest("find me an ice maker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	finalMsgs := completer.messages[1]
	last := finalMsgs[len(finalMsgs)-1]
	if !strings.Contains(last.Content, "Error executing search_products") {
		t.Fatalf("expected error line in context, got %q", last.Content)
	}
	if len(resp.ProductResults) != 0 {
		t.Fatalf("expected no product results, got %v", resp.ProductResults)
	}
}

func TestRun_FirstCompletionFailure(t *testing.T) {
	p := newTestPipeline(&fakeCompleter{err: errors.New("timeout")}, &fakeRunner{})

	_, err := p.Run(context.Background(), userRequest("find me an ice maker"))
	if !errors.Is(err, catalog.ErrLanguageModel) {
		t.Fatalf("expected ErrLanguageModel, got %v", err)
	}
}

func TestRun_AnswerDriftReplaced(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{
		{Content: "I recommend a new oven heating element for that."},
	}}
	p := newTestPipeline(completer, &fakeRunner{})

	resp, err := p.Run(context.Background(), userRequest("my fridge is making noise"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message.Content != guard.RedirectMessage {
		t.Fatalf("expected redirect on answer drift, got %q", resp.Message.Content)
	}
}

func TestRun_VerifierCorrectsMisdescription(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:   "call-1",
			Name: tools.ToolSearchProducts,
			Args: map[string]any{"query": "ice maker"},
		}}},
		{Content: "Part PS11752778 is a water filter for your refrigerator."},
	}}
	runner := &fakeRunner{outcomes: []tools.Outcome{{
		Call:   tools.Call{ID: "call-1", Name: tools.ToolSearchProducts, Args: map[string]any{"query": "ice maker"}},
		Result: tools.SearchOutput{Products: []catalog.Retrieved{iceMakerResult()}},
	}}}
	p := newTestPipeline(completer, runner)

	resp, err := p.Run(context.Background(), userRequest("find me an ice maker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Message.Content, "I found information about part number PS11752778:") {
		t.Fatalf("expected corrected summary, got %q", resp.Message.Content)
	}
}

func TestRun_DetectedHintAppended(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{{Content: "ok"}}}
	p := newTestPipeline(completer, &fakeRunner{})

	req := userRequest("is this part compatible")
	req.PartNumber = "PS11752778"
	req.ModelNumber = "WRS325SDHZ00"
	if _, err := p.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := completer.messages[0]
	last := msgs[len(msgs)-1]
	if last.Role != "system" {
		t.Fatalf("expected hint as system message, got role %q", last.Role)
	}
	if !strings.Contains(last.Content, "PS11752778") || !strings.Contains(last.Content, "WRS325SDHZ00") {
		t.Fatalf("hint missing identifiers: %q", last.Content)
	}
}

func TestRun_ExistingSystemPromptKept(t *testing.T) {
	completer := &fakeCompleter{responses: []llm.Response{{Content: "ok"}}}
	p := newTestPipeline(completer, &fakeRunner{})

	req := Request{Messages: []Message{
		{Role: "system", Content: "custom prompt"},
		{Role: "user", Content: "hello, I need a fridge part"},
	}}
	if _, err := p.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := completer.messages[0]
	if len(msgs) != 2 || msgs[0].Content != "custom prompt" {
		t.Fatalf("existing system prompt must be kept as-is, got %+v", msgs)
	}
}
