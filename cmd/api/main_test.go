package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PartDeskAI/partdesk-mvp/engine/chat"
	"github.com/PartDeskAI/partdesk-mvp/engine/guard"
	"github.com/PartDeskAI/partdesk-mvp/engine/tools"
	"github.com/PartDeskAI/partdesk-mvp/engine/verify"
	"github.com/PartDeskAI/partdesk-mvp/pkg/llm"
	"github.com/PartDeskAI/partdesk-mvp/pkg/metrics"
)

type stubCompleter struct{}

func (stubCompleter) Complete(_ context.Context, _ []llm.Message, _ []llm.Tool) (llm.Response, error) {
	return llm.Response{Content: "Happy to help."}, nil
}

type stubRunner struct{}

func (stubRunner) ExecuteAll(_ context.Context, _ []tools.Call) []tools.Outcome { return nil }

func newTestChatHandler() http.HandlerFunc {
	p := chat.New(stubCompleter{}, stubRunner{}, guard.New(guard.Config{}), verify.New(nil), 0, slog.Default())
	return handleChat(p, metrics.New(), slog.Default())
}

func postChat(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newTestChatHandler()(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader(body)))
	return rec
}

func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != want {
		t.Fatalf("expected error %q, got %q", want, body["error"])
	}
}

func TestHandleChat_MalformedBody(t *testing.T) {
	assertJSONError(t, postChat(t, "{not json"), "invalid request body")
}

func TestHandleChat_NoUserMessage(t *testing.T) {
	rec := postChat(t, `{"messages":[{"id":"1","role":"assistant","content":"Hello!"}]}`)
	assertJSONError(t, rec, "No user message found")
}

func TestHandleChat_Success(t *testing.T) {
	rec := postChat(t, `{"messages":[{"id":"1","role":"user","content":"what is an ice maker assembly"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp chat.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not a chat response: %v", err)
	}
	if resp.Message.Content != "Happy to help." {
		t.Fatalf("unexpected answer %q", resp.Message.Content)
	}
	if resp.ProductResults == nil {
		t.Fatal("productResults must be present, even when empty")
	}
}
