package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComplete_MissingAPIKey(t *testing.T) {
	c := New(Config{BaseURL: "http://localhost"})
	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestComplete_RequestShape(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Model: "deepseek-chat"})
	resp, err := c.Complete(context.Background(),
		[]Message{{Role: "user", Content: "hi"}},
		[]Tool{{Name: "search_products", Parameters: map[string]any{"type": "object"}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "hello" {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if auth != "Bearer k" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got["model"] != "deepseek-chat" {
		t.Fatalf("unexpected model %v", got["model"])
	}
	if got["temperature"].(float64) != 0.7 {
		t.Fatalf("expected default temperature 0.7, got %v", got["temperature"])
	}
	if got["max_tokens"].(float64) != 1500 {
		t.Fatalf("expected default max_tokens 1500, got %v", got["max_tokens"])
	}
	if got["tool_choice"] != "auto" {
		t.Fatalf("expected tool_choice auto, got %v", got["tool_choice"])
	}
	wireTools := got["tools"].([]any)
	first := wireTools[0].(map[string]any)
	if first["type"] != "function" {
		t.Fatalf("tools must be wrapped as function type: %v", first)
	}
	if first["function"].(map[string]any)["name"] != "search_products" {
		t.Fatalf("unexpected tool payload: %v", first)
	}
}

func TestComplete_NoToolChoiceWithoutTools(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	if _, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := got["tool_choice"]; present {
		t.Fatal("tool_choice must be omitted without tools")
	}
	if _, present := got["tools"]; present {
		t.Fatal("tools must be omitted when none offered")
	}
}

func TestComplete_ParsesToolCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"","tool_calls":[
			{"id":"call-1","function":{"name":"search_products","arguments":"{\"query\":\"ice maker\",\"limit\":3}"}}
		]}}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	resp, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(resp.ToolCalls))
	}
	call := resp.ToolCalls[0]
	if call.ID != "call-1" || call.Name != "search_products" {
		t.Fatalf("unexpected call %+v", call)
	}
	if call.Args["query"] != "ice maker" || call.Args["limit"].(float64) != 3 {
		t.Fatalf("unexpected args %v", call.Args)
	}
}

func TestComplete_MalformedArgumentsDegrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"tool_calls":[
			{"id":"call-1","function":{"name":"search_products","arguments":"not json"}}
		]}}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	resp, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("malformed arguments must not fail the call: %v", err)
	}
	if len(resp.ToolCalls) != 1 || len(resp.ToolCalls[0].Args) != 0 {
		t.Fatalf("expected empty args, got %+v", resp.ToolCalls)
	}
}

func TestComplete_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	if _, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	if _, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
