package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	r := New()
	c := r.Counter("requests_total", "Total requests.")
	c.Inc()
	c.Add(4)
	if c.Value() != 5 {
		t.Fatalf("expected 5, got %d", c.Value())
	}
	if again := r.Counter("requests_total", ""); again != c {
		t.Fatal("same name must return the same counter")
	}
}

func TestGauge(t *testing.T) {
	r := New()
	g := r.Gauge("inflight", "")
	g.Set(3)
	g.Inc()
	g.Dec()
	if g.Value() != 3 {
		t.Fatalf("expected 3, got %d", g.Value())
	}
}

func TestHistogramBuckets(t *testing.T) {
	r := New()
	h := r.Histogram("latency_seconds", "", []float64{0.1, 1, 10})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(100)

	out := r.Render()
	for _, want := range []string{
		`latency_seconds_bucket{le="0.1"} 1`,
		`latency_seconds_bucket{le="1"} 2`,
		`latency_seconds_bucket{le="10"} 2`,
		`latency_seconds_bucket{le="+Inf"} 3`,
		`latency_seconds_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderFormat(t *testing.T) {
	r := New()
	r.Counter("chat_turns_total", "Chat turns served.").Inc()
	r.Gauge("queue_depth", "").Set(2)

	out := r.Render()
	if !strings.Contains(out, "# HELP chat_turns_total Chat turns served.\n") {
		t.Fatalf("missing HELP line:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE chat_turns_total counter\n") {
		t.Fatalf("missing TYPE line:\n%s", out)
	}
	if !strings.Contains(out, "chat_turns_total 1\n") {
		t.Fatalf("missing counter sample:\n%s", out)
	}
	if !strings.Contains(out, "queue_depth 2\n") {
		t.Fatalf("missing gauge sample:\n%s", out)
	}
}

func TestWithLabels(t *testing.T) {
	if got := WithLabels("hits", "tool", "search_products"); got != `hits{tool="search_products"}` {
		t.Fatalf("unexpected name %q", got)
	}
	if got := WithLabels("hits"); got != "hits" {
		t.Fatalf("no labels must return the bare name, got %q", got)
	}
	if got := WithLabels("hits", "dangling"); got != "hits" {
		t.Fatalf("odd label pairs must be ignored, got %q", got)
	}
}

func TestLabeledSeriesShareTypeHeader(t *testing.T) {
	r := New()
	r.Counter(WithLabels("tool_calls_total", "tool", "a"), "Tool calls.").Inc()
	r.Counter(WithLabels("tool_calls_total", "tool", "b"), "").Add(2)

	out := r.Render()
	if strings.Count(out, "# TYPE tool_calls_total counter") != 1 {
		t.Fatalf("expected a single TYPE header:\n%s", out)
	}
	if !strings.Contains(out, `tool_calls_total{tool="a"} 1`) || !strings.Contains(out, `tool_calls_total{tool="b"} 2`) {
		t.Fatalf("missing labeled samples:\n%s", out)
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.Counter("hits", "").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "hits 1") {
		t.Fatalf("missing sample in body:\n%s", rec.Body.String())
	}
}
