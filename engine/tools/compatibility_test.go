package tools

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/PartDeskAI/partdesk-mvp/engine/graph"
)

func compatOutput(t *testing.T, d *Dispatcher, part, model string) CompatOutput {
	t.Helper()
	out, err := d.Execute(context.Background(), Call{
		Name: ToolCheckCompatibility,
		Args: map[string]any{"partNumber": part, "modelNumber": model},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.(CompatOutput)
}

func TestCheckCompatibility_ExactMatch(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS", "GSH25JSDBSS"),
	)}
	d := NewDispatcher(searcher, nil, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "gsh25jstass")
	if !out.Compatible {
		t.Fatalf("expected compatible verdict, got %+v", out)
	}
	if !strings.Contains(out.Details, "is compatible with model gsh25jstass") {
		t.Fatalf("unexpected details: %q", out.Details)
	}
}

func TestCheckCompatibility_NotCompatible(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	d := NewDispatcher(searcher, nil, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "WDT780SAEM1")
	if out.Compatible {
		t.Fatalf("expected incompatible verdict, got %+v", out)
	}
	if out.Details != "Part WR55X10942 (Defrost Heater) is NOT compatible with model WDT780SAEM1." {
		t.Fatalf("unexpected details: %q", out.Details)
	}
}

func TestCheckCompatibility_NoResults(t *testing.T) {
	d := NewDispatcher(&mockSearcher{}, nil, slog.Default())

	out := compatOutput(t, d, "XYZ123", "WDT780SAEM1")
	if out.Compatible {
		t.Fatal("expected incompatible verdict")
	}
	if out.Details != "No compatibility information found for part XYZ123 with model WDT780SAEM1." {
		t.Fatalf("unexpected details: %q", out.Details)
	}
}

func TestCheckCompatibility_DescriptivePhrase(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("PS11752778", "Ice Maker Assembly", "WRS325SDHZ00"),
	)}
	d := NewDispatcher(searcher, nil, slog.Default())

	compatOutput(t, d, "the ice maker", "WRS325SDHZ00")

	args := searcher.args[0]
	if args.PartNumber != "" {
		t.Fatalf("descriptive phrase must not become a part-number filter: %+v", args)
	}
	if args.Query != "the ice maker WRS325SDHZ00" {
		t.Fatalf("unexpected composite query: %q", args.Query)
	}
}

func TestCheckCompatibility_LowercasePartBecomesFilter(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	d := NewDispatcher(searcher, nil, slog.Default())

	compatOutput(t, d, "wr55x10942", "GSH25JSTASS")

	if got := searcher.args[0].PartNumber; got != "WR55X10942" {
		t.Fatalf("expected uppercased part-number filter, got %q", got)
	}
}

func TestCheckCompatibility_KnownPartsDetail(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	g := &mockGraph{parts: []graph.Part{
		{PartNumber: "WDT001"}, {PartNumber: "WDT002"}, {PartNumber: "WDT003"},
	}}
	d := NewDispatcher(searcher, g, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "WDT780SAEM1")
	if out.Compatible {
		t.Fatal("expected incompatible verdict")
	}
	if !strings.Contains(out.Details, "There are 3 parts on record that do fit this model.") {
		t.Fatalf("expected known-parts detail, got %q", out.Details)
	}
}

func TestCheckCompatibility_NegativeGraphFailureOmitsDetail(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	g := &mockGraph{err: errors.New("neo4j down")}
	d := NewDispatcher(searcher, g, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "WDT780SAEM1")
	if out.Details != "Part WR55X10942 (Defrost Heater) is NOT compatible with model WDT780SAEM1." {
		t.Fatalf("graph failure must leave the plain detail: %q", out.Details)
	}
}

func TestCheckCompatibility_FitmentDetail(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	graph := &mockGraph{models: []string{"GSH25JSTASS", "GSH25JSDBSS", "PSH23PSTASV"}}
	d := NewDispatcher(searcher, graph, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "GSH25JSTASS")
	if !strings.Contains(out.Details, "It also fits 2 other known models.") {
		t.Fatalf("expected fitment detail, got %q", out.Details)
	}
}

func TestCheckCompatibility_GraphFailureOmitsDetail(t *testing.T) {
	searcher := &mockSearcher{results: searchResults(
		product("WR55X10942", "Defrost Heater", "GSH25JSTASS"),
	)}
	graph := &mockGraph{err: errors.New("neo4j down")}
	d := NewDispatcher(searcher, graph, slog.Default())

	out := compatOutput(t, d, "WR55X10942", "GSH25JSTASS")
	if !out.Compatible {
		t.Fatal("graph failure must not change the verdict")
	}
	if strings.Contains(out.Details, "also fits") {
		t.Fatalf("graph failure must omit fitment detail: %q", out.Details)
	}
}
