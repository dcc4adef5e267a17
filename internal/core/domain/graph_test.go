package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_AddEdge(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("/p/a.bee")
	b := domain.NewInternedString("/p/b.bee")
	c := domain.NewInternedString("/p/c.bee")

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(a, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Diamond references are not cycles.
	if err := g.AddEdge(b, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Duplicate edges are ignored.
	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refs := g.References(a)
	if len(refs) != 2 || refs[0] != b || refs[1] != c {
		t.Errorf("unexpected references of a: %v", domain.Strings(refs))
	}
}

func TestGraph_AddEdge_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("/p/a.bee")
	b := domain.NewInternedString("/p/b.bee")
	c := domain.NewInternedString("/p/c.bee")

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("failed to add a -> b: %v", err)
	}
	if err := g.AddEdge(b, c); err != nil {
		t.Fatalf("failed to add b -> c: %v", err)
	}

	err := g.AddEdge(c, a)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	cycle, ok := meta["cycle"].(string)
	if !ok || cycle != "/p/c.bee -> /p/a.bee -> /p/b.bee -> /p/c.bee" {
		t.Errorf("unexpected cycle metadata: %v", meta["cycle"])
	}

	// The rejected edge is not recorded.
	if refs := g.References(c); len(refs) != 0 {
		t.Errorf("expected no references of c, got %v", domain.Strings(refs))
	}
}

func TestGraph_AddEdge_SelfReference(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("/p/a.bee")

	err := g.AddEdge(a, a)
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}
