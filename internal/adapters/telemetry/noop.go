// Package telemetry provides telemetry adapters that record nothing.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() ports.Telemetry {
	return Noop{}
}

// Record returns a vertex that discards everything.
func (Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := NoopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (Noop) Close() error {
	return nil
}

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Stdout returns io.Discard.
func (NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (NoopVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (NoopVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (NoopVertex) Complete(error) {}
