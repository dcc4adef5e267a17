package ports

import (
	"context"
	"io"

	"go.trai.ch/beelder/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of external tool invocations.
type Telemetry interface {
	// Record starts a new vertex.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded invocation.
type Vertex interface {
	// Stdout returns a writer to capture standard output stream.
	Stdout() io.Writer
	// Stderr returns a writer to capture error output stream.
	Stderr() io.Writer
	// Log records a message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished (successfully or with an error).
	Complete(err error)
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// ID is a stable identity of the recorded work. The vertex name is used when empty.
	ID string
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithVertexID sets the identity of the vertex.
func WithVertexID(id string) VertexOption {
	return func(c *VertexConfig) {
		c.ID = id
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
