package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/internal/adapters/telemetry"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Telemetry = telemetry.Noop{}
	var _ ports.Vertex = telemetry.NoopVertex{}
}

func TestNoop_Record(t *testing.T) {
	rec := telemetry.NewNoop()

	ctx, vertex := rec.Record(context.Background(), "Compile main.c", ports.WithVertexID("abc"))
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, fromCtx)

	n, err := vertex.Stdout().Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	vertex.Log(domain.LogLevelInfo, "msg")
	vertex.Complete(nil)
	require.NoError(t, rec.Close())
}
