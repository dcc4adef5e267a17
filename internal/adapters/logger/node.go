package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/core/ports"
)

// NodeID is the unique identifier for the logger node.
const NodeID graft.ID = "adapter.logger"

func init() {
	// The level starts at info; the app applies the configured level once settings are loaded.
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})
}
