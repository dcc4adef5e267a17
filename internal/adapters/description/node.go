package description

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/core/ports"
)

// NodeID is the unique identifier for the description parser Graft node.
const NodeID graft.ID = "adapter.description"

func init() {
	graft.Register(graft.Node[ports.DescriptionParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptionParser, error) {
			return NewParser(), nil
		},
	})
}
