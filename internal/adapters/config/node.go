package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/adapters/logger"
	"go.trai.ch/beelder/internal/core/ports"
)

// NodeID is the unique identifier for the settings loader node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// Settings are read per run, the path comes from the command line.
			return NewLoader(log), nil
		},
	})
}
