package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/adapters/logger"
	"go.trai.ch/beelder/internal/core/ports"
)

const NodeID graft.ID = "adapter.generator"

func init() {
	graft.Register(graft.Node[ports.Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Generator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewGenerator(log), nil
		},
	})
}
