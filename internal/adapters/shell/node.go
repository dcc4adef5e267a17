package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/adapters/logger"
	"go.trai.ch/beelder/internal/adapters/telemetry/progrock"
	"go.trai.ch/beelder/internal/core/ports"
)

const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (ports.CommandRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, tel), nil
		},
	})
}
