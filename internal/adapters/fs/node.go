package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	FinderNodeID   graft.ID = "adapter.fs.finder"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
)

func init() {
	// Walker Node (Concrete implementation needed by Finder)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.PathFinder]{
		ID:        FinderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.PathFinder, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewFinder(walker, domain.DefaultOutputDir), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})
}
