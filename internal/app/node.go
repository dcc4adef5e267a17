package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/beelder/internal/adapters/cmake"              //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/console"            //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/description"        //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/beelder/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			description.NodeID,
			fs.FinderNodeID,
			fs.VerifierNodeID,
			shell.NodeID,
			cmake.NodeID,
			console.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.DescriptionParser](ctx)
	if err != nil {
		return nil, err
	}

	finder, err := graft.Dep[ports.PathFinder](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[ports.Generator](ctx)
	if err != nil {
		return nil, err
	}

	out, err := graft.Dep[ports.Console](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, parser, finder, verifier, runner, generator, out, log, telemetry), nil
}
