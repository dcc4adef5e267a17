// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/beelder/internal/adapters/cmake"
	_ "go.trai.ch/beelder/internal/adapters/config"
	_ "go.trai.ch/beelder/internal/adapters/console"
	_ "go.trai.ch/beelder/internal/adapters/description"
	_ "go.trai.ch/beelder/internal/adapters/fs"
	_ "go.trai.ch/beelder/internal/adapters/logger"
	_ "go.trai.ch/beelder/internal/adapters/shell"
	_ "go.trai.ch/beelder/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/beelder/internal/app"
)
