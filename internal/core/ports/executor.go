// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/beelder/internal/core/domain"
)

// Executor runs queued compile, link and archive requests on a bounded pool of processes.
//
// Unit tests of the build engine use a hand-written fake instead of the generated mock: the
// engine only progresses when the executor calls back CompileReaped and FinalizeReaped from
// another goroutine, which a stubbed Enqueue cannot do.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Enqueue appends a unit to the queue without blocking. It is safe for concurrent use.
	//
	// For Compile units the owner's CompileQueued callback runs before Enqueue returns.
	Enqueue(unit *domain.ExecutableUnit) error

	// Stop asks the executor to finish the queued work and exit. In-flight processes are not killed.
	Stop()

	// Await blocks until the scheduling loop has exited.
	Await() error
}

// CommandRunner runs the user-defined command lines of a build-description file.
type CommandRunner interface {
	// Run executes one command line through the shell in dir.
	//
	// The env parameter holds extra variables exported to the command.
	//
	// It returns an error if the command exits with a non-zero status.
	Run(ctx context.Context, line, dir string, env map[string]string) error
}
