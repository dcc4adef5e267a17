package unit

import (
	"context"
	"sync"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"golang.org/x/sync/semaphore"
)

// Services are the collaborators shared by every unit of a session.
type Services struct {
	Executor  ports.Executor
	Parser    ports.DescriptionParser
	Finder    ports.PathFinder
	Verifier  ports.Verifier
	Runner    ports.CommandRunner
	Generator ports.Generator
	Console   ports.Console
	Logger    ports.Logger
}

// Session is one run of the build graph: the registry, the services and the abort switch.
// The first fatal error cancels the session; every waiting unit then returns.
type Session struct {
	Services

	ctx        context.Context
	cancel     context.CancelCauseFunc
	invocation domain.Invocation
	settings   domain.Settings
	registry   *Registry
	parseSlots *semaphore.Weighted
	others     sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewSession creates a session bound to ctx.
func NewSession(ctx context.Context, services Services, invocation domain.Invocation, settings domain.Settings) *Session {
	ctx, cancel := context.WithCancelCause(ctx)
	if settings.OutputDir == "" {
		settings.OutputDir = domain.DefaultOutputDir
	}
	return &Session{
		Services:   services,
		ctx:        ctx,
		cancel:     cancel,
		invocation: invocation,
		settings:   settings,
		registry:   NewRegistry(),
		parseSlots: semaphore.NewWeighted(int64(max(1, settings.ParseJobs))),
	}
}

// Context returns the session context. It is cancelled when the session aborts.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Registry returns the session's unit registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Run builds the description file at rootPath and returns the root unit once every unit
// has finished and the executor has drained.
func (s *Session) Run(rootPath string) (*Unit, error) {
	root, _, err := s.registry.Resolve("", rootPath, domain.OperationBuild, func() *Unit {
		return newUnit(s, rootPath, domain.OperationBuild, true)
	})
	if err != nil {
		return nil, err
	}
	root.run()
	err = s.Err()
	s.cancel(nil)
	return root, err
}

// Abort ends the session with err. Only the first error is reported.
func (s *Session) Abort(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if cause := context.Cause(s.ctx); cause != nil {
		// Cancelled from outside; the waits that failed only echo the cause.
		s.err = cause
		return
	}
	s.err = err
	s.Console.Fatal(path, err)
	s.cancel(err)
}

// Err returns the error that aborted the session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// spawn runs fn on its own goroutine, tracked for drain.
func (s *Session) spawn(fn func()) {
	s.others.Add(1)
	go func() {
		defer s.others.Done()
		fn()
	}()
}

// drain waits for every non-root unit, then stops the executor and waits for it to exit.
func (s *Session) drain(rootPath string) {
	s.others.Wait()
	s.Executor.Stop()
	if err := s.Executor.Await(); err != nil && s.ctx.Err() == nil {
		s.Abort(rootPath, err)
	}
}
