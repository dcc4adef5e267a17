package unit_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/internal/adapters/description"
	"go.trai.ch/beelder/internal/adapters/fs"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports/mocks"
	"go.trai.ch/beelder/internal/engine/unit"
	"go.uber.org/mock/gomock"
)

// fakeExecutor reaps every unit on its own goroutine, creating the unit's output file
// unless fail says otherwise.
type fakeExecutor struct {
	mu      sync.Mutex
	units   []*domain.ExecutableUnit
	stopped bool
	wg      sync.WaitGroup
	fail    func(*domain.ExecutableUnit) bool
}

func (e *fakeExecutor) Enqueue(u *domain.ExecutableUnit) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return domain.ErrExecutorStopped
	}
	e.units = append(e.units, u)
	e.mu.Unlock()

	if u.Op == domain.OpCompile {
		u.Owner.CompileQueued()
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		failed := e.fail != nil && e.fail(u)
		if !failed {
			out := filepath.Join(u.WorkingDir, u.Binary)
			if err := os.MkdirAll(filepath.Dir(out), 0o750); err == nil {
				_ = os.WriteFile(out, []byte(u.Op.String()), 0o600)
			}
		}
		if u.Op == domain.OpCompile {
			u.Owner.CompileReaped(failed)
		} else {
			u.Owner.FinalizeReaped(failed)
		}
	}()
	return nil
}

func (e *fakeExecutor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
}

func (e *fakeExecutor) Await() error {
	e.wg.Wait()
	return nil
}

func (e *fakeExecutor) enqueued() []*domain.ExecutableUnit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*domain.ExecutableUnit(nil), e.units...)
}

// find returns the enqueued unit of op whose subject is subject, and its position.
func (e *fakeExecutor) find(op domain.OpKind, workingDir, subject string) (*domain.ExecutableUnit, int) {
	for i, u := range e.enqueued() {
		if u.Op == op && u.WorkingDir == workingDir && u.Subject() == subject {
			return u, i
		}
	}
	return nil, -1
}

func (e *fakeExecutor) count(op domain.OpKind) int {
	n := 0
	for _, u := range e.enqueued() {
		if u.Op == op {
			n++
		}
	}
	return n
}

type harness struct {
	dir       string
	exec      *fakeExecutor
	console   *mocks.MockConsole
	runner    *mocks.MockCommandRunner
	generator *mocks.MockGenerator
	logger    *mocks.MockLogger
}

// newHarness writes files below a fresh project directory. Keys are slash-separated paths.
func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	return &harness{
		dir:       dir,
		exec:      &fakeExecutor{},
		console:   mocks.NewMockConsole(ctrl),
		runner:    mocks.NewMockCommandRunner(ctrl),
		generator: mocks.NewMockGenerator(ctrl),
		logger:    logger,
	}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, filepath.FromSlash(name))
}

func (h *harness) run(t *testing.T, args ...string) (*unit.Session, *unit.Unit, error) {
	t.Helper()
	return h.runWithContext(t, context.Background(), args...)
}

func (h *harness) runWithContext(t *testing.T, ctx context.Context, args ...string) (*unit.Session, *unit.Unit, error) {
	t.Helper()
	finder := fs.NewFinder(fs.NewWalker(), domain.DefaultOutputDir)
	rootPath, err := finder.Root(h.dir)
	require.NoError(t, err)

	session := unit.NewSession(ctx, unit.Services{
		Executor:  h.exec,
		Parser:    description.NewParser(),
		Finder:    finder,
		Verifier:  fs.NewVerifier(),
		Runner:    h.runner,
		Generator: h.generator,
		Console:   h.console,
		Logger:    h.logger,
	}, domain.NewInvocation(args), domain.Settings{
		Jobs:      2,
		ParseJobs: 2,
		OutputDir: domain.DefaultOutputDir,
	})

	root, err := session.Run(rootPath)
	return session, root, err
}

func (h *harness) unit(t *testing.T, session *unit.Session, name string) *unit.Unit {
	t.Helper()
	u, ok := session.Registry().Lookup(h.path(name))
	require.True(t, ok, "unit %s is not registered", name)
	return u
}

// requireMonotonic checks that every unit only moved forward through its states.
func requireMonotonic(t *testing.T, session *unit.Session) {
	t.Helper()
	for _, u := range session.Registry().Units() {
		history := u.History()
		require.Equal(t, domain.StateNotStarted, history[0], u.Path())
		require.True(t, slices.IsSorted(history), "%s: %v", u.Path(), history)
		for i := 1; i < len(history); i++ {
			require.True(t, history[i-1].CanTransition(history[i]), "%s: %v", u.Path(), history)
		}
	}
}
