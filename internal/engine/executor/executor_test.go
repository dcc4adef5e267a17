package executor_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/internal/adapters/telemetry"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports/mocks"
	"go.trai.ch/beelder/internal/engine/executor"
	"go.uber.org/mock/gomock"
)

// recordingOwner counts the callbacks the executor makes.
type recordingOwner struct {
	mu        sync.Mutex
	queued    int
	reaped    int
	failed    int
	finalized []bool
}

func (o *recordingOwner) Path() string { return "/project/app.bee" }

func (o *recordingOwner) CompileQueued() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queued++
}

func (o *recordingOwner) CompileReaped(failed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.reaped >= o.queued {
		panic("compile reaped before it was queued")
	}
	o.reaped++
	if failed {
		o.failed++
	}
}

func (o *recordingOwner) FinalizeReaped(failed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finalized = append(o.finalized, failed)
}

func (o *recordingOwner) snapshot() (queued, reaped, failed int, finalized []bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.queued, o.reaped, o.failed, append([]bool(nil), o.finalized...)
}

func shellUnit(owner domain.UnitOwner, op domain.OpKind, subject, script, dir string) *domain.ExecutableUnit {
	u := &domain.ExecutableUnit{
		Op:         op,
		Owner:      owner,
		Callee:     "sh",
		Args:       []string{"-c", script},
		WorkingDir: dir,
	}
	if op == domain.OpCompile {
		u.Source = subject
	} else {
		u.Binary = subject
	}
	return u
}

func newExecutor(t *testing.T, jobs int, console *mocks.MockConsole) *executor.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	exec, err := executor.New(jobs, console, telemetry.NewNoop(), logger)
	require.NoError(t, err)
	return exec
}

func TestExecutor_ReportsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	console := mocks.NewMockConsole(ctrl)
	dir := t.TempDir()

	console.EXPECT().Status(domain.OpCompile, domain.OutcomeSuccess, "clean.c")
	console.EXPECT().Status(domain.OpCompile, domain.OutcomeWarning, "noisy.c")
	console.EXPECT().Status(domain.OpCompile, domain.OutcomeError, "broken.c")
	console.EXPECT().Status(domain.OpLink, domain.OutcomeSuccess, "BeelderBuild/app")
	console.EXPECT().Echo(gomock.Len(0), gomock.Len(0)).Times(2)
	console.EXPECT().Echo([]byte("out\n"), []byte("warning: unused\n"))
	console.EXPECT().Echo(gomock.Len(0), []byte("error: oops\n"))

	exec := newExecutor(t, 2, console)
	owner := &recordingOwner{}

	exec.Run(context.Background())
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpCompile, "clean.c", "exit 0", dir)))
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpCompile, "noisy.c", "echo out; echo 'warning: unused' >&2", dir)))
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpCompile, "broken.c", "echo 'error: oops' >&2; exit 3", dir)))
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpLink, "BeelderBuild/app", "true", dir)))
	exec.Stop()
	require.NoError(t, exec.Await())

	queued, reaped, failed, finalized := owner.snapshot()
	assert.Equal(t, 3, queued)
	assert.Equal(t, 3, reaped)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []bool{false}, finalized)
}

func TestExecutor_BoundedConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Status(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	console.EXPECT().Echo(gomock.Any(), gomock.Any()).AnyTimes()

	exec := newExecutor(t, 2, console)
	assert.Equal(t, 2, exec.Size())
	owner := &recordingOwner{}
	dir := t.TempDir()

	exec.Run(context.Background())
	for i := range 8 {
		unit := shellUnit(owner, domain.OpCompile, "src"+string(rune('a'+i))+".c", "sleep 0.05", dir)
		require.NoError(t, exec.Enqueue(unit))
	}
	exec.Stop()
	require.NoError(t, exec.Await())

	_, reaped, _, _ := owner.snapshot()
	assert.Equal(t, 8, reaped)
	assert.LessOrEqual(t, exec.Peak(), 2)
	assert.GreaterOrEqual(t, exec.Peak(), 1)
}

func TestExecutor_LargeOutputDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Status(domain.OpArchive, domain.OutcomeWarning, "BeelderBuild/lib.a")

	var captured []byte
	console.EXPECT().Echo(gomock.Any(), gomock.Any()).Do(func(stdout, _ []byte) {
		captured = stdout
	})

	exec := newExecutor(t, 1, console)
	owner := &recordingOwner{}

	exec.Run(context.Background())
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpArchive, "BeelderBuild/lib.a", "head -c 300000 /dev/zero", t.TempDir())))
	exec.Stop()
	require.NoError(t, exec.Await())

	assert.Len(t, captured, 300000)
}

func TestExecutor_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Status(domain.OpCompile, domain.OutcomeWarning, "main.c")

	var captured string
	console.EXPECT().Echo(gomock.Any(), gomock.Any()).Do(func(stdout, _ []byte) {
		captured = strings.TrimSpace(string(stdout))
	})

	dir := t.TempDir()
	exec := newExecutor(t, 1, console)
	exec.Run(context.Background())
	require.NoError(t, exec.Enqueue(shellUnit(&recordingOwner{}, domain.OpCompile, "main.c", "pwd -P", dir)))
	exec.Stop()
	require.NoError(t, exec.Await())

	assert.NotEmpty(t, captured)
	assert.True(t, strings.HasSuffix(captured, dirBase(dir)), "unexpected working directory %q", captured)
}

func TestExecutor_SpawnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Status(domain.OpLink, domain.OutcomeError, "BeelderBuild/app")
	console.EXPECT().Echo(gomock.Len(0), gomock.Not(gomock.Len(0)))

	exec := newExecutor(t, 1, console)
	owner := &recordingOwner{}

	exec.Run(context.Background())
	require.NoError(t, exec.Enqueue(&domain.ExecutableUnit{
		Op:         domain.OpLink,
		Owner:      owner,
		Callee:     "beelder-test-no-such-linker",
		Binary:     "BeelderBuild/app",
		WorkingDir: t.TempDir(),
	}))
	exec.Stop()
	require.NoError(t, exec.Await())

	_, _, _, finalized := owner.snapshot()
	assert.Equal(t, []bool{true}, finalized)
}

func TestExecutor_EnqueueAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := newExecutor(t, 1, mocks.NewMockConsole(ctrl))
	owner := &recordingOwner{}

	exec.Run(context.Background())
	exec.Stop()
	require.NoError(t, exec.Await())

	err := exec.Enqueue(shellUnit(owner, domain.OpCompile, "late.c", "true", t.TempDir()))
	require.ErrorIs(t, err, domain.ErrExecutorStopped)

	queued, _, _, _ := owner.snapshot()
	assert.Zero(t, queued)
}

func TestExecutor_CancelKillsRunningProcesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := newExecutor(t, 1, mocks.NewMockConsole(ctrl))
	owner := &recordingOwner{}
	cause := errors.New("build aborted")

	ctx, cancel := context.WithCancelCause(context.Background())
	exec.Run(ctx)
	require.NoError(t, exec.Enqueue(shellUnit(owner, domain.OpLink, "BeelderBuild/app", "sleep 30", t.TempDir())))

	// Let the process start before cancelling.
	time.Sleep(100 * time.Millisecond)
	start := time.Now()
	cancel(cause)

	err := exec.Await()
	require.ErrorIs(t, err, cause)
	assert.Less(t, time.Since(start), 10*time.Second)

	_, _, _, finalized := owner.snapshot()
	assert.Equal(t, []bool{true}, finalized)
}

func dirBase(dir string) string {
	parts := strings.Split(strings.TrimRight(dir, "/"), "/")
	return parts[len(parts)-1]
}
