// Package executor runs compile, link and archive requests on a fixed pool of process slots.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// drainInterval bounds how long running processes may write without their pipes being emptied.
const drainInterval = 20 * time.Millisecond

// Executor matches queued executable units to free process slots on a single scheduling goroutine.
type Executor struct {
	slots     []*ProcessSlot
	vertices  []ports.Vertex
	queue     *queue
	console   ports.Console
	telemetry ports.Telemetry
	logger    ports.Logger

	started  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	err      error

	running atomic.Int32
	peak    atomic.Int32
}

// New creates an executor with max(1, jobs) process slots.
func New(jobs int, console ports.Console, telemetry ports.Telemetry, logger ports.Logger) (*Executor, error) {
	jobs = max(1, jobs)
	e := &Executor{
		slots:     make([]*ProcessSlot, 0, jobs),
		vertices:  make([]ports.Vertex, jobs),
		queue:     newQueue(),
		console:   console,
		telemetry: telemetry,
		logger:    logger,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	for range jobs {
		slot, err := NewProcessSlot()
		if err != nil {
			_ = e.closeSlots()
			return nil, err
		}
		e.slots = append(e.slots, slot)
	}
	return e, nil
}

// Size returns the number of process slots.
func (e *Executor) Size() int {
	return len(e.slots)
}

// Peak returns the highest number of units that ran at the same time.
func (e *Executor) Peak() int {
	return int(e.peak.Load())
}

// Enqueue appends a unit to the queue. It never blocks.
// Compile units are counted on their owner before they become visible to the scheduler.
func (e *Executor) Enqueue(unit *domain.ExecutableUnit) error {
	if e.stopped.Load() {
		return zerr.With(zerr.Wrap(domain.ErrExecutorStopped, "cannot enqueue "+unit.Op.String()), "subject", unit.Subject())
	}
	if unit.Op == domain.OpCompile {
		unit.Owner.CompileQueued()
	}
	e.queue.push(unit)
	return nil
}

// Run starts the scheduling loop and returns immediately.
// Cancelling ctx kills the running processes and ends the loop with the context's cause.
func (e *Executor) Run(ctx context.Context) {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	go e.loop(ctx)
}

// Stop asks the loop to exit once the queue is empty and every slot has been reported.
func (e *Executor) Stop() {
	e.stopOnce.Do(func() {
		e.stopped.Store(true)
		close(e.stopCh)
	})
}

// Await blocks until the scheduling loop has exited. Run must have been called.
func (e *Executor) Await() error {
	<-e.done
	return e.err
}

func (e *Executor) loop(ctx context.Context) {
	defer close(e.done)

	sigchld := make(chan os.Signal, 1)
	signal.Notify(sigchld, unix.SIGCHLD)
	defer signal.Stop(sigchld)

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	stop := e.stopCh
	stopping := false
	for {
		e.reap()

		if ctx.Err() != nil {
			e.abort()
			e.err = context.Cause(ctx)
			break
		}
		if stopping && e.queue.len() == 0 && e.idle() {
			break
		}

		if i := e.freeSlot(); i >= 0 {
			if unit, ok := e.queue.pop(); ok {
				e.assign(ctx, i, unit)
				continue
			}
		}

		select {
		case <-e.queue.wake:
		case <-sigchld:
		case <-ticker.C:
		case <-ctx.Done():
		case <-stop:
			stopping = true
			stop = nil
		}
	}

	if err := e.closeSlots(); err != nil {
		e.logger.Error(zerr.Wrap(err, "failed to release process slots"))
	}
}

// reap reports every slot whose process has exited and was not reported yet.
func (e *Executor) reap() {
	for i, slot := range e.slots {
		if slot.Free() || !slot.Done() {
			continue
		}
		if res, ok := slot.Fetch(); ok {
			e.report(i, res, true)
		}
	}
}

// abort kills every running process and reports it without printing.
func (e *Executor) abort() {
	for i, slot := range e.slots {
		if slot.Free() {
			continue
		}
		slot.Kill()
		slot.Wait()
		if res, ok := slot.Fetch(); ok {
			e.report(i, res, false)
		}
	}
}

func (e *Executor) idle() bool {
	for _, slot := range e.slots {
		if !slot.Free() {
			return false
		}
	}
	return true
}

func (e *Executor) freeSlot() int {
	for i, slot := range e.slots {
		if slot.Free() {
			return i
		}
	}
	return -1
}

func (e *Executor) assign(ctx context.Context, i int, unit *domain.ExecutableUnit) {
	running := e.running.Add(1)
	for {
		peak := e.peak.Load()
		if running <= peak || e.peak.CompareAndSwap(peak, running) {
			break
		}
	}

	name := fmt.Sprintf("%s %s", unit.Op, unit.Subject())
	_, e.vertices[i] = e.telemetry.Record(ctx, name, ports.WithVertexID(unit.Fingerprint()))
	e.logger.Debug(fmt.Sprintf("spawning %s in slot %d: %s %v (id %s)", name, i, unit.Callee, unit.Args, unit.Fingerprint()))

	e.slots[i].Execute(unit)
}

func (e *Executor) report(i int, res Result, announce bool) {
	e.running.Add(-1)
	unit := res.Unit

	if announce {
		e.console.Status(unit.Op, domain.ClassifyOutcome(res.ExitStatus, res.Stdout, res.Stderr), unit.Subject())
		e.console.Echo(res.Stdout, res.Stderr)
	}

	var err error
	if res.Failed() {
		err = zerr.With(zerr.Wrap(domain.ErrBuildFailed, unit.Op.String()+" "+unit.Subject()), "exit_code", res.ExitStatus)
	}
	if v := e.vertices[i]; v != nil {
		_, _ = v.Stdout().Write(res.Stdout)
		_, _ = v.Stderr().Write(res.Stderr)
		v.Complete(err)
		e.vertices[i] = nil
	}

	if unit.Op == domain.OpCompile {
		unit.Owner.CompileReaped(res.Failed())
	} else {
		unit.Owner.FinalizeReaped(res.Failed())
	}
}

func (e *Executor) closeSlots() error {
	var errs []error
	for _, slot := range e.slots {
		errs = append(errs, slot.Close())
	}
	return errors.Join(errs...)
}
