// Package unit implements the build unit: the per-file parse, merge and build state machine,
// together with the registry that deduplicates files reached through several references.
package unit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

// Unit is the build unit of one build-description file.
// Its procedure runs on its own goroutine; other goroutines only observe its state.
type Unit struct {
	path    string
	dir     string
	name    string
	root    bool
	session *Session
	fields  *domain.Fields

	mu        sync.Mutex
	cond      *sync.Cond
	op        domain.Operation
	state     domain.UnitState
	history   []domain.UnitState
	kind      domain.TargetKind
	parseDone bool
	finished  bool

	// Written only by the unit's own goroutine while parsing.
	includes []*Unit
	depends  []*Unit

	compiles  atomic.Int64
	finalized atomic.Bool
	buildRuns atomic.Int32
}

func newUnit(s *Session, path string, op domain.Operation, root bool) *Unit {
	base := filepath.Base(path)
	u := &Unit{
		path:    path,
		dir:     filepath.Dir(path),
		name:    strings.TrimSuffix(base, filepath.Ext(base)),
		root:    root,
		session: s,
		fields:  domain.NewFields(),
		op:      op,
		state:   domain.StateNotStarted,
		history: []domain.UnitState{domain.StateNotStarted},
	}
	u.cond = sync.NewCond(&u.mu)
	context.AfterFunc(s.ctx, u.broadcast)
	s.Logger.Debug(fmt.Sprintf("unit %s created for %s", path, op))
	return u
}

// Path returns the canonical path of the description file.
func (u *Unit) Path() string { return u.path }

// Dir returns the directory of the description file. Tools run there.
func (u *Unit) Dir() string { return u.dir }

// Name returns the file name without its extension. Outputs are named after it.
func (u *Unit) Name() string { return u.name }

// IsRoot reports whether the unit is the root of the session.
func (u *Unit) IsRoot() bool { return u.root }

// Fields returns the parsed fields. They must not be read before the unit is Parsed.
func (u *Unit) Fields() *domain.Fields { return u.fields }

// State returns the current state.
func (u *Unit) State() domain.UnitState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// History returns every state the unit went through, in order.
func (u *Unit) History() []domain.UnitState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]domain.UnitState(nil), u.history...)
}

// Operation returns what the unit was asked to do.
func (u *Unit) Operation() domain.Operation {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.op
}

// Kind returns the target kind. It is Unknown until the unit is Parsed.
func (u *Unit) Kind() domain.TargetKind {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.kind
}

// Includes returns the units referenced through Include, in discovery order.
func (u *Unit) Includes() []*Unit { return append([]*Unit(nil), u.includes...) }

// Depends returns the units referenced through Build.Depends, in discovery order.
func (u *Unit) Depends() []*Unit { return append([]*Unit(nil), u.depends...) }

// OutstandingCompiles returns the number of enqueued compile units not yet reaped.
func (u *Unit) OutstandingCompiles() int64 { return u.compiles.Load() }

// BuildRuns returns how many times the build procedure started.
func (u *Unit) BuildRuns() int { return int(u.buildRuns.Load()) }

// LibraryPath returns the static library produced by the unit.
func (u *Unit) LibraryPath() string {
	return filepath.Join(u.dir, u.session.settings.OutputDir, u.name+".a")
}

// ExecutablePath returns the executable produced by the unit.
func (u *Unit) ExecutablePath() string {
	return filepath.Join(u.dir, u.session.settings.OutputDir, u.name)
}

// CompileQueued counts a compile unit of u. The executor calls it before the unit is queued.
func (u *Unit) CompileQueued() {
	u.compiles.Add(1)
}

// CompileReaped records the end of a compile unit of u.
func (u *Unit) CompileReaped(failed bool) {
	if failed {
		u.transition(domain.StateBuildError)
	}
	if u.compiles.Add(-1) < 0 {
		panic("beelder: compile counter of " + u.path + " dropped below zero")
	}
	u.broadcast()
}

// FinalizeReaped records the end of the link or archive unit of u.
func (u *Unit) FinalizeReaped(failed bool) {
	if failed {
		u.transition(domain.StateBuildError)
	}
	u.finalized.Store(true)
	u.broadcast()
}

func (u *Unit) broadcast() {
	u.mu.Lock()
	u.cond.Broadcast()
	u.mu.Unlock()
}

// transition moves u to next if the state machine allows it.
func (u *Unit) transition(next domain.UnitState) bool {
	u.mu.Lock()
	prev := u.state
	if !prev.CanTransition(next) {
		u.mu.Unlock()
		return false
	}
	u.state = next
	u.history = append(u.history, next)
	if next == domain.StateParsed {
		u.kind = u.fields.Build.Kind
	}
	u.cond.Broadcast()
	u.mu.Unlock()

	u.session.Logger.Debug(fmt.Sprintf("unit %s: %s -> %s", u.path, prev, next))
	return true
}

// promote upgrades a parse-only unit to the Build operation. It returns true if the unit
// already finished parsing, in which case the caller has to start its build phase.
func (u *Unit) promote() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.op == domain.OperationBuild {
		return false
	}
	u.op = domain.OperationBuild
	return u.parseDone
}

// await blocks until cond holds or the session is aborted. cond runs with u.mu held.
func (u *Unit) await(cond func() bool) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for !cond() {
		if err := u.session.ctx.Err(); err != nil {
			return context.Cause(u.session.ctx)
		}
		u.cond.Wait()
	}
	return nil
}

// awaitParsed blocks until child leaves NotStarted.
func (u *Unit) awaitParsed(child *Unit) error {
	if err := child.await(func() bool { return child.state != domain.StateNotStarted }); err != nil {
		return err
	}
	if child.State() == domain.StateParseError {
		return u.awaitAbort()
	}
	return nil
}

// awaitBuilt blocks until child is Built. A child that ends its procedure in any other
// state fails the wait.
func (u *Unit) awaitBuilt(child *Unit) error {
	err := child.await(func() bool {
		return child.state == domain.StateBuilt || child.state.IsTerminal() || child.finished
	})
	if err != nil {
		return err
	}
	switch child.State() {
	case domain.StateBuilt:
		return nil
	case domain.StateParseError, domain.StateBuildError:
		return u.awaitAbort()
	default:
		return zerr.With(zerr.Wrap(domain.ErrDependencyNotBuilt, "dependency finished without building"), "path", child.path)
	}
}

// awaitAbort blocks until the session is aborted and returns the cause. A failed child
// aborts the session itself, so its parents wait for that instead of reporting.
func (u *Unit) awaitAbort() error {
	return u.await(func() bool { return false })
}

// run is the unit's procedure: parse and merge, then process the invocation for Build units.
func (u *Unit) run() {
	if u.root {
		defer u.session.drain(u.path)
	}

	if !u.parsePhase() {
		u.markFinished()
		return
	}

	u.mu.Lock()
	parseOnly := u.op == domain.OperationParse
	u.parseDone = parseOnly
	u.mu.Unlock()
	if parseOnly {
		return
	}
	u.buildPhase()
}

// buildPhase processes the invocation.
func (u *Unit) buildPhase() {
	defer u.markFinished()
	if err := u.process(); err != nil {
		u.fail(err)
	}
}

func (u *Unit) markFinished() {
	u.mu.Lock()
	u.finished = true
	u.cond.Broadcast()
	u.mu.Unlock()
}

// fail moves the unit to its error state and aborts the session.
func (u *Unit) fail(err error) {
	if !u.transition(domain.StateBuildError) {
		u.transition(domain.StateParseError)
	}
	u.session.Abort(u.path, err)
}

func (u *Unit) parsePhase() bool {
	if err := u.parse(); err != nil {
		u.fail(err)
		return false
	}
	for _, child := range u.includes {
		if err := u.awaitParsed(child); err != nil {
			u.fail(err)
			return false
		}
		u.fields.Merge(child.fields)
	}
	u.transition(domain.StateParsed)
	return true
}

func (u *Unit) parse() error {
	ctx := u.session.ctx
	if err := u.session.parseSlots.Acquire(ctx, 1); err != nil {
		return context.Cause(ctx)
	}
	err := u.session.Parser.Parse(u.path, u.fields, hooks{u})
	u.session.parseSlots.Release(1)
	if err != nil {
		return err
	}
	return u.fields.Build.Validate()
}

// hooks spawns children while the parser walks the file.
type hooks struct {
	u *Unit
}

func (h hooks) Include(pattern string) error {
	return h.u.adopt(pattern, domain.OperationParse)
}

func (h hooks) Depend(pattern string) error {
	return h.u.adopt(pattern, domain.OperationBuild)
}

// adopt registers the files matched by pattern as children of u and starts the new ones.
func (u *Unit) adopt(pattern string, op domain.Operation) error {
	paths, err := u.session.Finder.Descriptions(u.dir, pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrIncludeNotFound, fmt.Sprintf("Included path %q does not exist", pattern)), "pattern", pattern)
	}

	for _, path := range paths {
		child, res, err := u.session.registry.Resolve(u.path, path, op, func() *Unit {
			return newUnit(u.session, path, op, false)
		})
		if err != nil {
			return err
		}
		switch res {
		case Created:
			u.session.spawn(child.run)
		case Promoted:
			u.session.spawn(child.buildPhase)
		case Reused:
		}

		if op == domain.OperationParse {
			u.includes = append(u.includes, child)
		} else {
			u.depends = append(u.depends, child)
		}
	}
	return nil
}
