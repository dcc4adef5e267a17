package unit

import (
	"sync"

	"go.trai.ch/beelder/internal/core/domain"
)

// Resolution tells the caller of Registry.Resolve what to do with the returned unit.
type Resolution int

const (
	// Reused means the unit already exists and is running (or done).
	Reused Resolution = iota
	// Created means the unit is new and its procedure must be started.
	Created
	// Promoted means a parse-only unit that already finished parsing must now run its build phase.
	Promoted
)

// Registry maps canonical description paths to their build units.
// Entries are never removed. The lock is held only around lookup-or-insert.
type Registry struct {
	mu    sync.Mutex
	units map[string]*Unit
	order []*Unit
	graph *domain.Graph
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]*Unit),
		graph: domain.NewGraph(),
	}
}

// Resolve returns the unit registered for path, creating it with create if there is none.
// A non-empty from records the reference from -> path; references that close a cycle
// are rejected with domain.ErrCycleDetected. Asking for the Build operation on a unit
// created for Parse promotes it.
func (r *Registry) Resolve(from, path string, op domain.Operation, create func() *Unit) (*Unit, Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if from != "" {
		if err := r.graph.AddEdge(domain.NewInternedString(from), domain.NewInternedString(path)); err != nil {
			return nil, Reused, err
		}
	}

	if u, ok := r.units[path]; ok {
		if op == domain.OperationBuild && u.promote() {
			return u, Promoted, nil
		}
		return u, Reused, nil
	}

	u := create()
	r.units[path] = u
	r.order = append(r.order, u)
	return u, Created, nil
}

// Lookup returns the unit registered for path.
func (r *Registry) Lookup(path string) (*Unit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.units[path]
	return u, ok
}

// Units returns every registered unit in creation order.
func (r *Registry) Units() []*Unit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Unit(nil), r.order...)
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.units)
}
