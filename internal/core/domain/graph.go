// Package domain contains the core domain model of the build engine: description fields,
// build specifications, unit states, executable units and the file reference graph.
package domain

import (
	"go.trai.ch/zerr"
)

// Graph records which build-description file references which (through Include or Depends).
// It is not safe for concurrent use; the dependency registry guards it.
type Graph struct {
	edges map[InternedString][]InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[InternedString][]InternedString),
	}
}

// AddEdge records that from references to.
// It returns ErrCycleDetected, with the cycle path as metadata, if to already reaches from.
func (g *Graph) AddEdge(from, to InternedString) error {
	if path := g.pathBetween(to, from); path != nil {
		return g.buildCycleError(append([]InternedString{from}, path...))
	}
	for _, existing := range g.edges[from] {
		if existing == to {
			return nil
		}
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// References returns the files directly referenced by from, in discovery order.
func (g *Graph) References(from InternedString) []InternedString {
	return append([]InternedString(nil), g.edges[from]...)
}

// pathBetween returns the nodes from src to dst (both included) or nil if dst is unreachable.
func (g *Graph) pathBetween(src, dst InternedString) []InternedString {
	visited := make(map[InternedString]bool)
	var path []InternedString

	var visit func(u InternedString) bool
	visit = func(u InternedString) bool {
		visited[u] = true
		path = append(path, u)
		if u == dst {
			return true
		}
		for _, next := range g.edges[u] {
			if !visited[next] && visit(next) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if visit(src) {
		return path
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString) error {
	cyclePath := ""
	for i, node := range path {
		if i > 0 {
			cyclePath += " -> "
		}
		cyclePath += node.String()
	}
	return zerr.With(zerr.Wrap(ErrCycleDetected, "dependency cycle"), "cycle", cyclePath)
}
