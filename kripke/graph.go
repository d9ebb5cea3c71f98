package kripke

import "sort"

// Adjacency is the read-only view that graph searches need. Both the
// world frame and the proof tree implement it.
type Adjacency interface {
	AdjTo(v int) ([]int, bool)
	Size() int
}

// Graph is a directed graph over an arbitrary node payload. Nodes are
// addressed by dense integer ids starting at 0 and are never removed.
type Graph[T any] struct {
	nodes       []T
	adjacencies []map[int]struct{}
}

// NewGraph builds a graph with n zero-valued nodes and no edges.
func NewGraph[T any](n int) *Graph[T] {
	if n < 0 {
		n = 0
	}
	g := &Graph[T]{
		nodes:       make([]T, n),
		adjacencies: make([]map[int]struct{}, n),
	}
	for i := range g.adjacencies {
		g.adjacencies[i] = make(map[int]struct{})
	}
	return g
}

func (g *Graph[T]) valid(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

// Size returns the number of nodes.
func (g *Graph[T]) Size() int {
	return len(g.nodes)
}

// NodeIDs returns [0, Size()).
func (g *Graph[T]) NodeIDs() []int {
	ids := make([]int, len(g.nodes))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// AddEdge inserts v -> w. It reports whether a new edge was added; invalid
// ids and existing edges are left alone.
func (g *Graph[T]) AddEdge(v, w int) bool {
	if !g.valid(v) || !g.valid(w) {
		return false
	}
	if _, ok := g.adjacencies[v][w]; ok {
		return false
	}
	g.adjacencies[v][w] = struct{}{}
	return true
}

// AdjTo returns a copy of v's successors in ascending order.
func (g *Graph[T]) AdjTo(v int) ([]int, bool) {
	if !g.valid(v) {
		return nil, false
	}
	out := make([]int, 0, len(g.adjacencies[v]))
	for w := range g.adjacencies[v] {
		out = append(out, w)
	}
	sort.Ints(out)
	return out, true
}

// AdjTest reports whether u -> w exists. The second result is false when
// u is not a node.
func (g *Graph[T]) AdjTest(u, w int) (bool, bool) {
	if !g.valid(u) {
		return false, false
	}
	_, ok := g.adjacencies[u][w]
	return ok, true
}

// OutDegree returns the number of successors of v, or -1 for an invalid id.
func (g *Graph[T]) OutDegree(v int) int {
	if !g.valid(v) {
		return -1
	}
	return len(g.adjacencies[v])
}

// Node returns a copy of the payload stored at id.
func (g *Graph[T]) Node(id int) (T, bool) {
	if !g.valid(id) {
		var zero T
		return zero, false
	}
	return g.nodes[id], true
}

// NodeRef returns a pointer into node storage. The pointer is only valid
// until the next Append.
func (g *Graph[T]) NodeRef(id int) (*T, bool) {
	if !g.valid(id) {
		return nil, false
	}
	return &g.nodes[id], true
}

// Append stores payload as a new unattached node and returns its id.
func (g *Graph[T]) Append(payload T) int {
	g.nodes = append(g.nodes, payload)
	g.adjacencies = append(g.adjacencies, make(map[int]struct{}))
	return len(g.nodes) - 1
}
