package kripke

import (
	"errors"
	"fmt"
)

// ErrWorldNotFound is returned when a world id does not exist in the frame.
var ErrWorldNotFound = errors.New("world not found")

// World is a possible world. Its ID matches its index in the WorldGraph.
type World struct {
	ID int
}

func (w World) String() string {
	return fmt.Sprintf("w%d", w.ID)
}

// WorldGraph is a Kripke frame: worlds plus the accessibility relation.
// World 0 always exists.
type WorldGraph struct {
	*Graph[World]
	edges int
}

// NewWorldGraph creates a frame with n unconnected worlds (at least one).
func NewWorldGraph(n int) *WorldGraph {
	if n < 1 {
		n = 1
	}
	wg := &WorldGraph{Graph: NewGraph[World](n)}
	for id := range wg.nodes {
		wg.nodes[id] = World{ID: id}
	}
	return wg
}

// AddWorld allocates the next unused world id.
func (wg *WorldGraph) AddWorld() int {
	return wg.Append(World{ID: wg.Size()})
}

// AddEdge makes w accessible from v, keeping the edge count.
func (wg *WorldGraph) AddEdge(v, w int) bool {
	if !wg.Graph.AddEdge(v, w) {
		return false
	}
	wg.edges++
	return true
}

// EdgeCount returns the number of accessibility pairs.
func (wg *WorldGraph) EdgeCount() int {
	return wg.edges
}

// Accessible returns the worlds accessible from id.
func (wg *WorldGraph) Accessible(id int) ([]World, bool) {
	adj, ok := wg.AdjTo(id)
	if !ok {
		return nil, false
	}
	out := make([]World, 0, len(adj))
	for _, w := range adj {
		out = append(out, wg.nodes[w])
	}
	return out, true
}
