package kripke

import "sort"

// Search is the result of a traversal from a single source. It records
// the visited ids in discovery order and the predecessor of each one.
type Search struct {
	Source int

	marked []int
	seen   map[int]bool
	edgeTo map[int]int // nil when the source is not a node
}

func newSearch(g Adjacency, source int) *Search {
	s := &Search{
		Source: source,
		seen:   make(map[int]bool),
	}
	if _, ok := g.AdjTo(source); ok {
		s.edgeTo = make(map[int]int, g.Size())
	}
	return s
}

func (s *Search) mark(w, from int) {
	s.seen[w] = true
	s.marked = append(s.marked, w)
	s.edgeTo[w] = from
}

// BFS explores successors of source level by level.
func BFS(g Adjacency, source int) *Search {
	s := newSearch(g, source)
	if s.edgeTo == nil {
		return s
	}

	queue := []int{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		adj, _ := g.AdjTo(v)
		for _, w := range adj {
			if !s.seen[w] {
				s.mark(w, v)
				queue = append(queue, w)
			}
		}
	}
	return s
}

// DFS explores successors of source depth first.
func DFS(g Adjacency, source int) *Search {
	s := newSearch(g, source)
	if s.edgeTo == nil {
		return s
	}
	s.dfs(g, source)
	return s
}

func (s *Search) dfs(g Adjacency, v int) {
	adj, _ := g.AdjTo(v)
	for _, w := range adj {
		if !s.seen[w] {
			s.mark(w, v)
			s.dfs(g, w)
		}
	}
}

// Valid reports whether the search started from an existing node.
func (s *Search) Valid() bool {
	return s.edgeTo != nil
}

// AllMarked returns the visited ids in discovery order.
func (s *Search) AllMarked() ([]int, bool) {
	if len(s.marked) == 0 {
		return nil, false
	}
	out := make([]int, len(s.marked))
	copy(out, s.marked)
	return out, true
}

// HasPathTo reports whether v was reached.
func (s *Search) HasPathTo(v int) bool {
	return s.seen[v]
}

// PathTo returns the ids on the discovered path from the source to v,
// sorted by ascending id. On a proof tree ids grow away from the root, so
// ascending order is root-to-leaf order.
func (s *Search) PathTo(v int) ([]int, bool) {
	path, ok := s.walk(v)
	if !ok {
		return nil, false
	}
	sort.Ints(path)
	return path, true
}

// walk follows edgeTo from v back to the source. The returned slice runs
// from v to the source.
func (s *Search) walk(v int) ([]int, bool) {
	if !s.HasPathTo(v) {
		return nil, false
	}
	path := []int{v}
	x := v
	// A cycle back to the source marks it, so bound the walk by the
	// number of discovered nodes.
	for range len(s.marked) {
		x = s.edgeTo[x]
		if x == s.Source {
			break
		}
		path = append(path, x)
	}
	return append(path, s.Source), true
}

// ShortestPath runs a BFS from source that stops as soon as target is
// discovered. Among several shortest paths the one found first by
// ascending adjacency order wins. The result is sorted like PathTo.
func ShortestPath(g Adjacency, source, target int) ([]int, bool) {
	s := newSearch(g, source)
	if s.edgeTo == nil {
		return nil, false
	}
	if source == target {
		return []int{source}, true
	}

	s.seen[source] = true
	queue := []int{source}
outer:
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		adj, _ := g.AdjTo(v)
		for _, w := range adj {
			if s.seen[w] {
				continue
			}
			s.mark(w, v)
			if w == target {
				break outer
			}
			queue = append(queue, w)
		}
	}
	return s.PathTo(target)
}
