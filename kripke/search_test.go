package kripke

import (
	"reflect"
	"sort"
	"testing"
)

func edges(n int, pairs ...[2]int) *Graph[int] {
	g := NewGraph[int](n)
	for _, p := range pairs {
		g.AddEdge(p[0], p[1])
	}
	return g
}

func TestBFSMarksReachable(t *testing.T) {
	g := edges(6, [2]int{1, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{3, 5})
	s := BFS(g, 2)

	marked, ok := s.AllMarked()
	if !ok {
		t.Fatal("Expected BFS from 2 to mark nodes")
	}
	sort.Ints(marked)
	if !reflect.DeepEqual(marked, []int{3, 4, 5}) {
		t.Errorf("marked = %v, want [3 4 5]", marked)
	}
	if s.HasPathTo(1) {
		t.Error("Expected no path to 1")
	}
	if !s.HasPathTo(4) {
		t.Error("Expected a path to 4")
	}

	path, ok := s.PathTo(5)
	if !ok || !reflect.DeepEqual(path, []int{2, 3, 5}) {
		t.Errorf("PathTo(5) = %v, %v", path, ok)
	}
}

func TestDFSMarksReachable(t *testing.T) {
	g := edges(6, [2]int{1, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{3, 5})
	marked, ok := DFS(g, 2).AllMarked()
	if !ok {
		t.Fatal("Expected DFS from 2 to mark nodes")
	}
	// Depth first: 3 then its child 5 before the sibling 4.
	if !reflect.DeepEqual(marked, []int{3, 5, 4}) {
		t.Errorf("marked = %v, want [3 5 4]", marked)
	}
}

func TestSearchInvalidSource(t *testing.T) {
	g := edges(2, [2]int{0, 1})
	s := BFS(g, 7)
	if s.Valid() {
		t.Error("Expected search from an invalid source to be invalid")
	}
	if _, ok := s.AllMarked(); ok {
		t.Error("Expected nothing marked")
	}
	if _, ok := DFS(g, -1).PathTo(1); ok {
		t.Error("Expected no path from an invalid source")
	}
	if _, ok := ShortestPath(g, 9, 1); ok {
		t.Error("Expected no shortest path from an invalid source")
	}
}

func TestSourceMarkedOnlyThroughCycle(t *testing.T) {
	s := BFS(edges(3, [2]int{0, 1}, [2]int{1, 2}), 0)
	if s.HasPathTo(0) {
		t.Error("Expected source unmarked without a cycle")
	}

	s = BFS(edges(3, [2]int{0, 1}, [2]int{1, 0}), 0)
	if !s.HasPathTo(0) {
		t.Error("Expected source marked through the cycle")
	}
	if path, ok := s.PathTo(0); !ok || !reflect.DeepEqual(path, []int{0, 0, 1}) {
		t.Errorf("PathTo(0) = %v, %v", path, ok)
	}
}

func TestShortestPath(t *testing.T) {
	g := edges(7,
		[2]int{1, 2}, [2]int{2, 3}, [2]int{3, 5}, [2]int{5, 6},
		[2]int{2, 4}, [2]int{4, 6},
	)
	path, ok := ShortestPath(g, 1, 6)
	if !ok {
		t.Fatal("Expected a path from 1 to 6")
	}
	if !reflect.DeepEqual(path, []int{1, 2, 4, 6}) {
		t.Errorf("ShortestPath = %v, want [1 2 4 6]", path)
	}
	if len(path)-1 != 3 {
		t.Errorf("Expected 3 edges, got %d", len(path)-1)
	}

	if _, ok := ShortestPath(g, 6, 1); ok {
		t.Error("Expected no path from 6 to 1")
	}
	if same, ok := ShortestPath(g, 3, 3); !ok || !reflect.DeepEqual(same, []int{3}) {
		t.Errorf("ShortestPath(3, 3) = %v, %v", same, ok)
	}
}
