// Package tableau holds the proof tree of a modal tableau: formula nodes
// anchored at worlds, their expansion state, branch queries and
// contradiction detection.
//
// The tree is stored as a flat id-indexed graph. Every node added after
// construction gets a larger id than any existing node, so sorting the ids
// of a branch by value orders them from the root to the leaf.
package tableau

import (
	"errors"
	"fmt"

	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/parser"
)

// ErrNodeNotFound is returned for ids that are not in the tree.
var ErrNodeNotFound = errors.New("tableau node not found")

// Tableau is the proof tree. Node 0 is the root.
type Tableau struct {
	g *kripke.Graph[Formula]
}

// New builds the initial branch: one node per formula, anchored at world
// 0, each the only child of the previous one.
func New(formulas []string) *Tableau {
	t := &Tableau{g: kripke.NewGraph[Formula](0)}
	for i, text := range formulas {
		id := t.g.Append(NewFormula(text, 0))
		if i > 0 {
			t.g.AddEdge(id-1, id)
		}
	}
	return t
}

// Size returns the number of nodes.
func (t *Tableau) Size() int {
	return t.g.Size()
}

// AdjTo returns the children of v.
func (t *Tableau) AdjTo(v int) ([]int, bool) {
	return t.g.AdjTo(v)
}

// Node returns the formula stored at id.
func (t *Tableau) Node(id int) (Formula, bool) {
	return t.g.Node(id)
}

// NodeIDs returns every node id in creation order.
func (t *Tableau) NodeIDs() []int {
	return t.g.NodeIDs()
}

// NewNodeFrom appends an active formula as a new child of parent and
// returns its id.
func (t *Tableau) NewNodeFrom(parent int, text string, world int) (int, error) {
	if _, ok := t.g.Node(parent); !ok {
		return 0, fmt.Errorf("%w: parent %d", ErrNodeNotFound, parent)
	}
	id := t.g.Append(NewFormula(text, world))
	t.g.AddEdge(parent, id)
	return id, nil
}

// SetState moves node id to state.
func (t *Tableau) SetState(id int, state State) error {
	n, ok := t.g.NodeRef(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n.State = state
	return nil
}

// Deactivate marks id as fully expanded.
func (t *Tableau) Deactivate(id int) error { return t.SetState(id, Inactive) }

// Wait parks id until new worlds become accessible.
func (t *Tableau) Wait(id int) error { return t.SetState(id, WaitingNewWorlds) }

// Activate schedules id for expansion again.
func (t *Tableau) Activate(id int) error { return t.SetState(id, Active) }

// Close marks id, a branch terminal, as refuted.
func (t *Tableau) Close(id int) error { return t.SetState(id, Closed) }

// Rewrite replaces the text of id with an equivalent formula and makes it
// active again.
func (t *Tableau) Rewrite(id int, text string) error {
	n, ok := t.g.NodeRef(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n.Text = text
	n.State = Active
	return nil
}

func (t *Tableau) nodesIn(state State) ([]int, bool) {
	var ids []int
	for id := range t.g.Size() {
		n, _ := t.g.Node(id)
		if n.State == state {
			ids = append(ids, id)
		}
	}
	return ids, len(ids) > 0
}

// ActiveNodes returns the ids of active nodes in ascending order.
func (t *Tableau) ActiveNodes() ([]int, bool) {
	return t.nodesIn(Active)
}

// WaitingNodes returns the ids of nodes waiting for new worlds.
func (t *Tableau) WaitingNodes() ([]int, bool) {
	return t.nodesIn(WaitingNewWorlds)
}

// FirstActiveNode returns the oldest active node. Expanding in creation
// order keeps every formula from being starved.
func (t *Tableau) FirstActiveNode() (int, bool) {
	ids, ok := t.ActiveNodes()
	if !ok {
		return 0, false
	}
	return ids[0], true
}

func (t *Tableau) isOpenLeaf(id int) bool {
	n, ok := t.g.Node(id)
	return ok && t.g.OutDegree(id) == 0 && n.State != Closed
}

// TerminalUnclosed returns the leaves at or below root that are not
// closed.
func (t *Tableau) TerminalUnclosed(root int) ([]int, bool) {
	if _, ok := t.g.Node(root); !ok {
		return nil, false
	}
	var out []int
	if t.isOpenLeaf(root) {
		out = append(out, root)
	}
	if reached, ok := kripke.BFS(t.g, root).AllMarked(); ok {
		for _, id := range reached {
			if t.isOpenLeaf(id) {
				out = append(out, id)
			}
		}
	}
	return out, len(out) > 0
}

// Branch returns the node ids from the root to terminal.
func (t *Tableau) Branch(terminal int) ([]int, bool) {
	return kripke.ShortestPath(t.g, 0, terminal)
}

// UnclosedBranches returns the root-to-leaf paths of every open branch.
func (t *Tableau) UnclosedBranches() ([][]int, bool) {
	terminals, ok := t.TerminalUnclosed(0)
	if !ok {
		return nil, false
	}
	branches := make([][]int, 0, len(terminals))
	for _, term := range terminals {
		if path, ok := t.Branch(term); ok {
			branches = append(branches, path)
		}
	}
	return branches, len(branches) > 0
}

// FindContradictions closes every open branch that holds a literal and
// its negation at the same world. It returns the closed terminals.
func (t *Tableau) FindContradictions() []int {
	branches, ok := t.UnclosedBranches()
	if !ok {
		return nil
	}
	var closed []int
	for _, branch := range branches {
		if t.contradicts(branch) {
			terminal := branch[len(branch)-1]
			_ = t.Close(terminal)
			closed = append(closed, terminal)
		}
	}
	return closed
}

type worldLiteral struct {
	world int
	lit   parser.Literal
}

func (t *Tableau) contradicts(branch []int) bool {
	seen := make(map[worldLiteral]bool)
	for _, id := range branch {
		n, _ := t.g.Node(id)
		lit, ok := parser.ParseLiteral(n.Text)
		if !ok {
			continue
		}
		for other := range seen {
			if other.world == n.World && lit.Complement(other.lit) {
				return true
			}
		}
		seen[worldLiteral{n.World, lit}] = true
	}
	return false
}

// BranchHas reports whether the branch ending at terminal already holds
// text at world. Nodes rewritten by negation pushing still match the text
// they started from.
func (t *Tableau) BranchHas(terminal int, text string, world int) bool {
	branch, ok := t.Branch(terminal)
	if !ok {
		return false
	}
	want := parser.Settled(text)
	for _, id := range branch {
		n, _ := t.g.Node(id)
		if n.World == world && parser.Settled(n.Text) == want {
			return true
		}
	}
	return false
}

// BranchWorlds returns the worlds some node of the branch ending at
// terminal is anchored at. World 0 is always included.
func (t *Tableau) BranchWorlds(terminal int) map[int]bool {
	worlds := map[int]bool{0: true}
	branch, ok := t.Branch(terminal)
	if !ok {
		return worlds
	}
	for _, id := range branch {
		n, _ := t.g.Node(id)
		worlds[n.World] = true
	}
	return worlds
}
