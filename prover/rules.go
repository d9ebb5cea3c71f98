package prover

import (
	"context"
	"fmt"
	"slices"

	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/parser"
	"github.com/rfielding/kripke-tableau/tableau"
)

// parse decomposes text and enforces the operator's arity. Extra operands
// are dropped with a warning.
func (p *Prover) parse(ctx context.Context, text string) (parser.Instructions, error) {
	ins, err := p.opts.Parser.Parse(text)
	if err != nil {
		return ins, err
	}
	ins, dropped, err := ins.Truncate()
	if err != nil {
		return ins, fmt.Errorf("%q: %w", text, err)
	}
	if dropped > 0 {
		p.logger(ctx).Warn("Too many operands, extra operands ignored.",
			"formula", text, "operator", ins.Operator, "dropped", dropped)
	}
	return ins, nil
}

// expand applies the rule for the main connective of node id.
func (p *Prover) expand(ctx context.Context, id int) error {
	node, ok := p.tab.Node(id)
	if !ok {
		return fmt.Errorf("%w: %d", tableau.ErrNodeNotFound, id)
	}
	ins, err := p.parse(ctx, node.Text)
	if err != nil {
		return fmt.Errorf("node %d: %w", id, err)
	}
	p.logger(ctx).Debug("Expanding node.", "node", id, "formula", node.Text, "world", node.World, "operator", ins.Operator)
	p.opts.Metrics.expanded(ins.Operator)

	ops := ins.Operands
	switch ins.Operator {
	case parser.OpAtom:
		return p.tab.Deactivate(id)
	case parser.OpNot:
		return p.expandNot(ctx, id, ops[0])
	case parser.OpAnd:
		return p.extend(id, node.World, [][]string{{ops[0], ops[1]}})
	case parser.OpOr:
		return p.extend(id, node.World, [][]string{{ops[0]}, {ops[1]}})
	case parser.OpImplies:
		return p.extend(id, node.World, [][]string{{parser.Negate(ops[0])}, {ops[1]}})
	case parser.OpNecessary:
		return p.expandNecessary(ctx, id, node, ops[0])
	case parser.OpPossible:
		return p.expandPossible(ctx, id, node, ops[0])
	}
	return fmt.Errorf("node %d: unsupported operator %s", id, ins.Operator)
}

// extend appends each alternative as its own child chain below every open
// terminal under id. One alternative is a linear extension, two fork.
func (p *Prover) extend(id, world int, alternatives [][]string) error {
	terminals, _ := p.tab.TerminalUnclosed(id)
	for _, term := range terminals {
		for _, chain := range alternatives {
			parent := term
			for _, text := range chain {
				child, err := p.tab.NewNodeFrom(parent, text, world)
				if err != nil {
					return err
				}
				parent = child
			}
		}
	}
	return p.tab.Deactivate(id)
}

// expandNot handles negations. Negated atoms are literals; everything else
// is rewritten in place into an equivalent formula whose main connective
// is not a negation.
func (p *Prover) expandNot(ctx context.Context, id int, operand string) error {
	inner, err := p.parse(ctx, operand)
	if err != nil {
		return fmt.Errorf("node %d: %w", id, err)
	}
	if inner.Operator == parser.OpAtom {
		return p.tab.Deactivate(id)
	}
	rewritten, ok := parser.NegationOf(inner)
	if !ok {
		return fmt.Errorf("node %d: unsupported operator %s", id, inner.Operator)
	}
	p.logger(ctx).Debug("Negation rewritten.", "node", id, "formula", rewritten)
	return p.tab.Rewrite(id, rewritten)
}

// expandNecessary adds operand at every world accessible from node's world
// that the branch already knows about. The node then waits: worlds created
// later on the branch wake it up again.
func (p *Prover) expandNecessary(ctx context.Context, id int, node tableau.Formula, operand string) error {
	terminals, _ := p.tab.TerminalUnclosed(id)
	for _, term := range terminals {
		targets, err := p.necessityTargets(ctx, term, node.World)
		if err != nil {
			return err
		}
		parent := term
		for _, w := range targets {
			if p.tab.BranchHas(parent, operand, w) {
				continue
			}
			child, err := p.tab.NewNodeFrom(parent, operand, w)
			if err != nil {
				return err
			}
			parent = child
		}
	}
	return p.tab.Wait(id)
}

// necessityTargets returns the worlds accessible from world that lie on the
// branch ending at term. Serial frames get a fresh successor when there is
// none.
func (p *Prover) necessityTargets(ctx context.Context, term, world int) ([]int, error) {
	onBranch := p.tab.BranchWorlds(term)
	adj, ok := p.worlds.AdjTo(world)
	if !ok {
		return nil, fmt.Errorf("%w: %d", kripke.ErrWorldNotFound, world)
	}
	targets := slices.DeleteFunc(adj, func(w int) bool { return !onBranch[w] })
	if len(targets) == 0 && p.opts.Frame.Extendable {
		w, err := p.newWorld(ctx, world)
		if err != nil {
			return nil, err
		}
		targets = []int{w}
	}
	return targets, nil
}

// expandPossible gives operand a witness world below every open terminal.
func (p *Prover) expandPossible(ctx context.Context, id int, node tableau.Formula, operand string) error {
	terminals, _ := p.tab.TerminalUnclosed(id)
	if p.opts.LoopCheck {
		terminals = slices.DeleteFunc(terminals, func(term int) bool {
			return p.hasWitness(term, node.World, operand)
		})
	}
	if len(terminals) == 0 {
		return p.tab.Deactivate(id)
	}

	w, err := p.newWorld(ctx, node.World)
	if err != nil {
		return err
	}
	for _, term := range terminals {
		if _, err := p.tab.NewNodeFrom(term, operand, w); err != nil {
			return err
		}
	}
	return p.tab.Deactivate(id)
}

// hasWitness reports whether the branch ending at term already holds
// operand at some world accessible from world.
func (p *Prover) hasWitness(term, world int, operand string) bool {
	adj, _ := p.worlds.AdjTo(world)
	onBranch := p.tab.BranchWorlds(term)
	for _, w := range adj {
		if onBranch[w] && p.tab.BranchHas(term, operand, w) {
			return true
		}
	}
	return false
}

// newWorld creates a world accessible from `from`, closes the frame and
// wakes every waiting necessity formula.
func (p *Prover) newWorld(ctx context.Context, from int) (int, error) {
	if p.opts.MaxWorlds > 0 && p.worlds.Size() >= p.opts.MaxWorlds {
		return 0, fmt.Errorf("%w: %d worlds", ErrWorldLimit, p.worlds.Size())
	}
	w := p.worlds.AddWorld()
	p.worlds.AddEdge(from, w)
	added := p.worlds.ImplementModals(p.opts.Frame)
	p.opts.Metrics.worldCreated()

	waiting, _ := p.tab.WaitingNodes()
	for _, id := range waiting {
		if err := p.tab.Activate(id); err != nil {
			return 0, err
		}
	}
	p.logger(ctx).Debug("World created.", "world", w, "from", from, "closure_edges", added, "reactivated", len(waiting))
	return w, nil
}
