package prover

import (
	"context"
	"fmt"
	"slices"

	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/parser"
)

// Countermodel is a Kripke model read off an open branch. Atoms are true
// where the branch asserts them; Denied lists the atoms the branch negates
// explicitly, every other atom is false as well.
type Countermodel struct {
	*kripke.Structure

	Branch []int
	Denied map[int][]string
	// Verified is set when the model checker confirms every input formula
	// at the actual world.
	Verified bool
}

// Asserted returns the atoms true at w.
func (cm *Countermodel) Asserted(w int) []string {
	return cm.Labeling[w]
}

// Countermodel builds the model of the first open branch. It returns nil
// when every branch is closed.
func (p *Prover) Countermodel(ctx context.Context) (*Countermodel, error) {
	cm := &Countermodel{
		Structure: kripke.NewStructure(0),
		Denied:    make(map[int][]string),
	}
	if p.tab.Size() > 0 {
		branches, ok := p.tab.UnclosedBranches()
		if !ok {
			return nil, nil
		}
		cm.Branch = branches[0]
		p.readBranch(cm)
	}

	verified, err := p.verify(cm.Structure)
	if err != nil {
		return nil, err
	}
	cm.Verified = verified
	if !verified {
		p.logger(ctx).Warn("Countermodel does not satisfy the input.", "branch", cm.Branch)
	}
	return cm, nil
}

func (p *Prover) readBranch(cm *Countermodel) {
	terminal := cm.Branch[len(cm.Branch)-1]
	onBranch := p.tab.BranchWorlds(terminal)
	for w := range onBranch {
		cm.AddWorld(w)
		adj, _ := p.worlds.AdjTo(w)
		for _, succ := range adj {
			if onBranch[succ] {
				cm.AddAccess(w, succ)
			}
		}
	}
	for _, id := range cm.Branch {
		n, _ := p.tab.Node(id)
		lit, ok := parser.ParseLiteral(n.Text)
		if !ok {
			continue
		}
		if !lit.Negated {
			cm.AddLabel(n.World, lit.Atom)
			continue
		}
		if !slices.Contains(cm.Denied[n.World], lit.Atom) {
			cm.Denied[n.World] = append(cm.Denied[n.World], lit.Atom)
			slices.Sort(cm.Denied[n.World])
		}
	}
}

// verify checks every input formula at the actual world of k.
func (p *Prover) verify(k *kripke.Structure) (bool, error) {
	mc := kripke.NewModelChecker(k)
	for _, text := range p.formulas {
		f, err := ToModal(p.opts.Parser, text)
		if err != nil {
			return false, err
		}
		if !mc.Holds(f) {
			return false, nil
		}
	}
	return true, nil
}

// ToModal parses text completely into a formula tree.
func ToModal(ps Parser, text string) (kripke.Formula, error) {
	ins, err := ps.Parse(text)
	if err != nil {
		return nil, err
	}
	ins, _, err = ins.Truncate()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", text, err)
	}
	if ins.Operator == parser.OpAtom {
		return kripke.Atom{Name: ins.Operands[0]}, nil
	}

	sub := make([]kripke.Formula, len(ins.Operands))
	for i, op := range ins.Operands {
		if sub[i], err = ToModal(ps, op); err != nil {
			return nil, err
		}
	}
	switch ins.Operator {
	case parser.OpNot:
		return kripke.Not{F: sub[0]}, nil
	case parser.OpAnd:
		return kripke.And{Left: sub[0], Right: sub[1]}, nil
	case parser.OpOr:
		return kripke.Or{Left: sub[0], Right: sub[1]}, nil
	case parser.OpImplies:
		return kripke.Implies{Left: sub[0], Right: sub[1]}, nil
	case parser.OpNecessary:
		return kripke.Box{F: sub[0]}, nil
	case parser.OpPossible:
		return kripke.Diamond{F: sub[0]}, nil
	}
	return nil, fmt.Errorf("%q: unsupported operator %s", text, ins.Operator)
}
