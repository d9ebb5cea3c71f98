package kripke

import "fmt"

// Formula is a modal propositional formula tree.
type Formula interface {
	String() string
}

// Atom is an atomic proposition.
type Atom struct {
	Name string
}

func (a Atom) String() string {
	return a.Name
}

// Not is negation.
type Not struct {
	F Formula
}

func (n Not) String() string {
	return fmt.Sprintf("¬%s", n.F)
}

// And is conjunction.
type And struct {
	Left, Right Formula
}

func (a And) String() string {
	return fmt.Sprintf("(%s ⋀ %s)", a.Left, a.Right)
}

// Or is disjunction.
type Or struct {
	Left, Right Formula
}

func (o Or) String() string {
	return fmt.Sprintf("(%s ⋁ %s)", o.Left, o.Right)
}

// Implies is material implication.
type Implies struct {
	Left, Right Formula
}

func (i Implies) String() string {
	return fmt.Sprintf("(%s ⊃ %s)", i.Left, i.Right)
}

// Box holds at a world when F holds at every accessible world.
type Box struct {
	F Formula
}

func (b Box) String() string {
	return fmt.Sprintf("◻%s", b.F)
}

// Diamond holds at a world when F holds at some accessible world.
type Diamond struct {
	F Formula
}

func (d Diamond) String() string {
	return fmt.Sprintf("◇%s", d.F)
}
