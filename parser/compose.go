package parser

import "strings"

// Wrap parenthesises formula when it has a top-level binary connective,
// so it can be used as an operand.
func Wrap(formula string) string {
	runes := stripOuter([]rune(formula))
	if hasBinary(runes) {
		return "(" + string(runes) + ")"
	}
	return string(runes)
}

// Negate returns ¬formula.
func Negate(formula string) string {
	return GlyphNot + Wrap(formula)
}

// Prefix applies a unary operator to formula.
func Prefix(op Operator, formula string) string {
	return op.Glyph() + Wrap(formula)
}

// Join combines two formulas with a binary operator.
func Join(op Operator, left, right string) string {
	return Wrap(left) + " " + op.Glyph() + " " + Wrap(right)
}

// Literal is an atom or a negated atom.
type Literal struct {
	Atom    string
	Negated bool
}

func (l Literal) String() string {
	if l.Negated {
		return GlyphNot + l.Atom
	}
	return l.Atom
}

// Complement reports whether l and other are an atom and its negation.
func (l Literal) Complement(other Literal) bool {
	return l.Atom == other.Atom && l.Negated != other.Negated
}

// ParseLiteral recognises p, ¬p and their parenthesised spellings.
func ParseLiteral(formula string) (Literal, bool) {
	runes := stripOuter([]rune(formula))
	negated := false
	if len(runes) > 0 && runes[0] == '¬' {
		negated = true
		runes = stripOuter(runes[1:])
	}
	if len(runes) == 0 {
		return Literal{}, false
	}
	for _, r := range runes {
		if !isAtomRune(r) {
			return Literal{}, false
		}
	}
	return Literal{Atom: string(runes), Negated: negated}, true
}

// NegationOf returns a formula equivalent to the negation of ins whose
// main connective is not ¬, applying De Morgan and the modal dualities.
// It reports false for atoms, whose negation is already a literal.
func NegationOf(ins Instructions) (string, bool) {
	ops := ins.Operands
	switch ins.Operator {
	case OpNot:
		return ops[0], true
	case OpAnd:
		return Join(OpOr, Negate(ops[0]), Negate(ops[1])), true
	case OpOr:
		return Join(OpAnd, Negate(ops[0]), Negate(ops[1])), true
	case OpImplies:
		return Join(OpAnd, ops[0], Negate(ops[1])), true
	case OpNecessary:
		return Prefix(OpPossible, Negate(ops[0])), true
	case OpPossible:
		return Prefix(OpNecessary, Negate(ops[0])), true
	}
	return "", false
}

// Settled pushes negations off the main connective until none can move
// and returns the canonical text. Formulas that differ only by such
// rewrites settle to the same string. Unparseable text is only
// canonicalized.
func Settled(formula string) string {
	for {
		next, ok := pushNegation(formula)
		if !ok {
			return Canonical(formula)
		}
		formula = next
	}
}

func pushNegation(formula string) (string, bool) {
	ins, err := Parse(formula)
	if err != nil || ins.Operator != OpNot {
		return "", false
	}
	if ins, _, err = ins.Truncate(); err != nil {
		return "", false
	}
	inner, err := Parse(ins.Operands[0])
	if err != nil {
		return "", false
	}
	if inner, _, err = inner.Truncate(); err != nil {
		return "", false
	}
	return NegationOf(inner)
}

// Canonical renders formula with normalized spacing, used to compare
// formulas for equality on a branch.
func Canonical(formula string) string {
	return strings.Join(strings.Fields(formula), "")
}
