// Package parser turns a modal formula string into the operator and
// operand strings of its main connective.
//
// Only the top level of a formula is analysed. Operands are handed back as
// opaque strings and parsed again when they become tableau nodes of their
// own. Binary connectives bind in the order ⋀, ⋁, ⊃ (loosest); ⊃ groups to
// the right, ⋀ and ⋁ to the left. Unary connectives ¬ ◻ ◇ bind tightest.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Canonical connective glyphs.
const (
	GlyphNot       = "¬"
	GlyphAnd       = "⋀"
	GlyphOr        = "⋁"
	GlyphImplies   = "⊃"
	GlyphNecessary = "◻"
	GlyphPossible  = "◇"
)

var (
	// ErrEmptyFormula is returned for blank input.
	ErrEmptyFormula = errors.New("empty formula")

	// ErrUnrecognizedChar is returned when a formula holds a character
	// that is neither a connective, a parenthesis nor part of an atom.
	ErrUnrecognizedChar = errors.New("unable to parse char")

	// ErrUnbalanced is returned for mismatched parentheses.
	ErrUnbalanced = errors.New("unbalanced parentheses")

	// ErrMissingOperator is returned when operands are juxtaposed
	// without a connective, as in "p q".
	ErrMissingOperator = errors.New("missing operator")

	// ErrTooFewOperands is returned when a connective lacks operands.
	ErrTooFewOperands = errors.New("too few operands")
)

// Operator identifies the main connective of a formula.
type Operator int

const (
	OpAtom Operator = iota
	OpNot
	OpAnd
	OpOr
	OpImplies
	OpNecessary
	OpPossible
)

var operatorNames = map[Operator]string{
	OpAtom:      "ATOM",
	OpNot:       "NOT",
	OpAnd:       "AND",
	OpOr:        "OR",
	OpImplies:   "IMPLIES",
	OpNecessary: "NECESSARY",
	OpPossible:  "POSSIBLE",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Arity is the number of operands the operator takes.
func (o Operator) Arity() int {
	switch o {
	case OpAnd, OpOr, OpImplies:
		return 2
	default:
		return 1
	}
}

// Glyph returns the canonical symbol of the operator, empty for atoms.
func (o Operator) Glyph() string {
	switch o {
	case OpNot:
		return GlyphNot
	case OpAnd:
		return GlyphAnd
	case OpOr:
		return GlyphOr
	case OpImplies:
		return GlyphImplies
	case OpNecessary:
		return GlyphNecessary
	case OpPossible:
		return GlyphPossible
	}
	return ""
}

var unaryOps = map[rune]Operator{
	'¬': OpNot,
	'◻': OpNecessary,
	'◇': OpPossible,
}

var binaryOps = map[rune]Operator{
	'⋀': OpAnd,
	'⋁': OpOr,
	'⊃': OpImplies,
}

// Instructions is the decomposition of one formula.
type Instructions struct {
	Operator Operator
	Operands []string
}

// Truncate enforces the operator's arity. Extra operands are dropped and
// counted; missing operands are an error.
func (ins Instructions) Truncate() (Instructions, int, error) {
	want := ins.Operator.Arity()
	if len(ins.Operands) < want {
		return ins, 0, fmt.Errorf("%w for %s: got %d, want %d", ErrTooFewOperands, ins.Operator, len(ins.Operands), want)
	}
	for _, op := range ins.Operands[:want] {
		if strings.TrimSpace(op) == "" {
			return ins, 0, fmt.Errorf("%w for %s: empty operand", ErrTooFewOperands, ins.Operator)
		}
	}
	dropped := len(ins.Operands) - want
	ins.Operands = ins.Operands[:want]
	return ins, dropped, nil
}

// Parser splits formulas at their main connective.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse decomposes formula. Extra operands are kept so the caller can
// decide how to report them; see Instructions.Truncate.
func (p *Parser) Parse(formula string) (Instructions, error) {
	return Parse(formula)
}

// Parse decomposes formula with the default parser.
func Parse(formula string) (Instructions, error) {
	runes := []rune(strings.TrimSpace(formula))
	if len(runes) == 0 {
		return Instructions{}, ErrEmptyFormula
	}
	if err := validate(runes, formula); err != nil {
		return Instructions{}, err
	}
	runes = stripOuter(runes)
	if len(runes) == 0 {
		return Instructions{}, fmt.Errorf("%w: %q", ErrEmptyFormula, formula)
	}

	if at, op, ok := mainBinary(runes); ok {
		left := trimRunes(runes[:at])
		right := trimRunes(runes[at+1:])
		leftOps := sideOperands(left)
		rightOps := sideOperands(right)
		if len(leftOps) == 0 || len(rightOps) == 0 {
			return Instructions{Operator: op}, fmt.Errorf("%w for %s in %q", ErrTooFewOperands, op, formula)
		}
		return Instructions{Operator: op, Operands: append(leftOps, rightOps...)}, nil
	}

	units := splitUnits(runes)
	first := units[0]
	if op, ok := unaryOps[first[0]]; ok {
		operands := []string{}
		if rest := trimRunes(first[1:]); len(rest) > 0 {
			operands = append(operands, string(stripOuter(rest)))
		}
		for _, u := range units[1:] {
			operands = append(operands, string(stripOuter(u)))
		}
		return Instructions{Operator: op, Operands: operands}, nil
	}
	if len(units) > 1 {
		return Instructions{}, fmt.Errorf("%w in %q", ErrMissingOperator, formula)
	}
	return Instructions{Operator: OpAtom, Operands: []string{string(first)}}, nil
}

func isUnary(r rune) bool {
	_, ok := unaryOps[r]
	return ok
}

func isBinary(r rune) bool {
	_, ok := binaryOps[r]
	return ok
}

func isAtomRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func validate(runes []rune, formula string) error {
	depth := 0
	for _, r := range runes {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w in %q", ErrUnbalanced, formula)
			}
		case unicode.IsSpace(r), isAtomRune(r):
		case isUnary(r), isBinary(r):
		default:
			return fmt.Errorf("%w %q in %q", ErrUnrecognizedChar, r, formula)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w in %q", ErrUnbalanced, formula)
	}
	return nil
}

func trimRunes(runes []rune) []rune {
	start, end := 0, len(runes)
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return runes[start:end]
}

// matching returns the index of the parenthesis closing the one at open.
func matching(runes []rune, open int) int {
	depth := 0
	for i := open; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripOuter removes parentheses that enclose the whole formula.
func stripOuter(runes []rune) []rune {
	runes = trimRunes(runes)
	for len(runes) >= 2 && runes[0] == '(' && matching(runes, 0) == len(runes)-1 {
		runes = trimRunes(runes[1 : len(runes)-1])
	}
	return runes
}

// mainBinary finds the loosest top-level binary connective.
func mainBinary(runes []rune) (int, Operator, bool) {
	firstImplies, lastOr, lastAnd := -1, -1, -1
	depth := 0
	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case '⊃':
			if depth == 0 && firstImplies < 0 {
				firstImplies = i
			}
		case '⋁':
			if depth == 0 {
				lastOr = i
			}
		case '⋀':
			if depth == 0 {
				lastAnd = i
			}
		}
	}
	switch {
	case firstImplies >= 0:
		return firstImplies, OpImplies, true
	case lastOr >= 0:
		return lastOr, OpOr, true
	case lastAnd >= 0:
		return lastAnd, OpAnd, true
	}
	return 0, OpAtom, false
}

func hasBinary(runes []rune) bool {
	_, _, ok := mainBinary(runes)
	return ok
}

// sideOperands returns the operands on one side of a binary connective. A
// side holding a connective of its own is a single operand; otherwise
// juxtaposed units count as separate operands.
func sideOperands(side []rune) []string {
	side = trimRunes(side)
	if len(side) == 0 {
		return nil
	}
	if hasBinary(side) {
		return []string{string(stripOuter(side))}
	}
	units := splitUnits(side)
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, string(stripOuter(u)))
	}
	return out
}

// splitUnits cuts a formula without top-level binary connectives into
// units: unary prefixes followed by an atom or a parenthesised group.
func splitUnits(runes []rune) [][]rune {
	var units [][]rune
	i, n := 0, len(runes)
	for i < n {
		for i < n && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		for i < n && (isUnary(runes[i]) || unicode.IsSpace(runes[i])) {
			i++
		}
		switch {
		case i < n && runes[i] == '(':
			i = matching(runes, i) + 1
		case i < n && isAtomRune(runes[i]):
			for i < n && isAtomRune(runes[i]) {
				i++
			}
		case i == start:
			i++
		}
		units = append(units, trimRunes(runes[start:i]))
	}
	return units
}
