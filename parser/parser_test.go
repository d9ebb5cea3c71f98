package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in       string
		op       Operator
		operands []string
	}{
		{"p", OpAtom, []string{"p"}},
		{"  (p_1)  ", OpAtom, []string{"p_1"}},
		{"¬p", OpNot, []string{"p"}},
		{"¬¬p", OpNot, []string{"¬p"}},
		{"¬(p ⋀ q)", OpNot, []string{"p ⋀ q"}},
		{"p ⋀ q", OpAnd, []string{"p", "q"}},
		{"p ⋀ q ⋀ r", OpAnd, []string{"p ⋀ q", "r"}},
		{"p ⋁ q ⋀ r", OpOr, []string{"p", "q ⋀ r"}},
		{"p ⊃ q ⊃ r", OpImplies, []string{"p", "q ⊃ r"}},
		{"(p ⊃ q) ⊃ r", OpImplies, []string{"p ⊃ q", "r"}},
		{"◻p ⋀ q", OpAnd, []string{"◻p", "q"}},
		{"◻(p ⊃ q)", OpNecessary, []string{"p ⊃ q"}},
		{"◇¬◻p", OpPossible, []string{"¬◻p"}},
		{"((◇p))", OpPossible, []string{"p"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			ins, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.op, ins.Operator)
			assert.Equal(t, tc.operands, ins.Operands)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]error{
		"":        ErrEmptyFormula,
		"   ":     ErrEmptyFormula,
		"()":      ErrEmptyFormula,
		"p $ q":   ErrUnrecognizedChar,
		"(p ⋀ q":  ErrUnbalanced,
		"p ⋀ q)":  ErrUnbalanced,
		"p q":     ErrMissingOperator,
		"p ⋀":     ErrTooFewOperands,
		"⋁ q":     ErrTooFewOperands,
	}
	for in, want := range cases {
		_, err := Parse(in)
		assert.ErrorIs(t, err, want, "%q", in)
	}
}

func TestTruncate(t *testing.T) {
	ins, err := New().Parse("◻p q")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q"}, ins.Operands)

	ins, dropped, err := ins.Truncate()
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []string{"p"}, ins.Operands)

	ins, err = Parse("p q ⋀ r")
	require.NoError(t, err)
	ins, dropped, err = ins.Truncate()
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []string{"p", "q"}, ins.Operands)

	ins, err = Parse("¬")
	require.NoError(t, err)
	_, _, err = ins.Truncate()
	assert.ErrorIs(t, err, ErrTooFewOperands)
}

func TestOperator(t *testing.T) {
	assert.Equal(t, "NECESSARY", OpNecessary.String())
	assert.Equal(t, "Operator(42)", Operator(42).String())
	assert.Equal(t, 2, OpImplies.Arity())
	assert.Equal(t, 1, OpPossible.Arity())
	assert.Equal(t, "◇", OpPossible.Glyph())
	assert.Empty(t, OpAtom.Glyph())
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "¬p", Negate("p"))
	assert.Equal(t, "¬(p ⋀ q)", Negate("p ⋀ q"))
	assert.Equal(t, "¬(p ⋀ q)", Negate("(p ⋀ q)"))
	assert.Equal(t, "◇¬p", Prefix(OpPossible, "¬p"))
	assert.Equal(t, "(p ⋁ q) ⊃ ◻r", Join(OpImplies, "p ⋁ q", "◻r"))
}

func TestParseLiteral(t *testing.T) {
	lit, ok := ParseLiteral("¬(p)")
	require.True(t, ok)
	assert.Equal(t, Literal{Atom: "p", Negated: true}, lit)
	assert.Equal(t, "¬p", lit.String())
	assert.True(t, lit.Complement(Literal{Atom: "p"}))
	assert.False(t, lit.Complement(Literal{Atom: "q"}))

	for _, in := range []string{"¬¬p", "◻p", "p ⋀ q", "", "¬"} {
		_, ok := ParseLiteral(in)
		assert.False(t, ok, in)
	}
}

func TestNegationOf(t *testing.T) {
	cases := map[string]string{
		"¬p":       "p",
		"p ⋀ q":    "¬p ⋁ ¬q",
		"p ⋁ q":    "¬p ⋀ ¬q",
		"p ⊃ q":    "p ⋀ ¬q",
		"◻p":       "◇¬p",
		"◇(p ⋀ q)": "◻¬(p ⋀ q)",
	}
	for in, want := range cases {
		ins, err := Parse(in)
		require.NoError(t, err, in)
		got, ok := NegationOf(ins)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := NegationOf(Instructions{Operator: OpAtom, Operands: []string{"p"}})
	assert.False(t, ok)
}

func TestSettled(t *testing.T) {
	assert.Equal(t, Settled("◇¬¬q"), Settled("¬◻¬q"))
	assert.Equal(t, Settled("◻¬p"), Settled("¬◇p"))
	assert.Equal(t, "q", Settled("¬¬¬¬q"))
	assert.Equal(t, "¬q", Settled("¬¬¬q"))
	assert.NotEqual(t, Settled("◇q"), Settled("◻q"))
	assert.Equal(t, "p$q", Settled("p $ q"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "◻(p ⊃ q) ⊃ (◻p ⊃ ◻q)", Normalize(" [](p -> q) -> ([]p -> []q) "))
	assert.Equal(t, "¬p ⋁ ¬q ⋀ ◇r", Normalize("~p | !q & <>r"))
	assert.Equal(t, "◻p ⋀ ◇q", Normalize("□p ∧ ◊q"))
	// NFC composes e + combining acute into one letter.
	assert.Equal(t, "caf\u00e9", Normalize("cafe\u0301"))
	assert.Equal(t, "p⊃q", Canonical(" p ⊃\tq "))
}
