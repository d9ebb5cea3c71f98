package prover

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/kripke-tableau/internal/ctxlog"
	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/parser"
)

func prove(t *testing.T, logic string, formulas ...string) *Result {
	t.Helper()
	frame, err := kripke.LogicFrame(logic)
	require.NoError(t, err)
	p := New(formulas, Options{Frame: frame, LoopCheck: true, MaxSteps: 2000, MaxWorlds: 64})
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestModusPonensCloses(t *testing.T) {
	res := prove(t, "K", "p ⊃ q", "p", "¬q")
	assert.Equal(t, Unsatisfiable, res.Verdict)
	assert.Zero(t, res.OpenBranches)
	assert.Nil(t, res.Countermodel)
}

func TestAtomsGiveCountermodel(t *testing.T) {
	res := prove(t, "S5", "p", "q")
	require.Equal(t, Satisfiable, res.Verdict)
	assert.Equal(t, 1, res.OpenBranches)

	cm := res.Countermodel
	require.NotNil(t, cm)
	assert.Equal(t, []string{"p", "q"}, cm.Asserted(0))
	assert.True(t, cm.Verified)
	assert.NotEmpty(t, res.RunID)
}

func TestEmptyInputIsSatisfiable(t *testing.T) {
	res := prove(t, "K")
	assert.Equal(t, Satisfiable, res.Verdict)
	require.NotNil(t, res.Countermodel)
	assert.Equal(t, []int{0}, res.Countermodel.Worlds)
	assert.True(t, res.Countermodel.Verified)
}

// Each entry is a validity of the logic, so its negation must close.
func TestValiditiesPerLogic(t *testing.T) {
	cases := []struct {
		logic, formula string
	}{
		{"K", "◻(p ⊃ q) ⊃ (◻p ⊃ ◻q)"},
		{"K", "◻(p ⋀ q) ⊃ ◻p"},
		{"K", "◇(p ⋁ q) ⊃ (◇p ⋁ ◇q)"},
		{"K", "¬◇p ⊃ ◻¬p"},
		{"D", "◻p ⊃ ◇p"},
		{"T", "◻p ⊃ p"},
		{"T", "p ⊃ ◇p"},
		{"B", "p ⊃ ◻◇p"},
		{"K4", "◻p ⊃ ◻◻p"},
		{"S4", "◇◇p ⊃ ◇p"},
		{"S5", "◇p ⊃ ◻◇p"},
		{"S5", "◇◻p ⊃ ◻p"},
	}
	for _, tc := range cases {
		t.Run(tc.logic+" "+tc.formula, func(t *testing.T) {
			res := prove(t, tc.logic, parser.Negate(tc.formula))
			assert.Equal(t, Unsatisfiable, res.Verdict, res.Reason)
		})
	}
}

// Each entry fails in the logic, so its negation has a countermodel the
// model checker accepts.
func TestNonValiditiesPerLogic(t *testing.T) {
	cases := []struct {
		logic, formula string
	}{
		{"K", "◻p ⊃ p"},
		{"K", "◻p ⊃ ◇p"},
		{"D", "◻p ⊃ p"},
		{"T", "◻p ⊃ ◻◻p"},
		{"K4", "◻p ⊃ p"},
		{"S4", "◇p ⊃ ◻◇p"},
		{"S5", "◇p ⊃ ◻p"},
	}
	for _, tc := range cases {
		t.Run(tc.logic+" "+tc.formula, func(t *testing.T) {
			res := prove(t, tc.logic, parser.Negate(tc.formula))
			require.Equal(t, Satisfiable, res.Verdict, res.Reason)
			require.NotNil(t, res.Countermodel)
			assert.True(t, res.Countermodel.Verified)
		})
	}
}

func TestBoxAppliesToLaterWorlds(t *testing.T) {
	// The necessity is expanded before the world exists.
	res := prove(t, "K", "◻p", "◇¬p")
	assert.Equal(t, Unsatisfiable, res.Verdict)
}

func TestBoxIgnoresWorldsOfOtherBranches(t *testing.T) {
	// w1 belongs to the right branch only; the box must not put p there
	// for the left branch.
	res := prove(t, "K", "r ⋁ ◇¬p", "◻p ⋁ s")
	require.Equal(t, Satisfiable, res.Verdict)
	assert.True(t, res.Countermodel.Verified)
}

func TestStepLimitIsInconclusive(t *testing.T) {
	frame := kripke.Logics["S5"]
	p := New([]string{"◻◇p"}, Options{Frame: frame, MaxSteps: 25})
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Inconclusive, res.Verdict)
	assert.Contains(t, res.Reason, "step limit")
	assert.Equal(t, 25, res.Steps)
}

func TestWorldLimitIsInconclusive(t *testing.T) {
	p := New([]string{"◇p", "◇q", "◇r"}, Options{MaxWorlds: 2})
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Inconclusive, res.Verdict)
	assert.Contains(t, res.Reason, "world limit")
}

func TestLoopCheckTerminatesS5(t *testing.T) {
	res := prove(t, "S5", "◻◇p")
	require.Equal(t, Satisfiable, res.Verdict)
	assert.True(t, res.Countermodel.Verified)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New([]string{"p"}, Options{}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Inconclusive, res.Verdict)
}

func TestParseErrorsAreFatal(t *testing.T) {
	_, err := New([]string{"p $ q"}, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, parser.ErrUnrecognizedChar)

	_, err = New([]string{"p ⋀"}, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, parser.ErrTooFewOperands)
}

func TestParseErrorsAfterClosedBranch(t *testing.T) {
	// p and ¬p close the only branch before the last line is expanded.
	_, err := New([]string{"p", "¬p", "p $ q"}, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, parser.ErrUnrecognizedChar)

	_, err = New([]string{"p", "¬p", "p ⋀"}, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, parser.ErrTooFewOperands)

	_, err = New([]string{"p", "¬p", "◻(q ⋁)"}, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, parser.ErrTooFewOperands)
}

func TestRewrittenNegationsAreNotDuplicated(t *testing.T) {
	cases := []struct {
		logic    string
		formulas []string
	}{
		{"K", []string{"◻¬◻¬q", "◇p"}},
		{"S4", []string{"◻¬◻¬q"}},
		{"S5", []string{"¬◇¬◇q"}},
		{"B", []string{"(◇(◻q ⋀ ¬q)) ⊃ (◇◇q ⋁ q)", "q"}},
	}
	for _, tc := range cases {
		t.Run(tc.logic, func(t *testing.T) {
			res := prove(t, tc.logic, tc.formulas...)
			require.Equal(t, Satisfiable, res.Verdict, res.Reason)
			assert.True(t, res.Countermodel.Verified)
		})
	}
}

func TestRewrittenNegationsFinishInK(t *testing.T) {
	// Worlds: 0, the ◇p witness, and the witness of the rewritten ¬◻¬q.
	res := prove(t, "K", "◻¬◻¬q", "◇p")
	require.Equal(t, Satisfiable, res.Verdict)
	assert.Equal(t, 3, res.Worlds)
}

func TestTooManyOperandsWarns(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	res, err := New([]string{"◻p q"}, Options{Frame: kripke.Logics["T"]}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Satisfiable, res.Verdict)
	assert.Contains(t, buf.String(), "Too many operands")
	assert.Contains(t, buf.String(), "run_id=")
}

func TestNegationRewrites(t *testing.T) {
	cases := map[string]string{
		"¬¬p":       "p",
		"¬(p ⋀ q)":  "¬p ⋁ ¬q",
		"¬(p ⋁ q)":  "¬p ⋀ ¬q",
		"¬(p ⊃ q)":  "p ⋀ ¬q",
		"¬◻p":       "◇¬p",
		"¬◇(p ⋀ q)": "◻¬(p ⋀ q)",
	}
	for in, want := range cases {
		p := New([]string{in}, Options{})
		more, err := p.Step(context.Background())
		require.NoError(t, err)
		require.True(t, more)
		n, _ := p.Tableau().Node(0)
		assert.Equal(t, want, n.Text, in)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	p := New([]string{"◇p", "p ⋁ q", "¬p"}, Options{Frame: kripke.Logics["K"], Metrics: m})
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Satisfiable, res.Verdict)

	table, err := m.GenerateMetricsTable()
	require.NoError(t, err)
	assert.Contains(t, table, "| tableau_worlds_created_total |  | counter | 1 |")
	assert.Contains(t, table, "operator=POSSIBLE")
	assert.Contains(t, table, "tableau_branches_closed_total")
	assert.Contains(t, table, "verdict=satisfiable")
}

func TestReadFormulas(t *testing.T) {
	in := "# premises\np -> q\n\n  p  \n~q\n[]r & <>s\n"
	got, err := ReadFormulas(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"p ⊃ q", "p", "¬q", "◻r ⋀ ◇s"}, got)
}
