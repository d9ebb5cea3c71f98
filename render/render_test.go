package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/prover"
)

func run(t *testing.T, formulas ...string) *prover.Result {
	t.Helper()
	p := prover.New(formulas, prover.Options{Frame: kripke.Logics["S5"], LoopCheck: true, MaxSteps: 500})
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestTextSatisfiable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run(t, "p", "¬q"), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Satisfiable")
	assert.Contains(t, out, "Countermodel")
	assert.Contains(t, out, "w0 -> [w0] : {p}")
	assert.Contains(t, out, "not {q}")
	assert.NotContains(t, out, "model check failed")
}

func TestTextUnsatisfiable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, run(t, "p ⊃ q", "p", "¬q")))
	assert.Contains(t, buf.String(), "Unsatisfiable")
	assert.NotContains(t, buf.String(), "Countermodel")
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run(t, "◇p"), FormatYAML))

	var doc struct {
		Verdict      string `yaml:"verdict"`
		Countermodel struct {
			Actual   string `yaml:"actual"`
			Verified bool   `yaml:"verified"`
			Worlds   []struct {
				ID     string   `yaml:"id"`
				Access []string `yaml:"access"`
				Atoms  []string `yaml:"atoms"`
			} `yaml:"worlds"`
		} `yaml:"countermodel"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "satisfiable", doc.Verdict)
	assert.Equal(t, "w0", doc.Countermodel.Actual)
	assert.True(t, doc.Countermodel.Verified)
	require.Len(t, doc.Countermodel.Worlds, 2)
	assert.Equal(t, "w1", doc.Countermodel.Worlds[1].ID)
	assert.Equal(t, []string{"p"}, doc.Countermodel.Worlds[1].Atoms)
	assert.ElementsMatch(t, []string{"w0", "w1"}, doc.Countermodel.Worlds[1].Access)
}

func TestGraphFormats(t *testing.T) {
	res := run(t, "◇p")

	var dot bytes.Buffer
	require.NoError(t, Write(&dot, res, FormatDOT))
	assert.Contains(t, dot.String(), "digraph KripkeModel {")
	assert.Contains(t, dot.String(), `"w0" -> "w1";`)

	var mermaid bytes.Buffer
	require.NoError(t, Write(&mermaid, res, FormatMermaid))
	assert.Contains(t, mermaid.String(), "stateDiagram-v2")
	assert.Contains(t, mermaid.String(), "w1 : p")
}

func TestGraphFormatsWithoutModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run(t, "p", "¬p"), FormatDOT))
	assert.Contains(t, buf.String(), "Unsatisfiable")
}

func TestUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, run(t, "p"), "pdf"))
}

func TestActiveNodes(t *testing.T) {
	p := prover.New([]string{"p ⋀ q", "r"}, prover.Options{})
	var buf bytes.Buffer
	require.NoError(t, ActiveNodes(&buf, p.Tableau(), p.ActiveNodes()))
	assert.Contains(t, buf.String(), "[0 1]")
	assert.Contains(t, buf.String(), "0: p ⋀ q @w0 [active]")
}
