// Package render writes proof results for people and tools.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/prover"
	"github.com/rfielding/kripke-tableau/tableau"
)

// Formats accepted by Write.
const (
	FormatText    = "text"
	FormatYAML    = "yaml"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Write renders res in format. Graph formats fall back to text when there
// is no countermodel to draw.
func Write(w io.Writer, res *prover.Result, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return Text(w, res)
	case FormatYAML:
		return YAML(w, res)
	case FormatDOT:
		if res.Countermodel == nil {
			return Text(w, res)
		}
		_, err := io.WriteString(w, res.Countermodel.GenerateGraphviz())
		return err
	case FormatMermaid:
		if res.Countermodel == nil {
			return Text(w, res)
		}
		return res.Countermodel.WriteMermaidStateDiagram(w)
	}
	return fmt.Errorf("unknown output format %q", format)
}

type styles struct {
	title, good, bad, warn, dim lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		good:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		bad:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		warn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Text writes a human readable report.
func Text(w io.Writer, res *prover.Result) error {
	st := newStyles(w)
	var sb strings.Builder

	switch res.Verdict {
	case prover.Satisfiable:
		sb.WriteString(st.good.Render("Satisfiable") + ": an open branch survived.\n")
	case prover.Unsatisfiable:
		sb.WriteString(st.bad.Render("Unsatisfiable") + ": every branch closed.\n")
	default:
		fmt.Fprintf(&sb, "%s: %s\n", st.warn.Render("Inconclusive"), res.Reason)
	}
	fmt.Fprintf(&sb, "%s frame=%s steps=%d nodes=%d worlds=%d open=%d\n",
		st.dim.Render("run "+res.RunID), res.Frame, res.Steps, res.Nodes, res.Worlds, res.OpenBranches)

	if cm := res.Countermodel; cm != nil {
		sb.WriteString("\n" + st.title.Render("Countermodel") + "\n")
		fmt.Fprintf(&sb, "  actual world: w%d\n", cm.Actual)
		for _, world := range cm.Worlds {
			fmt.Fprintf(&sb, "  w%d -> %s : {%s}", world, worldNames(cm.Successors(world)), strings.Join(cm.Asserted(world), ", "))
			if denied := cm.Denied[world]; len(denied) > 0 {
				sb.WriteString(st.dim.Render(fmt.Sprintf("  not {%s}", strings.Join(denied, ", "))))
			}
			sb.WriteString("\n")
		}
		if !cm.Verified {
			sb.WriteString(st.warn.Render("  model check failed for the input formulas") + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ActiveNodes writes the minimal report: the active node ids of a fresh
// tableau and their formulas.
func ActiveNodes(w io.Writer, tab *tableau.Tableau, ids []int) error {
	st := newStyles(w)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %v\n", st.title.Render("Active nodes:"), ids)
	for _, id := range ids {
		n, ok := tab.Node(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %d: %s\n", id, n)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type document struct {
	RunID        string       `yaml:"run_id"`
	Verdict      string       `yaml:"verdict"`
	Reason       string       `yaml:"reason,omitempty"`
	Frame        kripke.Frame `yaml:"frame"`
	Formulas     []string     `yaml:"formulas"`
	Steps        int          `yaml:"steps"`
	Nodes        int          `yaml:"nodes"`
	Worlds       int          `yaml:"worlds"`
	OpenBranches int          `yaml:"open_branches"`
	Countermodel *modelDoc    `yaml:"countermodel,omitempty"`
}

type modelDoc struct {
	Actual   string     `yaml:"actual"`
	Verified bool       `yaml:"verified"`
	Branch   []int      `yaml:"branch,flow"`
	Worlds   []worldDoc `yaml:"worlds"`
}

type worldDoc struct {
	ID     string   `yaml:"id"`
	Access []string `yaml:"access,flow"`
	Atoms  []string `yaml:"atoms,flow"`
	Denied []string `yaml:"denied,flow,omitempty"`
}

// YAML writes res as a YAML document.
func YAML(w io.Writer, res *prover.Result) error {
	doc := document{
		RunID:        res.RunID,
		Verdict:      res.Verdict.String(),
		Reason:       res.Reason,
		Frame:        res.Frame,
		Formulas:     res.Formulas,
		Steps:        res.Steps,
		Nodes:        res.Nodes,
		Worlds:       res.Worlds,
		OpenBranches: res.OpenBranches,
	}
	if cm := res.Countermodel; cm != nil {
		md := &modelDoc{
			Actual:   fmt.Sprintf("w%d", cm.Actual),
			Verified: cm.Verified,
			Branch:   cm.Branch,
		}
		for _, world := range cm.Worlds {
			md.Worlds = append(md.Worlds, worldDoc{
				ID:     fmt.Sprintf("w%d", world),
				Access: worldIDs(cm.Successors(world)),
				Atoms:  append([]string{}, cm.Asserted(world)...),
				Denied: cm.Denied[world],
			})
		}
		doc.Countermodel = md
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func worldIDs(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("w%d", id)
	}
	return out
}

func worldNames(ids []int) string {
	return "[" + strings.Join(worldIDs(ids), " ") + "]"
}
