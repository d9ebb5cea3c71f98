package kripke

import (
	"fmt"
	"io"
	"strings"
)

// GenerateGraphviz generates a Graphviz DOT representation of the model.
func (k *Structure) GenerateGraphviz() string {
	var sb strings.Builder

	sb.WriteString("digraph KripkeModel {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	// Invisible start node pointing to the actual world
	sb.WriteString("  start [shape=point];\n")
	fmt.Fprintf(&sb, "  start -> \"w%d\" [label=\"actual\"];\n", k.Actual)
	sb.WriteString("\n")

	for _, w := range k.Worlds {
		labels := k.Labeling[w]
		if len(labels) > 0 {
			fmt.Fprintf(&sb, "  \"w%d\" [label=\"w%d\\n{%s}\"];\n", w, w, strings.Join(labels, ", "))
		} else {
			fmt.Fprintf(&sb, "  \"w%d\" [label=\"w%d\"];\n", w, w)
		}
	}
	sb.WriteString("\n")

	for _, from := range k.Worlds {
		for _, to := range k.Access[from] {
			fmt.Fprintf(&sb, "  \"w%d\" -> \"w%d\";\n", from, to)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// WriteMermaidStateDiagram writes a Mermaid stateDiagram-v2 of the model,
// with the true atoms of each world as its description.
func (k *Structure) WriteMermaidStateDiagram(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "stateDiagram-v2"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  [*] --> w%d\n\n", k.Actual); err != nil {
		return err
	}

	for _, from := range k.Worlds {
		for _, to := range k.Access[from] {
			if _, err := fmt.Fprintf(w, "  w%d --> w%d\n", from, to); err != nil {
				return err
			}
		}
	}

	for _, world := range k.Worlds {
		labels := k.Labeling[world]
		if len(labels) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  w%d : %s\n", world, strings.Join(labels, ", ")); err != nil {
			return err
		}
	}
	return nil
}
