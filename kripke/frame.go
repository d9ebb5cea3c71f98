package kripke

import (
	"fmt"
	"sort"
	"strings"
)

// Frame selects the properties the accessibility relation is closed under.
type Frame struct {
	Reflexive  bool `toml:"reflexive" yaml:"reflexive"`
	Symmetric  bool `toml:"symmetric" yaml:"symmetric"`
	Transitive bool `toml:"transitive" yaml:"transitive"`
	// Extendable (serial) frames give every world a successor. The closure
	// cannot invent worlds, so the necessity rule enforces it instead.
	Extendable bool `toml:"extendable" yaml:"extendable"`
}

// Logics maps the usual names of normal modal logics to their frames.
var Logics = map[string]Frame{
	"K":  {},
	"D":  {Extendable: true},
	"T":  {Reflexive: true},
	"B":  {Reflexive: true, Symmetric: true},
	"K4": {Transitive: true},
	"D4": {Transitive: true, Extendable: true},
	"S4": {Reflexive: true, Transitive: true},
	"S5": {Reflexive: true, Symmetric: true, Transitive: true},
}

// DefaultLogic is used when no logic is configured.
const DefaultLogic = "S5"

// LogicFrame looks up a logic by name, case-insensitively.
func LogicFrame(name string) (Frame, error) {
	f, ok := Logics[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Frame{}, fmt.Errorf("unknown logic %q (known: %s)", name, strings.Join(LogicNames(), ", "))
	}
	return f, nil
}

// LogicNames returns the known logic names sorted.
func LogicNames() []string {
	names := make([]string, 0, len(Logics))
	for name := range Logics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Frame) String() string {
	var props []string
	if f.Reflexive {
		props = append(props, "reflexive")
	}
	if f.Symmetric {
		props = append(props, "symmetric")
	}
	if f.Transitive {
		props = append(props, "transitive")
	}
	if f.Extendable {
		props = append(props, "extendable")
	}
	if len(props) == 0 {
		return "unrestricted"
	}
	return strings.Join(props, ",")
}

// ImplementModals closes the accessibility relation under the selected
// properties. One pass per property is not enough in general (symmetry
// after transitivity creates pairs that need transitivity again), so the
// passes repeat until none of them adds an edge. It returns the number of
// edges added.
func (wg *WorldGraph) ImplementModals(f Frame) int {
	added := 0
	for {
		changed := 0
		if f.Reflexive {
			changed += wg.reflexivePass()
		}
		if f.Transitive {
			changed += wg.transitivePass()
		}
		if f.Symmetric {
			changed += wg.symmetricPass()
		}
		added += changed
		if changed == 0 {
			return added
		}
	}
}

func (wg *WorldGraph) reflexivePass() int {
	n := 0
	for _, id := range wg.NodeIDs() {
		if wg.AddEdge(id, id) {
			n++
		}
	}
	return n
}

func (wg *WorldGraph) transitivePass() int {
	n := 0
	for _, w := range wg.NodeIDs() {
		reached, ok := BFS(wg, w).AllMarked()
		if !ok {
			continue
		}
		for _, wPrime := range reached {
			if wg.AddEdge(w, wPrime) {
				n++
			}
		}
	}
	return n
}

func (wg *WorldGraph) symmetricPass() int {
	n := 0
	for _, w := range wg.NodeIDs() {
		adj, _ := wg.AdjTo(w)
		for _, wPrime := range adj {
			if wg.AddEdge(wPrime, w) {
				n++
			}
		}
	}
	return n
}
