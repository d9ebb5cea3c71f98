package tableau

import "fmt"

// State is the expansion state of a proof-tree node.
type State int

const (
	// Active nodes still have to be expanded.
	Active State = iota
	// Inactive nodes are fully expanded.
	Inactive
	// WaitingNewWorlds marks necessity formulas that are re-expanded when
	// new worlds become accessible.
	WaitingNewWorlds
	// Closed marks the terminal node of a refuted branch.
	Closed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case WaitingNewWorlds:
		return "waiting"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Formula is a proof-tree node: a formula evaluated at a world.
type Formula struct {
	Text  string
	World int
	State State
}

// NewFormula creates an active formula anchored at world.
func NewFormula(text string, world int) Formula {
	return Formula{Text: text, World: world, State: Active}
}

func (f Formula) String() string {
	return fmt.Sprintf("%s @w%d [%s]", f.Text, f.World, f.State)
}
