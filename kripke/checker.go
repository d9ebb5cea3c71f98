package kripke

// ModelChecker evaluates modal formulas on a Kripke model.
type ModelChecker struct {
	Structure *Structure
}

// NewModelChecker creates a new model checker.
func NewModelChecker(k *Structure) *ModelChecker {
	return &ModelChecker{Structure: k}
}

// Check returns the set of worlds where formula holds.
func (mc *ModelChecker) Check(formula Formula) map[int]bool {
	k := mc.Structure
	switch f := formula.(type) {
	case Atom:
		return mc.where(func(w int) bool { return k.HasLabel(w, f.Name) })
	case Not:
		sub := mc.Check(f.F)
		return mc.where(func(w int) bool { return !sub[w] })
	case And:
		left, right := mc.Check(f.Left), mc.Check(f.Right)
		return mc.where(func(w int) bool { return left[w] && right[w] })
	case Or:
		left, right := mc.Check(f.Left), mc.Check(f.Right)
		return mc.where(func(w int) bool { return left[w] || right[w] })
	case Implies:
		left, right := mc.Check(f.Left), mc.Check(f.Right)
		return mc.where(func(w int) bool { return !left[w] || right[w] })
	case Box:
		// Vacuously true at worlds without successors.
		sub := mc.Check(f.F)
		return mc.where(func(w int) bool { return mc.successors(w, sub) == len(k.Successors(w)) })
	case Diamond:
		sub := mc.Check(f.F)
		return mc.where(func(w int) bool { return mc.successors(w, sub) > 0 })
	}
	return make(map[int]bool)
}

// Holds checks formula at the actual world.
func (mc *ModelChecker) Holds(formula Formula) bool {
	return mc.Check(formula)[mc.Structure.Actual]
}

// where collects the worlds satisfying pred.
func (mc *ModelChecker) where(pred func(w int) bool) map[int]bool {
	result := make(map[int]bool)
	for _, w := range mc.Structure.Worlds {
		if pred(w) {
			result[w] = true
		}
	}
	return result
}

// successors counts the successors of w that lie in set.
func (mc *ModelChecker) successors(w int, set map[int]bool) int {
	n := 0
	for _, succ := range mc.Structure.Successors(w) {
		if set[succ] {
			n++
		}
	}
	return n
}
