package kripke

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Structure is a Kripke model: worlds, accessibility and the atoms true
// at each world. Actual is the world the input formulas are evaluated at.
type Structure struct {
	Worlds   []int
	Actual   int
	Access   map[int][]int
	Labeling map[int][]string
}

// NewStructure creates a model containing only the actual world.
func NewStructure(actual int) *Structure {
	return &Structure{
		Worlds:   []int{actual},
		Actual:   actual,
		Access:   make(map[int][]int),
		Labeling: make(map[int][]string),
	}
}

// AddWorld adds w if it is not already present.
func (k *Structure) AddWorld(w int) {
	if slices.Contains(k.Worlds, w) {
		return
	}
	k.Worlds = append(k.Worlds, w)
	sort.Ints(k.Worlds)
}

// AddAccess makes to accessible from from.
func (k *Structure) AddAccess(from, to int) {
	k.AddWorld(from)
	k.AddWorld(to)
	if slices.Contains(k.Access[from], to) {
		return
	}
	k.Access[from] = append(k.Access[from], to)
	sort.Ints(k.Access[from])
}

// AddLabel marks atom as true at w.
func (k *Structure) AddLabel(w int, atom string) {
	k.AddWorld(w)
	if slices.Contains(k.Labeling[w], atom) {
		return
	}
	k.Labeling[w] = append(k.Labeling[w], atom)
	sort.Strings(k.Labeling[w])
}

// HasLabel reports whether atom is true at w.
func (k *Structure) HasLabel(w int, atom string) bool {
	return slices.Contains(k.Labeling[w], atom)
}

// Successors returns the worlds accessible from w.
func (k *Structure) Successors(w int) []int {
	return k.Access[w]
}

func (k *Structure) String() string {
	var sb strings.Builder
	sb.WriteString("Kripke Model:\n")
	fmt.Fprintf(&sb, "  Actual World: w%d\n", k.Actual)
	sb.WriteString("  Worlds:\n")
	for _, w := range k.Worlds {
		fmt.Fprintf(&sb, "    w%d -> %s : {%s}\n", w, worldList(k.Access[w]), strings.Join(k.Labeling[w], ", "))
	}
	return sb.String()
}

func worldList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("w%d", id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
