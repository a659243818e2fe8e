package hir

import (
	"bulloak/internal/ast"
	"bulloak/internal/names"
)

// Modifiers is the precomputed mapping from condition titles to modifier
// names, in order of first appearance. The translator emits modifier
// definitions in exactly this order, so the mapping preserves it.
type Modifiers struct {
	byTitle map[string]string
	order   []string
}

// Discover walks one tree depth-first and records a modifier name for every
// condition that is reused further down, i.e. has at least one condition
// child. Pure lookup precomputation: no validation happens here.
func Discover(root *ast.Node) *Modifiers {
	m := &Modifiers{byTitle: make(map[string]string)}
	m.visit(root)
	return m
}

func (m *Modifiers) visit(n *ast.Node) {
	if n.Kind == ast.KindCondition && n.HasConditions() {
		key := names.Canonical(n.Title)
		if _, ok := m.byTitle[key]; !ok {
			m.byTitle[key] = names.ToCamelCase(n.Title)
			m.order = append(m.order, key)
		}
	}
	for _, c := range n.Children {
		m.visit(c)
	}
}

// Lookup returns the modifier name for a condition title.
func (m *Modifiers) Lookup(title string) (string, bool) {
	name, ok := m.byTitle[names.Canonical(title)]
	return name, ok
}

// Len returns the number of discovered modifiers.
func (m *Modifiers) Len() int {
	return len(m.order)
}
