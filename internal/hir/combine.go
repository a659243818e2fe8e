package hir

import (
	"fmt"
	"strings"

	"bulloak/internal/diag"
	"bulloak/internal/names"
)

// separator splits a multi-root identifier into its contract and function
// components.
const separator = "::"

// Combine merges the per-tree HIRs of a multi-root spec file into a single
// root wrapping a single contract definition.
//
// Every root identifier must have the form "Contract::function". The first
// root's contract component names the combined contract; functions are
// renamed by inserting the PascalCased function component after their
// prefix; modifiers are deduplicated by identifier, first occurrence wins.
// Validation findings are batched through the reporter; ok is false when
// any root was rejected.
func Combine(trees []*Node, rep diag.Reporter) (*Node, bool) {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	if len(trees) == 1 {
		return trees[0], true
	}

	type part struct {
		contract *Node
		name     string
		fn       string
	}
	parts := make([]part, 0, len(trees))

	ok := true
	expected := ""
	for i, tree := range trees {
		contract := tree.Contract()
		if contract == nil {
			continue
		}
		name, fn, found := strings.Cut(contract.Identifier, separator)
		switch {
		case !found:
			rep.Report(diag.Error(diag.CombSeparatorMissing, contract.Span,
				fmt.Sprintf("root %d is missing the %q separator", i+1, separator)).
				WithHelp("a multi-tree file names each root 'Contract::function'"))
			ok = false
			continue
		case name == "":
			rep.Report(diag.Error(diag.CombContractNameMissing, contract.Span,
				fmt.Sprintf("root %d has an empty contract name", i+1)))
			ok = false
			continue
		}
		if expected == "" {
			expected = name
		} else if name != expected {
			rep.Report(diag.Error(diag.CombContractNameMismatch, contract.Span,
				fmt.Sprintf("contract name %q does not match the first root's %q", name, expected)))
			ok = false
			continue
		}
		parts = append(parts, part{contract: contract, name: name, fn: fn})
	}
	if !ok {
		return nil, false
	}

	seenModifiers := make(map[string]bool)
	var children []*Node

	for i, p := range parts {
		component := names.ToPascalCase(p.fn)
		for _, child := range p.contract.Children {
			switch {
			case child.Kind == KindFunction && child.Ty == TyFunction:
				renamed := *child
				renamed.Identifier = insertComponent(child.Identifier, component)
				children = append(children, &renamed)
			case child.Kind == KindFunction && child.Ty == TyModifier:
				if seenModifiers[child.Identifier] {
					continue
				}
				seenModifiers[child.Identifier] = true
				children = append(children, child)
			default:
				// Non-definition nodes survive only from the first tree.
				if i == 0 {
					children = append(children, child)
				}
			}
		}
	}

	combined := &Node{
		Kind:       KindContract,
		Identifier: expected,
		Span:       parts[0].contract.Span,
		Children:   children,
	}
	return &Node{Kind: KindRoot, Children: []*Node{combined}}, true
}

// revertPrefixes are the exact prefixes the translator's negative-path
// convention produces. Anchoring on them keeps a sanitized title that
// merely starts with "Revert…_" (underscores survive sanitization) on the
// plain path.
var revertPrefixes = [...]string{"test_RevertWhen_", "test_RevertGiven_"}

// insertComponent splices the function component into a synthesized name,
// right after the "test_" or "test_Revert{Keyword}_" prefix.
func insertComponent(name, component string) string {
	if component == "" {
		return name
	}
	for _, prefix := range revertPrefixes {
		if strings.HasPrefix(name, prefix) {
			return prefix + component + name[len(prefix):]
		}
	}
	if rest, found := strings.CutPrefix(name, "test_"); found {
		return "test_" + component + rest
	}
	return name
}
