// Package sema validates a parsed tree before HIR translation.
//
// The walk is infallible: findings accumulate in the reporter instead of
// short-circuiting, so one run reports every problem in the tree at once.
package sema

import (
	"fmt"

	"bulloak/internal/ast"
	"bulloak/internal/diag"
	"bulloak/internal/names"
)

// Options configures an analysis run.
type Options struct {
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

type analyzer struct {
	opts Options
	bad  bool
}

// Analyze walks the tree depth-first and reports every semantic error it
// finds. It returns false when at least one error was reported.
func Analyze(root *ast.Node, opts Options) bool {
	a := &analyzer{opts: opts}

	if len(root.Children) == 0 {
		a.report(diag.Error(diag.SemaTreeEmpty, root.Span,
			fmt.Sprintf("tree %q has no branches", root.Title)))
	}

	a.walk(root)
	return !a.bad
}

func (a *analyzer) report(d diag.Diagnostic) {
	a.bad = true
	a.opts.reporter().Report(d)
}

func (a *analyzer) walk(n *ast.Node) {
	switch n.Kind {
	case ast.KindRoot:
		a.checkSiblings(n, true)
	case ast.KindCondition:
		if len(n.Children) == 0 {
			a.report(diag.Error(diag.SemaConditionEmpty, n.Span,
				fmt.Sprintf("condition %q has no children", n.Title)))
		}
		a.checkSiblings(n, false)
	}

	for _, c := range n.Children {
		a.walk(c)
	}
}

// checkSiblings detects duplicated identifiers among one node's children.
// Identifiers are derived exactly the way the translator will derive them
// (sanitize, PascalCase, lower-case the first letter), so two titles that
// only differ in forbidden characters or case still collide.
//
// Conditions are checked under every parent; actions only at the root,
// where they become stand-alone functions. Deeper actions translate to
// comments and cannot collide. The scope is one sibling group: the same
// condition title may legitimately recur in unrelated branches, where it
// folds into a single shared modifier.
func (a *analyzer) checkSiblings(parent *ast.Node, isRoot bool) {
	seen := make(map[string][]*ast.Node)
	order := make([]string, 0, len(parent.Children))

	for _, c := range parent.Children {
		if c.Kind != ast.KindCondition && !(isRoot && c.Kind == ast.KindAction) {
			continue
		}
		ident := names.ToCamelCase(c.Title)
		if ident == "" {
			continue
		}
		if _, ok := seen[ident]; !ok {
			order = append(order, ident)
		}
		seen[ident] = append(seen[ident], c)
	}

	for _, ident := range order {
		nodes := seen[ident]
		if len(nodes) < 2 {
			continue
		}
		d := diag.Error(diag.SemaIdentifierDuplicated, nodes[0].Span,
			fmt.Sprintf("identifier %q is duplicated %d times in the same branch", ident, len(nodes)))
		for _, dup := range nodes[1:] {
			d = d.WithNote(dup.Span, "duplicated here")
		}
		a.report(d)
	}
}
