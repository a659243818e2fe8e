package hir

import (
	"slices"
	"strconv"
	"strings"

	"bulloak/internal/ast"
	"bulloak/internal/names"
)

// Options configures translation.
type Options struct {
	// SkipModifiers leaves functions without modifier lists and suppresses
	// modifier definitions.
	SkipModifiers bool
}

// revertTitle is the canonical action title that switches a function to the
// negative-path naming convention.
const revertTitle = "it should revert"

// translator holds the per-tree translation state. It is freshly
// constructed per Translate call and never shared.
type translator struct {
	mods *Modifiers
	opts Options

	// stack of ancestor modifier names currently in effect
	modifierStack []string
	// modifiers already defined in this tree
	emitted map[string]bool
	// function names already allocated in this tree
	seen map[string]bool

	out []*Node
}

// Translate converts one analyzed AST into one HIR tree. It only runs on
// trees that passed parsing and semantic analysis; an impossible node shape
// here is a defect, not a recoverable error.
func Translate(root *ast.Node, opts Options) *Node {
	t := &translator{
		mods:    Discover(root),
		opts:    opts,
		emitted: make(map[string]bool),
		seen:    make(map[string]bool),
	}

	for _, c := range root.Children {
		switch c.Kind {
		case ast.KindCondition:
			t.visitCondition(c, nil)
		case ast.KindAction:
			t.emitRootAction(c)
		}
	}

	contract := &Node{
		Kind:       KindContract,
		Identifier: root.Title,
		Span:       root.Span,
		Children:   t.out,
	}
	return &Node{Kind: KindRoot, Children: []*Node{contract}}
}

// visitCondition lowers one condition. ancestors holds the enclosing
// conditions, nearest first, for name disambiguation.
func (t *translator) visitCondition(cond *ast.Node, ancestors []*ast.Node) {
	pushed := false
	if cond.HasConditions() {
		// The condition is potentially reused further down: it gets a
		// modifier, defined once per tree on first occurrence.
		if name, ok := t.mods.Lookup(cond.Title); ok {
			if !t.emitted[name] && !t.opts.SkipModifiers {
				t.emitted[name] = true
				t.out = append(t.out, &Node{
					Kind:       KindFunction,
					Ty:         TyModifier,
					Identifier: name,
					Span:       cond.Span,
					Children:   []*Node{{Kind: KindStatement, StmtTy: StmtInternal}},
				})
			}
			t.modifierStack = append(t.modifierStack, name)
			pushed = true
		}
	}

	if actions := cond.Actions(); len(actions) > 0 {
		var modifiers []string
		if !t.opts.SkipModifiers && len(t.modifierStack) > 0 {
			modifiers = slices.Clone(t.modifierStack)
		}
		t.out = append(t.out, &Node{
			Kind:       KindFunction,
			Ty:         TyFunction,
			Identifier: t.functionName(cond, actions, ancestors),
			Span:       cond.Span,
			Modifiers:  modifiers,
			Children:   actionComments(actions),
		})
	}

	for _, child := range cond.Conditions() {
		t.visitCondition(child, append([]*ast.Node{cond}, ancestors...))
	}

	if pushed {
		t.modifierStack = t.modifierStack[:len(t.modifierStack)-1]
	}
}

// emitRootAction lowers a bare top-level action into a stand-alone
// function. Root-level siblings cannot share a title (caught by sema), but
// the name can still collide with a condition-derived one; root actions
// have no ancestors to append, so claim falls straight to the numeric
// suffix.
func (t *translator) emitRootAction(action *ast.Node) {
	name := t.claim("test_" + names.ToPascalCase(titleRest(action.Title)))

	children := []*Node{{Kind: KindComment, Lexeme: action.Title}}
	children = append(children, descriptionComments(action.Children)...)

	t.out = append(t.out, &Node{
		Kind:       KindFunction,
		Ty:         TyFunction,
		Identifier: name,
		Span:       action.Span,
		Children:   children,
	})
}

// functionName synthesizes a globally-unique function name for this tree.
//
// Base name: PascalCase of the condition's words without the leading
// keyword, prefixed "test_". A condition whose single action is
// "it should revert" switches to "test_Revert{Keyword}_{Rest}".
//
// On collision the nearest distinguishing ancestor's name is appended,
// walking upward one ancestor at a time; exhausted ancestors fall back to a
// numeric suffix starting at 2. Deterministic for a given AST: ancestor
// order, never map iteration order.
func (t *translator) functionName(cond *ast.Node, actions []*ast.Node, ancestors []*ast.Node) string {
	rest := names.ToPascalCase(titleRest(cond.Title))

	var base string
	if len(actions) == 1 && names.Canonical(actions[0].Title) == revertTitle {
		keyword := names.UpperFirst(strings.ToLower(cond.Keyword))
		base = "test_Revert" + keyword + "_" + rest
	} else {
		base = "test_" + rest
	}

	name := base
	for _, anc := range ancestors {
		if !t.seen[name] {
			break
		}
		name += names.ToPascalCase(titleRest(anc.Title))
	}
	return t.claim(name)
}

// claim reserves a function name in the tree-wide seen set, appending a
// numeric suffix from 2 when the name is already taken. Every synthesized
// function name passes through here, so two emissions can never share one.
func (t *translator) claim(name string) string {
	if t.seen[name] {
		for n := 2; ; n++ {
			candidate := name + strconv.Itoa(n)
			if !t.seen[candidate] {
				name = candidate
				break
			}
		}
	}
	t.seen[name] = true
	return name
}

// actionComments flattens a condition's actions into comment nodes carrying
// the original text verbatim, in source order.
func actionComments(actions []*ast.Node) []*Node {
	out := make([]*Node, 0, len(actions))
	for _, a := range actions {
		out = append(out, &Node{Kind: KindComment, Lexeme: a.Title})
		out = append(out, descriptionComments(a.Children)...)
	}
	return out
}

func descriptionComments(descs []*ast.Node) []*Node {
	var out []*Node
	for _, d := range descs {
		out = append(out, &Node{Kind: KindComment, Lexeme: d.Title})
		out = append(out, descriptionComments(d.Children)...)
	}
	return out
}

// titleRest strips the leading keyword from a title.
func titleRest(title string) string {
	if _, rest, ok := strings.Cut(title, " "); ok {
		return rest
	}
	return ""
}
