// Package hir defines the backend-agnostic intermediate representation that
// bridges a tree's AST and the target language's syntax, plus the passes
// that produce it: modifier discovery, translation, and multi-root
// combining.
package hir

import (
	"bulloak/internal/source"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	// KindRoot is the single top node of a compiled unit.
	KindRoot Kind = iota
	// KindContract wraps the emitted members of one contract.
	KindContract
	// KindFunction is a function or modifier definition.
	KindFunction
	// KindComment carries an action or description title verbatim.
	KindComment
	// KindStatement is a fixed statement inside a definition body.
	KindStatement
)

// FunctionTy distinguishes functions from modifiers.
type FunctionTy uint8

const (
	TyFunction FunctionTy = iota
	TyModifier
)

func (t FunctionTy) String() string {
	if t == TyModifier {
		return "modifier"
	}
	return "function"
}

// StatementTy enumerates the fixed statements the scaffold can emit.
type StatementTy uint8

const (
	// StmtInternal is the '_;' placeholder inside a modifier body.
	StmtInternal StatementTy = iota
)

// Node is one node of the owned HIR tree.
//
// For KindFunction, Identifier is the synthesized name, Ty selects
// function vs modifier, Modifiers lists the names attached to a function
// (nil when there are none), and Children hold the body comments and
// statements. For KindComment, Lexeme carries the source text verbatim.
type Node struct {
	Kind       Kind
	Identifier string
	Ty         FunctionTy
	StmtTy     StatementTy
	Span       source.Span
	Modifiers  []string
	Lexeme     string
	Children   []*Node
}

// Contract returns the single contract definition under a root, or nil.
func (n *Node) Contract() *Node {
	if n == nil || n.Kind != KindRoot {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == KindContract {
			return c
		}
	}
	return nil
}

// Definitions returns the function and modifier definitions under a
// contract, in emission order.
func (n *Node) Definitions() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == KindFunction {
			out = append(out, c)
		}
	}
	return out
}
