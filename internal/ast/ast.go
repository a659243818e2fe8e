// Package ast defines the owned syntax tree of one branching tree spec.
package ast

import (
	"bulloak/internal/source"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	// KindRoot is the tree root carrying the contract name.
	KindRoot Kind = iota
	// KindCondition is a when/given branch.
	KindCondition
	// KindAction is an it branch.
	KindAction
	// KindDescription is a free-text child of an action.
	KindDescription
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCondition:
		return "condition"
	case KindAction:
		return "action"
	case KindDescription:
		return "description"
	}
	return "unknown"
}

// Node is one node of the owned, acyclic tree. A condition or action owns
// its children outright.
//
// Title is the space-joined text of the node's title tokens, keyword
// included for conditions and actions ("when the caller is unknown",
// "it should revert"). Keyword holds the leading keyword as written in the
// source, empty for roots and descriptions.
type Node struct {
	Kind     Kind
	Title    string
	Keyword  string
	Span     source.Span
	Children []*Node
}

// HasConditions reports whether any direct child is a condition.
func (n *Node) HasConditions() bool {
	for _, c := range n.Children {
		if c.Kind == KindCondition {
			return true
		}
	}
	return false
}

// Actions returns the direct action children in source order.
func (n *Node) Actions() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == KindAction {
			out = append(out, c)
		}
	}
	return out
}

// Conditions returns the direct condition children in source order.
func (n *Node) Conditions() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == KindCondition {
			out = append(out, c)
		}
	}
	return out
}
