// Package sol parses an existing Solidity test file into the structural
// model the checker diffs against: contracts and their function/modifier
// members, each with the spans the fixer needs to insert, rename, and
// relocate source text.
//
// This is deliberately not a full Solidity front end. Comments and string
// literals are skipped faithfully and brace depth is tracked, which is
// enough to recover the member layout of any well-formed file.
package sol

import (
	"bulloak/internal/source"
)

// MemberKind distinguishes the two member kinds the checker cares about.
type MemberKind uint8

const (
	KindFunction MemberKind = iota
	KindModifier
)

func (k MemberKind) String() string {
	if k == KindModifier {
		return "modifier"
	}
	return "function"
}

// Member is one function or modifier definition.
// Span covers the member's full text, from its keyword through the closing
// brace or semicolon. Line is the 1-based line of the keyword.
type Member struct {
	Kind     MemberKind
	Name     string
	NameSpan source.Span
	Span     source.Span
	Line     uint32
}

// Contract is one contract definition.
// BodyStart is the offset just past the opening brace; BodyEnd is the
// offset of the closing brace.
type Contract struct {
	Name      string
	NameSpan  source.Span
	Span      source.Span
	BodyStart uint32
	BodyEnd   uint32
	Members   []Member
}

// File is the structural model of one Solidity source file.
type File struct {
	Contracts []Contract
}

// FindMember returns the index of the first member with the given name and
// kind, or -1.
func (c *Contract) FindMember(name string, kind MemberKind) int {
	for i, m := range c.Members {
		if m.Name == name && m.Kind == kind {
			return i
		}
	}
	return -1
}
