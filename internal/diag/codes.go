package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for unclassified findings.
	UnknownCode Code = 0

	// Lexical
	LexInfo                  Code = 1000
	LexIdentifierCharInvalid Code = 1001

	// Syntax
	SynInfo                       Code = 2000
	SynTreeEmpty                  Code = 2001
	SynTreeRootless               Code = 2002
	SynEofUnexpected              Code = 2003
	SynTokenUnexpected            Code = 2004
	SynWordUnexpected             Code = 2005
	SynWhenUnexpected             Code = 2006
	SynGivenUnexpected            Code = 2007
	SynItUnexpected               Code = 2008
	SynDescriptionTokenUnexpected Code = 2009
	SynCornerNotLastChild         Code = 2010
	SynTeeLastChild               Code = 2011
	SynTitleMissing               Code = 2012

	// Semantic
	SemaInfo                 Code = 3000
	SemaTreeEmpty            Code = 3001
	SemaConditionEmpty       Code = 3002
	SemaIdentifierDuplicated Code = 3003

	// Combining (multi-root spec files)
	CombInfo                 Code = 4000
	CombSeparatorMissing     Code = 4001
	CombContractNameMissing  Code = 4002
	CombContractNameMismatch Code = 4003

	// I/O
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:              "unknown error",
	LexInfo:                  "lexical information",
	LexIdentifierCharInvalid: "invalid character in identifier",
	SynInfo:                  "syntax information",
	SynTreeEmpty:             "the tree is empty",
	SynTreeRootless:          "the tree does not start with a root name",
	SynEofUnexpected:         "unexpected end of input",
	SynTokenUnexpected:       "unexpected token",
	SynWordUnexpected:        "unexpected word",
	SynWhenUnexpected:        "unexpected 'when' keyword",
	SynGivenUnexpected:       "unexpected 'given' keyword",
	SynItUnexpected:          "unexpected 'it' keyword",

	SynDescriptionTokenUnexpected: "unexpected token in action description",
	SynCornerNotLastChild:         "a last-child glyph is not the last child",
	SynTeeLastChild:               "a non-last-child glyph is the last child",
	SynTitleMissing:               "the condition has no title",

	SemaInfo:                 "semantic information",
	SemaTreeEmpty:            "the tree is empty",
	SemaConditionEmpty:       "the condition has no children",
	SemaIdentifierDuplicated: "duplicated identifier",

	CombInfo:                 "combine information",
	CombSeparatorMissing:     "the root identifier is missing the '::' separator",
	CombContractNameMissing:  "the root identifier has an empty contract name",
	CombContractNameMismatch: "the root contract names do not match",

	IOInfo:          "i/o information",
	IOLoadFileError: "failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CMB%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
