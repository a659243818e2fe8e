// Package check compares an expected HIR against an existing Solidity file
// and repairs the file when asked to.
package check

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bulloak/internal/hir"
)

// Kind classifies a structural mismatch.
type Kind uint8

const (
	// ContractMissing: the target file defines no contract at all.
	ContractMissing Kind = iota
	// ContractNameNotMatches: a contract exists but is named differently.
	ContractNameNotMatches
	// MatchingFunctionMissing: an expected definition has no same-name,
	// same-kind match in the target.
	MatchingFunctionMissing
	// FunctionOrderMismatch: a matched definition sits after one that the
	// spec orders later.
	FunctionOrderMismatch
	// SolidityFileMissing: the companion .t.sol file does not exist.
	SolidityFileMissing
	// FileUnreadable: a companion file exists but cannot be read.
	FileUnreadable
	// ParsingFailed: the target file could not be parsed structurally.
	ParsingFailed
)

// Location points a violation at a file, optionally at a line.
type Location struct {
	Path string
	Line uint32 // 0 means the whole file
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Path
	}
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}

// Violation is one detected mismatch. It carries enough data to render a
// message and to attempt a fix.
type Violation struct {
	Kind       Kind
	Identifier string         // function/modifier/contract involved
	Ty         hir.FunctionTy // meaningful for the function kinds
	Found      string         // actual name for ContractNameNotMatches
	Detail     string         // extra context (read errors, parse errors)
	TreePath   string         // spec file, used in the fix hint
	Loc        Location
}

// Fixable reports whether the violation can be repaired automatically.
func (v Violation) Fixable() bool {
	switch v.Kind {
	case ContractMissing, ContractNameNotMatches, MatchingFunctionMissing, FunctionOrderMismatch:
		return true
	default:
		return false
	}
}

// Message renders the human-readable description.
func (v Violation) Message() string {
	switch v.Kind {
	case ContractMissing:
		return fmt.Sprintf("contract %q is missing in the Solidity file", v.Identifier)
	case ContractNameNotMatches:
		return fmt.Sprintf("contract %q is missing in the Solidity file -- found %q instead", v.Identifier, v.Found)
	case MatchingFunctionMissing:
		return fmt.Sprintf("matching %s %q is missing in the Solidity file", v.Ty, v.Identifier)
	case FunctionOrderMismatch:
		return fmt.Sprintf("%s %q is out of order in the Solidity file", v.Ty, v.Identifier)
	case SolidityFileMissing:
		return fmt.Sprintf("the tree is missing its matching Solidity file: %s", v.Loc.Path)
	case FileUnreadable:
		return fmt.Sprintf("the file could not be read: %s", v.Detail)
	case ParsingFailed:
		return fmt.Sprintf("the Solidity file could not be parsed: %s", v.Detail)
	}
	return "unknown violation"
}

// help returns an optional suggestion line.
func (v Violation) help() string {
	switch v.Kind {
	case SolidityFileMissing:
		return fmt.Sprintf("run `bulloak scaffold -w %s` to generate it", v.TreePath)
	default:
		return ""
	}
}

var (
	warnColor = color.New(color.FgYellow, color.Bold)
	dimColor  = color.New(color.FgBlue)
)

// Render formats the violation for human operators:
//
//	warn: matching function "test_Foo" is missing in the Solidity file
//	     + fix: run `bulloak check --fix tests/foo.tree`
//	  --> tests/foo.t.sol
func (v Violation) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", warnColor.Sprint("warn"), v.Message())
	if h := v.help(); h != "" {
		fmt.Fprintf(&b, "     %s help: %s\n", dimColor.Sprint("+"), h)
	}
	if v.Fixable() && v.TreePath != "" {
		fmt.Fprintf(&b, "     %s fix: run `bulloak check --fix %s`\n", dimColor.Sprint("+"), v.TreePath)
	}
	fmt.Fprintf(&b, "  %s %s\n", dimColor.Sprint("-->"), v.Loc)
	return b.String()
}
