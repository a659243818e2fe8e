// Package scaffold renders a combined HIR into Solidity test-skeleton text.
package scaffold

import (
	"strings"

	"bulloak/internal/hir"
)

// DefaultSolidityVersion pins the pragma when the caller does not care.
const DefaultSolidityVersion = "0.8.0"

const indent = "    "

// Options configures rendering.
type Options struct {
	// SolidityVersion goes into the pragma line.
	SolidityVersion string
}

func (o Options) version() string {
	if o.SolidityVersion == "" {
		return DefaultSolidityVersion
	}
	return o.SolidityVersion
}

// Emit renders a whole compiled unit: license header, pragma, and the
// contract with its members in HIR order.
func Emit(root *hir.Node, opts Options) string {
	var b strings.Builder
	b.WriteString("// SPDX-License-Identifier: UNLICENSED\n")
	b.WriteString("pragma solidity " + opts.version() + ";\n\n")

	contract := root.Contract()
	if contract == nil {
		return b.String()
	}
	b.WriteString(EmitContract(contract))
	return b.String()
}

// EmitContract renders one contract definition, members separated by a
// blank line.
func EmitContract(contract *hir.Node) string {
	var b strings.Builder
	b.WriteString("contract " + contract.Identifier + " {")

	defs := contract.Definitions()
	if len(defs) == 0 {
		b.WriteString("}\n")
		return b.String()
	}
	b.WriteString("\n")
	for i, def := range defs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(EmitDefinition(def, indent))
	}
	b.WriteString("}\n")
	return b.String()
}

// EmitDefinition renders one function or modifier definition at the given
// indentation, including the trailing newline.
func EmitDefinition(def *hir.Node, ind string) string {
	var b strings.Builder
	switch def.Ty {
	case hir.TyModifier:
		b.WriteString(ind + "modifier " + def.Identifier + "() {\n")
		for _, child := range def.Children {
			if child.Kind == hir.KindStatement && child.StmtTy == hir.StmtInternal {
				b.WriteString(ind + indent + "_;\n")
			}
		}
		b.WriteString(ind + "}\n")

	case hir.TyFunction:
		b.WriteString(ind + "function " + def.Identifier + "() external")
		for _, m := range def.Modifiers {
			b.WriteString(" " + m)
		}
		b.WriteString(" {\n")
		for _, child := range def.Children {
			if child.Kind == hir.KindComment {
				b.WriteString(ind + indent + "// " + child.Lexeme + "\n")
			}
		}
		b.WriteString(ind + "}\n")
	}
	return b.String()
}
