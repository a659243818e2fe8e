package check

import (
	"sort"
	"strings"

	"bulloak/internal/hir"
	"bulloak/internal/scaffold"
	"bulloak/internal/sol"
)

// FixResult is the outcome of one Fix cycle.
type FixResult struct {
	// Text is the repaired file content.
	Text []byte
	// Fixed lists the violations that were repaired.
	Fixed []Violation
	// Remaining lists the violations still present after repair.
	Remaining []Violation
}

// Fix repairs every fixable violation in two passes. The first pass handles
// everything that can be expressed as independent text edits against one
// snapshot: missing contracts, wrong contract names, missing definitions.
// The second pass reparses and relocates out-of-order members, which needs
// the post-insertion layout to compute stable spans.
func Fix(ctx *Context, opts Options) (*FixResult, error) {
	result := &FixResult{}

	violations := Check(ctx, opts)
	edits, fixed := structuralEdits(ctx, violations)
	if len(edits) > 0 {
		ctx.Text = applyEdits(ctx.Text, edits)
		if err := ctx.Reparse(); err != nil {
			return nil, err
		}
		result.Fixed = append(result.Fixed, fixed...)
		violations = Check(ctx, opts)
	}

	if reordered := fixOrder(ctx, violations); reordered != nil {
		ctx.Text = reordered
		if err := ctx.Reparse(); err != nil {
			return nil, err
		}
		for _, v := range violations {
			if v.Kind == FunctionOrderMismatch {
				result.Fixed = append(result.Fixed, v)
			}
		}
		violations = Check(ctx, opts)
	}

	result.Text = ctx.Text
	result.Remaining = violations
	return result, nil
}

// structuralEdits turns the non-order fixable violations into text edits
// against the current snapshot, and returns the violations they repair.
func structuralEdits(ctx *Context, violations []Violation) ([]textEdit, []Violation) {
	expected := ctx.Expected.Contract()
	if expected == nil {
		return nil, nil
	}

	var (
		edits []textEdit
		fixed []Violation
		// Missing definitions that share an insertion anchor must land as
		// one edit, in expected order; separate same-offset insertions
		// would apply back to front and invert them.
		inserts = map[uint32][]string{}
	)
	for _, v := range violations {
		switch v.Kind {
		case ContractMissing:
			edits = append(edits, appendContractEdit(ctx, expected))
			fixed = append(fixed, v)

		case ContractNameNotMatches:
			span := ctx.File.Contracts[0].NameSpan
			edits = append(edits, textEdit{
				start:   span.Start,
				end:     span.End,
				newText: expected.Identifier,
			})
			fixed = append(fixed, v)

		case MatchingFunctionMissing:
			def := findDefinition(expected, v.Identifier, v.Ty)
			if def == nil {
				continue
			}
			off := insertionAnchor(ctx, expected, def)
			inserts[off] = append(inserts[off], renderDefinition(def))
			fixed = append(fixed, v)
		}
	}

	if len(inserts) > 0 {
		target := &ctx.File.Contracts[0]
		for off, defs := range inserts {
			var text string
			if off == target.BodyStart {
				text = "\n" + strings.Join(defs, "\n\n") + "\n"
			} else {
				text = "\n\n" + strings.Join(defs, "\n\n")
			}
			edits = append(edits, textEdit{start: off, end: off, newText: text})
		}
	}
	return edits, fixed
}

// appendContractEdit scaffolds the whole contract. An effectively empty file
// gets the full unit with license header and pragma; a file that already has
// content gets just the contract appended.
func appendContractEdit(ctx *Context, expected *hir.Node) textEdit {
	end := uint32(len(ctx.Text))
	if len(strings.TrimSpace(string(ctx.Text))) == 0 {
		return textEdit{
			start:   0,
			end:     end,
			newText: scaffold.Emit(ctx.Expected, scaffold.Options{}),
		}
	}
	prefix := "\n"
	if !strings.HasSuffix(string(ctx.Text), "\n") {
		prefix = "\n\n"
	}
	return textEdit{
		start:   end,
		end:     end,
		newText: prefix + scaffold.EmitContract(expected),
	}
}

// insertionAnchor picks where a missing definition goes: right after the
// nearest expected predecessor that is present in the target, or at the top
// of the contract body when none is.
func insertionAnchor(ctx *Context, expected *hir.Node, def *hir.Node) uint32 {
	target := &ctx.File.Contracts[0]
	defs := expected.Definitions()

	pos := -1
	for i, d := range defs {
		if d == def {
			pos = i
			break
		}
	}
	for i := pos - 1; i >= 0; i-- {
		if idx := target.FindMember(defs[i].Identifier, memberKind(defs[i].Ty)); idx >= 0 {
			return target.Members[idx].Span.End
		}
	}
	return target.BodyStart
}

func findDefinition(contract *hir.Node, name string, ty hir.FunctionTy) *hir.Node {
	for _, def := range contract.Definitions() {
		if def.Identifier == name && def.Ty == ty {
			return def
		}
	}
	return nil
}

func renderDefinition(def *hir.Node) string {
	return strings.TrimRight(scaffold.EmitDefinition(def, "    "), "\n")
}

// orderBanner separates relocated members from preserved code that has no
// tree counterpart.
const orderBanner = "// Kept during reordering: the members below have no matching tree branch."

// fixOrder rebuilds the contract body with matched members in expected
// order. Anything between members that is not a matched member itself, hand
// written helpers included, is preserved after the relocated block, below a
// banner comment. Returns nil when there is nothing to reorder.
func fixOrder(ctx *Context, violations []Violation) []byte {
	hasOrder := false
	for _, v := range violations {
		if v.Kind == FunctionOrderMismatch {
			hasOrder = true
			break
		}
	}
	if !hasOrder || len(ctx.File.Contracts) == 0 {
		return nil
	}

	expected := ctx.Expected.Contract()
	target := &ctx.File.Contracts[0]

	var matched []sol.Member
	for _, def := range expected.Definitions() {
		if idx := target.FindMember(def.Identifier, memberKind(def.Ty)); idx >= 0 {
			matched = append(matched, target.Members[idx])
		}
	}
	if len(matched) == 0 {
		return nil
	}

	leftovers := leftoverSegments(ctx.Text, target, matched)

	var body strings.Builder
	body.WriteString("\n")
	for i, m := range matched {
		if i > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString("    ")
		body.Write(ctx.Text[m.Span.Start:m.Span.End])
	}
	// A repeated fix keeps the banner it wrote last time.
	if len(leftovers) > 0 && !strings.HasPrefix(leftovers[0], orderBanner) {
		body.WriteString("\n\n    ")
		body.WriteString(orderBanner)
	}
	for _, seg := range leftovers {
		body.WriteString("\n\n    ")
		body.WriteString(seg)
	}
	body.WriteString("\n")

	out := make([]byte, 0, len(ctx.Text)+body.Len())
	out = append(out, ctx.Text[:target.BodyStart]...)
	out = append(out, body.String()...)
	out = append(out, ctx.Text[target.BodyEnd:]...)
	return out
}

// leftoverSegments returns the body text that is not covered by a matched
// member span, whitespace-only gaps dropped, each segment trimmed.
func leftoverSegments(text []byte, target *sol.Contract, matched []sol.Member) []string {
	spans := make([]sol.Member, len(matched))
	copy(spans, matched)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Span.Start < spans[j].Span.Start })

	var out []string
	cursor := target.BodyStart
	for _, m := range spans {
		if m.Span.Start > cursor {
			if seg := strings.TrimSpace(string(text[cursor:m.Span.Start])); seg != "" {
				out = append(out, seg)
			}
		}
		if m.Span.End > cursor {
			cursor = m.Span.End
		}
	}
	if target.BodyEnd > cursor {
		if seg := strings.TrimSpace(string(text[cursor:target.BodyEnd])); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
