package check

import (
	"bulloak/internal/hir"
	"bulloak/internal/sol"
	"bulloak/internal/source"
)

// Options configures a check/fix cycle.
type Options struct {
	// SkipModifiers suppresses missing-definition violations for modifiers.
	SkipModifiers bool
}

// Context aggregates the state of one check/fix cycle. It is owned
// exclusively by that cycle and discarded afterwards.
type Context struct {
	TreePath string
	Expected *hir.Node
	SolPath  string
	Text     []byte
	File     *sol.File
}

// Reparse rebuilds the structural model after Text changed.
func (ctx *Context) Reparse() error {
	file := &source.File{
		Path:    ctx.SolPath,
		Content: ctx.Text,
		LineIdx: buildLineIndex(ctx.Text),
	}
	parsed, err := sol.Parse(file)
	if err != nil {
		return err
	}
	ctx.File = parsed
	return nil
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// match pairs an expected definition with the target member it resolved to.
type match struct {
	expIdx int
	actIdx int
}

// Check diffs the expected HIR against the parsed target file and returns
// every structural violation, presence first, then order.
func Check(ctx *Context, opts Options) []Violation {
	expected := ctx.Expected.Contract()
	if expected == nil {
		return nil
	}

	if len(ctx.File.Contracts) == 0 {
		return []Violation{{
			Kind:       ContractMissing,
			Identifier: expected.Identifier,
			TreePath:   ctx.TreePath,
			Loc:        Location{Path: ctx.SolPath},
		}}
	}
	target := &ctx.File.Contracts[0]

	var violations []Violation
	if target.Name != expected.Identifier {
		violations = append(violations, Violation{
			Kind:       ContractNameNotMatches,
			Identifier: expected.Identifier,
			Found:      target.Name,
			TreePath:   ctx.TreePath,
			Loc:        Location{Path: ctx.SolPath},
		})
	}

	defs := expected.Definitions()
	matches := make([]match, 0, len(defs))
	for i, def := range defs {
		actIdx := target.FindMember(def.Identifier, memberKind(def.Ty))
		if actIdx < 0 {
			if def.Ty == hir.TyModifier && opts.SkipModifiers {
				continue
			}
			violations = append(violations, Violation{
				Kind:       MatchingFunctionMissing,
				Identifier: def.Identifier,
				Ty:         def.Ty,
				TreePath:   ctx.TreePath,
				Loc:        Location{Path: ctx.SolPath},
			})
			continue
		}
		matches = append(matches, match{expIdx: i, actIdx: actIdx})
	}

	violations = append(violations, orderViolations(ctx, target, defs, matches)...)
	return violations
}

// orderViolations runs the inversion scan: a matched item is flagged when
// some later expected item resolved to an earlier actual position. The scan
// is O(n^2) on purpose; at tens of definitions per contract nothing faster
// pays for itself, and the flag-set semantics are pinned by tests.
func orderViolations(ctx *Context, target *sol.Contract, defs []*hir.Node, matches []match) []Violation {
	var out []Violation
	for a := 0; a < len(matches); a++ {
		inverted := false
		for b := a + 1; b < len(matches); b++ {
			if matches[b].actIdx < matches[a].actIdx {
				inverted = true
				break
			}
		}
		if !inverted {
			continue
		}
		def := defs[matches[a].expIdx]
		member := target.Members[matches[a].actIdx]
		out = append(out, Violation{
			Kind:       FunctionOrderMismatch,
			Identifier: def.Identifier,
			Ty:         def.Ty,
			TreePath:   ctx.TreePath,
			Loc:        Location{Path: ctx.SolPath, Line: member.Line},
		})
	}
	return out
}

func memberKind(ty hir.FunctionTy) sol.MemberKind {
	if ty == hir.TyModifier {
		return sol.KindModifier
	}
	return sol.KindFunction
}
