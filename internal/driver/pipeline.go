// Package driver orchestrates the phases: it loads files, runs the lex,
// parse, sema, translate, and combine pipeline, and exposes the scaffold and
// check entry points the CLI calls.
package driver

import (
	"bulloak/internal/diag"
	"bulloak/internal/hir"
	"bulloak/internal/lexer"
	"bulloak/internal/parser"
	"bulloak/internal/sema"
	"bulloak/internal/source"
)

// Options configures one pipeline run.
type Options struct {
	// SkipModifiers drops modifier discovery and emission.
	SkipModifiers bool
	// SolidityVersion goes into the scaffold pragma.
	SolidityVersion string
}

// window is the byte range of one tree inside a multi-tree file.
type window struct {
	start, end uint32
}

// splitWindows slices the file into per-tree byte ranges. Trees are
// separated by blank lines (empty or whitespace-only). Every window begins
// at a line start, which the lexer's column tracking relies on.
func splitWindows(content []byte) []window {
	var out []window
	lineStart := uint32(0)
	inTree := false
	var cur window

	flush := func(end uint32) {
		if inTree {
			cur.end = end
			out = append(out, cur)
			inTree = false
		}
	}

	for i := 0; i <= len(content); i++ {
		if i < len(content) && content[i] != '\n' {
			continue
		}
		end := uint32(i)
		if isBlankLine(content[lineStart:end]) {
			flush(lineStart)
		} else if !inTree {
			cur = window{start: lineStart}
			inTree = true
		}
		lineStart = end + 1
	}
	flush(uint32(len(content)))
	return out
}

func isBlankLine(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}

// Compile runs the full front end over one spec file and returns the
// combined HIR. Findings land in bag; ok is false when any phase failed.
func Compile(file *source.File, bag *diag.Bag, opts Options) (*hir.Node, bool) {
	reporter := diag.BagReporter{Bag: bag}
	windows := splitWindows(file.Content)
	if len(windows) == 0 {
		// A file of nothing but blank lines still gets the empty-tree
		// diagnostic, anchored at its start.
		windows = []window{{start: 0, end: 0}}
	}

	trees := make([]*hir.Node, 0, len(windows))
	for _, w := range windows {
		lx := lexer.NewWindow(file, w.start, w.end, lexer.Options{Reporter: reporter})
		tokens, ok := lx.Tokenize()
		if !ok {
			return nil, false
		}
		root, ok := parser.Parse(file, tokens, w.start, parser.Options{Reporter: reporter})
		if !ok {
			return nil, false
		}
		if !sema.Analyze(root, sema.Options{Reporter: reporter}) {
			return nil, false
		}
		trees = append(trees, hir.Translate(root, hir.Options{SkipModifiers: opts.SkipModifiers}))
	}

	return hir.Combine(trees, reporter)
}
