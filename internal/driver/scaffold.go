package driver

import (
	"fmt"
	"os"
	"strings"

	"bulloak/internal/diag"
	"bulloak/internal/scaffold"
	"bulloak/internal/source"
)

// TreeExt is the spec file extension.
const TreeExt = ".tree"

// SolExt is the extension of the generated companion file.
const SolExt = ".t.sol"

// CompanionPath maps a spec path to its generated Solidity path:
// tests/foo.tree -> tests/foo.t.sol.
func CompanionPath(treePath string) string {
	return strings.TrimSuffix(treePath, TreeExt) + SolExt
}

// ScaffoldResult is the outcome of scaffolding one spec file.
type ScaffoldResult struct {
	TreePath string
	SolPath  string
	// Output is the generated Solidity text; empty when the pipeline failed.
	Output string
	// Files resolves the bag's spans for rendering.
	Files *source.FileSet
	Bag   *diag.Bag
	Ok    bool
}

// ScaffoldFile compiles one spec file and renders the test skeleton.
// Pipeline findings are collected in the result's bag, never printed here.
func ScaffoldFile(fileSet *source.FileSet, path string, opts Options) *ScaffoldResult {
	res := &ScaffoldResult{
		TreePath: path,
		SolPath:  CompanionPath(path),
		Files:    fileSet,
		Bag:      diag.NewBag(),
	}

	id, err := fileSet.Load(path)
	if err != nil {
		res.Bag.Add(diag.Error(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return res
	}

	root, ok := Compile(fileSet.Get(id), res.Bag, opts)
	if !ok {
		return res
	}

	res.Output = scaffold.Emit(root, scaffold.Options{SolidityVersion: opts.SolidityVersion})
	res.Ok = true
	return res
}

// WriteScaffold writes the generated text next to the spec file. An existing
// companion file is only overwritten with force.
func WriteScaffold(res *ScaffoldResult, force bool) error {
	if !force {
		if _, err := os.Stat(res.SolPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", res.SolPath)
		}
	}
	return os.WriteFile(res.SolPath, []byte(res.Output), 0o644)
}
