package driver

import (
	"errors"
	"os"

	"bulloak/internal/check"
	"bulloak/internal/diag"
	"bulloak/internal/source"
)

// CheckOptions configures one check/fix run on top of the pipeline options.
type CheckOptions struct {
	Options
	// Fix repairs the companion file instead of just reporting.
	Fix bool
	// Stdout leaves the repaired text in the result instead of writing it.
	Stdout bool
	// Cache skips files whose tree/sol pair is already known clean.
	Cache *DiskCache
}

// CheckResult is the outcome of checking one spec file.
type CheckResult struct {
	TreePath string
	SolPath  string
	// Files resolves the bag's spans for rendering.
	Files *source.FileSet
	// Bag holds pipeline findings for the spec file itself.
	Bag *diag.Bag
	// Violations are the structural mismatches still present at the end.
	Violations []check.Violation
	// Fixed lists the violations repaired in fix mode.
	Fixed []check.Violation
	// FixedText is the repaired companion text, populated in stdout mode.
	FixedText []byte
	// Cached is true when the clean pair came from the disk cache.
	Cached bool
	// Ok is true when the spec compiled; violations may still be present.
	Ok bool
}

// HasFindings reports whether anything is worth showing for this file.
func (r *CheckResult) HasFindings() bool {
	return r.Bag.HasErrors() || len(r.Violations) > 0
}

// CheckFile compiles one spec file and diffs it against its companion
// Solidity file, optionally repairing it.
func CheckFile(fileSet *source.FileSet, path string, opts CheckOptions) *CheckResult {
	res := &CheckResult{
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
	treeFile := fileSet.Get(id)

	expected, ok := Compile(treeFile, res.Bag, opts.Options)
	if !ok {
		return res
	}
	res.Ok = true

	text, violation := readCompanion(res)
	if violation != nil {
		res.Violations = append(res.Violations, *violation)
		return res
	}

	if opts.Cache.IsClean(treeFile.Hash, contentHash(text)) {
		res.Cached = true
		return res
	}

	ctx := &check.Context{
		TreePath: path,
		Expected: expected,
		SolPath:  res.SolPath,
		Text:     text,
	}
	if err := ctx.Reparse(); err != nil {
		res.Violations = append(res.Violations, check.Violation{
			Kind:     check.ParsingFailed,
			Detail:   err.Error(),
			TreePath: path,
			Loc:      check.Location{Path: res.SolPath},
		})
		return res
	}

	checkOpts := check.Options{SkipModifiers: opts.SkipModifiers}
	if !opts.Fix {
		res.Violations = check.Check(ctx, checkOpts)
		if len(res.Violations) == 0 {
			opts.Cache.MarkClean(path, treeFile.Hash, contentHash(text))
		}
		return res
	}

	fixResult, err := check.Fix(ctx, checkOpts)
	if err != nil {
		res.Violations = append(res.Violations, check.Violation{
			Kind:     check.ParsingFailed,
			Detail:   err.Error(),
			TreePath: path,
			Loc:      check.Location{Path: res.SolPath},
		})
		return res
	}
	res.Fixed = fixResult.Fixed
	res.Violations = fixResult.Remaining

	if opts.Stdout {
		res.FixedText = fixResult.Text
		return res
	}
	if len(fixResult.Fixed) > 0 {
		if err := os.WriteFile(res.SolPath, fixResult.Text, 0o644); err != nil {
			res.Violations = append(res.Violations, check.Violation{
				Kind:     check.FileUnreadable,
				Detail:   err.Error(),
				TreePath: path,
				Loc:      check.Location{Path: res.SolPath},
			})
			return res
		}
	}
	if len(res.Violations) == 0 {
		opts.Cache.MarkClean(path, treeFile.Hash, contentHash(fixResult.Text))
	}
	return res
}

// readCompanion loads the companion Solidity file, mapping the two I/O
// failure shapes to their violations.
func readCompanion(res *CheckResult) ([]byte, *check.Violation) {
	text, err := os.ReadFile(res.SolPath)
	if err != nil {
		kind := check.FileUnreadable
		if errors.Is(err, os.ErrNotExist) {
			kind = check.SolidityFileMissing
		}
		return nil, &check.Violation{
			Kind:     kind,
			Detail:   err.Error(),
			TreePath: res.TreePath,
			Loc:      check.Location{Path: res.SolPath},
		}
	}
	return text, nil
}
