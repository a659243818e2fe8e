package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bulloak/internal/diag"
	"bulloak/internal/driver"
	"bulloak/internal/project"
	"bulloak/internal/ui"
)

var (
	checkFix           bool
	checkStdout        bool
	checkNoCache       bool
	checkSkipModifiers bool
	checkJobs          int
)

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "repair the companion files instead of just reporting")
	checkCmd.Flags().BoolVar(&checkStdout, "stdout", false, "with --fix, print the repaired file instead of writing it")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "recheck files even when the pair is cached as clean")
	checkCmd.Flags().BoolVarP(&checkSkipModifiers, "skip-modifiers", "m", false, "ignore missing modifier definitions")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 1, "number of files processed in parallel")
}

var checkCmd = &cobra.Command{
	Use:   "check [files or directories]",
	Short: "Check that generated Solidity files match their spec files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.Load(".")
		if err != nil {
			return err
		}

		opts := driver.CheckOptions{
			Options: driver.Options{
				SkipModifiers: checkSkipModifiers || cfg.Check.SkipModifiers,
			},
			Fix:    checkFix,
			Stdout: checkFix && checkStdout,
		}
		if !checkNoCache && !cfg.Check.NoCache {
			// A broken cache only costs the speedup.
			if cache, err := driver.OpenDiskCache("bulloak"); err == nil {
				opts.Cache = cache
			}
		}

		files, err := driver.ListTreeFiles(args)
		if err != nil {
			return err
		}
		results, err := driver.CheckBatch(cmd.Context(), files, checkJobs, opts)
		if err != nil {
			return err
		}

		failed := false
		lines := make([]ui.FileLine, 0, len(results))
		for _, res := range results {
			line := ui.FileLine{Path: res.TreePath, Status: ui.StatusOK}
			switch {
			case !res.Ok:
				failed = true
				fmt.Fprint(os.Stderr, diag.RenderBag(res.Files, res.Bag))
				line.Status = ui.StatusError
				line.Detail = fmt.Sprintf("%d error(s)", res.Bag.Len())

			case len(res.Violations) > 0:
				failed = true
				for _, v := range res.Violations {
					fmt.Fprint(os.Stderr, v.Render())
				}
				line.Status = ui.StatusWarn
				line.Detail = fmt.Sprintf("%d violation(s)", len(res.Violations))

			case len(res.Fixed) > 0:
				line.Detail = fmt.Sprintf("fixed %d", len(res.Fixed))

			case res.Cached:
				line.Detail = "cached"
			}

			if opts.Stdout && res.FixedText != nil {
				fmt.Print(string(res.FixedText))
			}
			lines = append(lines, line)
		}

		if !quietMode(cmd) && !opts.Stdout {
			fmt.Fprint(os.Stderr, ui.Summary("check", lines))
		}
		if failed {
			return errFindings
		}
		return nil
	},
}
