package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bulloak/internal/diag"
	"bulloak/internal/driver"
	"bulloak/internal/project"
	"bulloak/internal/ui"
)

// errFindings signals a nonzero exit without a second error line; the
// findings themselves were already printed.
var errFindings = errors.New("findings reported")

var (
	scaffoldWrite         bool
	scaffoldForce         bool
	scaffoldSkipModifiers bool
	scaffoldSolVersion    string
	scaffoldJobs          int
)

func init() {
	scaffoldCmd.Flags().BoolVarP(&scaffoldWrite, "write", "w", false, "write the skeleton next to its spec file instead of stdout")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "overwrite an existing companion file")
	scaffoldCmd.Flags().BoolVarP(&scaffoldSkipModifiers, "skip-modifiers", "m", false, "emit every function without modifiers")
	scaffoldCmd.Flags().StringVarP(&scaffoldSolVersion, "sol", "s", "", "Solidity version for the pragma line")
	scaffoldCmd.Flags().IntVar(&scaffoldJobs, "jobs", 1, "number of files processed in parallel")
}

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [files or directories]",
	Short: "Generate Solidity test skeletons from spec files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.Load(".")
		if err != nil {
			return err
		}

		opts := driver.Options{
			SkipModifiers:   scaffoldSkipModifiers || cfg.Scaffold.SkipModifiers,
			SolidityVersion: scaffoldSolVersion,
		}
		if opts.SolidityVersion == "" {
			opts.SolidityVersion = cfg.Scaffold.SolidityVersion
		}

		files, err := driver.ListTreeFiles(args)
		if err != nil {
			return err
		}
		results, err := driver.ScaffoldBatch(cmd.Context(), files, scaffoldJobs, opts)
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

			case scaffoldWrite:
				if err := driver.WriteScaffold(res, scaffoldForce); err != nil {
					failed = true
					fmt.Fprintln(os.Stderr, "bulloak:", err)
					line.Status = ui.StatusError
					line.Detail = "not written"
				} else {
					line.Detail = res.SolPath
				}

			default:
				fmt.Print(res.Output)
			}
			lines = append(lines, line)
		}

		if scaffoldWrite && !quietMode(cmd) {
			fmt.Fprint(os.Stderr, ui.Summary("scaffold", lines))
		}
		if failed {
			return errFindings
		}
		return nil
	},
}
