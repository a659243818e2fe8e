package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bulloak/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bulloak",
	Short: "Spec-driven test scaffolding for Solidity",
	Long: `bulloak compiles branching-tree spec files (*.tree) into Solidity
test skeletons and keeps the generated files consistent with their specs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		configureColor(cmd)
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		if err != errFindings {
			rootCmd.PrintErrln("bulloak:", err)
		}
		os.Exit(1)
	}
}

func configureColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func quietMode(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
