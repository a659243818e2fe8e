package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bulloak/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bulloak build fingerprints",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Println("bulloak", version.Version)
		if version.GitCommit != "" {
			fmt.Println("commit:", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Println("built:", version.BuildDate)
		}
	},
}
