package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocbeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocbeam",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocbeam v%s\n", version.Version)
		fmt.Println("Continuous Beam Analysis Tool")
		fmt.Println("Direct stiffness method, NSCP 2015 load combinations")
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
