package cmd

import (
	"github.com/spf13/cobra"
)

// branchCmd represents the branch related commands
var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Commands to manage branches",
	Long: `Commands to manage branches.

A branch forks the full history of its parent at creation time and
evolves independently from there. The session operates on one branch
at a time ("branch switch").`,
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
