package cmd

import (
	"github.com/spf13/cobra"
)

// tagCmd represents the tag related commands
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Commands to manage tags",
	Long: `Commands to manage tags.

A tag pins a stored file version under a memorable name, analogous to
"git tag". Tags are immutable: a name is taken once.`,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
