package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchSwitch = &cobra.Command{
	Use:   "switch <name>",
	Short: "Make a branch the session branch",
	Long: "Make an existing branch the session branch: subsequent commands " +
		"operate on it until the next switch.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		// the branch must exist before the session points at it
		if _, err := repo.GetBranch(context.Background(), args[0]); err != nil {
			logFatalln(err)
			return
		}
		config.Branch = args[0]
		if err := config.save(params.root.repoDir); err != nil {
			wrapFatalln("failed to update session config", err)
			return
		}
		infoLogger.Println("switched to branch", args[0])
	},
}

func init() {
	branchCmd.AddCommand(branchSwitch)
}
