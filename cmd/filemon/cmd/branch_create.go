package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchCreate = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a branch forking the session branch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		if err := repo.CreateBranch(context.Background(), args[0], params.session.branch); err != nil {
			logFatalln(err)
			return
		}
		infoLogger.Printf("created branch %s from %s", args[0], params.session.branch)
	},
}

func init() {
	addBranchFlag(branchCreate)

	branchCmd.AddCommand(branchCreate)
}
