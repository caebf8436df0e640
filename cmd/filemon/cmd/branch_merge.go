package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchMerge = &cobra.Command{
	Use:   "merge <source>",
	Short: "Merge a branch into the session branch",
	Long: `Merge a branch into the session branch, path by path.

Paths only the source changed fast-forward onto the session branch.
Paths both branches changed with identical content need nothing.
Paths both branches changed differently are reported as conflicts
and left untouched: resolve them with a new commit on either side.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		contributor, err := paramsToContributor(params)
		if err != nil {
			logFatalln(err)
			return
		}
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		result, err := repo.Merge(context.Background(), args[0], params.session.branch, contributor)
		if err != nil {
			logFatalln(err)
			return
		}
		for _, path := range result.Merged {
			infoLogger.Println("merged:", path)
		}
		for _, path := range result.Conflicted {
			infoLogger.Println("CONFLICT:", path)
		}
		if len(result.Conflicted) > 0 {
			osExit(1)
		}
	},
}

func init() {
	addBranchFlag(branchMerge)

	branchCmd.AddCommand(branchMerge)
}
