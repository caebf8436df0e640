package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <remote>",
	Short: "Upload the session branch to a remote location",
	Long: `Upload the commits of the session branch missing at a remote location.

The remote is a repository-shaped directory reachable as a plain path.
A remote branch holding commits this repository has never seen rejects
the push: pull first, there is no force push.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		report, err := repo.Push(context.Background(), args[0], params.session.branch)
		for _, entry := range report.Transferred {
			infoLogger.Println("pushed:", entry)
		}
		for _, name := range report.Tags {
			infoLogger.Println("pushed tag:", name)
		}
		if err != nil {
			logFatalln(err)
			return
		}
		if len(report.Transferred) == 0 && len(report.Tags) == 0 {
			infoLogger.Println("everything up to date")
		}
	},
}

func init() {
	addBranchFlag(pushCmd)

	rootCmd.AddCommand(pushCmd)
}
