package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull <remote>",
	Short: "Download remote commits into the session branch",
	Long: `Download the commits of a remote location missing on the session branch.

Paths changed on both sides with different content are reported as
diverged and left untouched locally. Remote tags are copied along.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		report, err := repo.Pull(context.Background(), args[0], params.session.branch)
		for _, entry := range report.Transferred {
			infoLogger.Println("pulled:", entry)
		}
		for _, name := range report.Tags {
			infoLogger.Println("pulled tag:", name)
		}
		for _, path := range report.Diverged {
			infoLogger.Println("DIVERGED:", path)
		}
		if err != nil {
			logFatalln(err)
			return
		}
		if len(report.Transferred) == 0 && len(report.Tags) == 0 && len(report.Diverged) == 0 {
			infoLogger.Println("already up to date")
		}
	},
}

func init() {
	addBranchFlag(pullCmd)

	rootCmd.AddCommand(pullCmd)
}
