package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <path> <version> <version>",
	Short: "Count lines added and removed between two stored versions",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		path, from, to, err := diffArgs(args)
		if err != nil {
			logFatalln(err)
			return
		}
		m, err := repo.DiffMetrics(context.Background(), params.session.branch, path, from, to)
		if err != nil {
			logFatalln(err)
			return
		}
		infoLogger.Printf("%s %s..%s: +%d -%d", path, from.String(), to.String(), m.Additions, m.Deletions)
	},
}

func init() {
	addBranchFlag(metricsCmd)

	rootCmd.AddCommand(metricsCmd)
}
