package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var branchList = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		branches, err := repo.ListBranches(context.Background())
		if err != nil {
			logFatalln(err)
			return
		}
		for _, name := range branches {
			if name == params.session.branch {
				log.Println("*", name)
				continue
			}
			log.Println(" ", name)
		}
	},
}

func init() {
	branchCmd.AddCommand(branchList)
}
