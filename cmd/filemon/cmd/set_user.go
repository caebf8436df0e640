package cmd

import (
	"github.com/spf13/cobra"
)

var setUserCmd = &cobra.Command{
	Use:   "set-user <name>",
	Short: "Record the contributor stamped on commits and tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// validates the repository exists before touching its config
		if _, err := paramsToRepo(params); err != nil {
			logFatalln(err)
			return
		}
		config.Name = args[0]
		if params.session.email != "" {
			config.Email = params.session.email
		}
		if err := config.save(params.root.repoDir); err != nil {
			wrapFatalln("failed to update session config", err)
			return
		}
		infoLogger.Println("contributor set to", config.Name)
	},
}

func init() {
	addContributorEmail(setUserCmd)

	rootCmd.AddCommand(setUserCmd)
}
