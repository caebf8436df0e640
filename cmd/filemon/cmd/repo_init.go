package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oneconcern/filemon/pkg/model"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a repository",
	Long: "Initialize a filemon repository in the --repo directory. " +
		"Creates the root branch \"" + model.DefaultBranch + "\" and the session config. " +
		"Running it again on an existing repository is harmless.",
	Run: func(cmd *cobra.Command, args []string) {
		dir := params.root.repoDir
		if _, err := os.Stat(filepath.Join(dir, configFile)); err != nil {
			cfg := CLIConfig{
				Name:   params.session.name,
				Email:  params.session.email,
				Branch: model.DefaultBranch,
			}
			if err := cfg.save(dir); err != nil {
				wrapFatalln("failed to write repository config", err)
				return
			}
		}
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		if err := repo.Initialize(context.Background()); err != nil {
			wrapFatalln("failed to initialize repository", err)
			return
		}
		infoLogger.Println("initialized filemon repository in", dir)
	},
}

func init() {
	addContributorEmail(initCmd)
	initCmd.Flags().StringVar(&params.session.name, "name", "", "The name of the contributor")

	rootCmd.AddCommand(initCmd)
}
