package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oneconcern/filemon/pkg/core"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit <file>",
	Short: "Commit a new version of a file",
	Long: "Commit the current content of a file to the session branch. " +
		"The version number is assigned automatically (minor bump, 1.0 for a new file) " +
		"unless --version forces one sorting after the current head.",
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
		version, err := versionFlag(params.commit.version)
		if err != nil {
			logFatalln(err)
			return
		}
		path := filepath.ToSlash(filepath.Clean(args[0]))
		content, err := os.ReadFile(args[0])
		if err != nil {
			wrapFatalln("failed to read "+args[0], err)
			return
		}
		commit, err := repo.Commit(context.Background(), core.CommitParams{
			Branch:      params.session.branch,
			Path:        path,
			Content:     content,
			Message:     params.commit.message,
			Contributor: contributor,
			Version:     version,
		})
		if err != nil {
			logFatalln(err)
			return
		}
		infoLogger.Printf("committed %s@%s on %s", commit.Path, commit.Version.String(), commit.Branch)
	},
}

func init() {
	addBranchFlag(commitCmd)
	addMessageFlag(commitCmd)
	addVersionFlag(commitCmd)

	rootCmd.AddCommand(commitCmd)
}
