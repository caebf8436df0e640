package cmd

import (
	"context"
	"path/filepath"

	"github.com/oneconcern/filemon/pkg/model"
	"github.com/spf13/cobra"
)

var tagAdd = &cobra.Command{
	Use:   "add <name> <path> <version>",
	Short: "Pin a stored file version under a name",
	Args:  cobra.ExactArgs(3),
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
		path := filepath.ToSlash(filepath.Clean(args[1]))
		version, err := model.ParseVersion(args[2])
		if err != nil {
			logFatalln(err)
			return
		}
		if err := repo.AddTag(context.Background(), args[0], params.session.branch, path, version, contributor); err != nil {
			logFatalln(err)
			return
		}
		infoLogger.Printf("tagged %s@%s as %s", path, version.String(), args[0])
	},
}

func init() {
	addBranchFlag(tagAdd)

	tagCmd.AddCommand(tagAdd)
}
