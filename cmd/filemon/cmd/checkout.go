package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <path> [version]",
	Short: "Write a stored version back to the working tree",
	Long: "Restore the content of a tracked file into the working tree. " +
		"Without a version argument the branch head is used.",
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		path := filepath.ToSlash(filepath.Clean(args[0]))
		var versionArg string
		if len(args) == 2 {
			versionArg = args[1]
		}
		version, err := versionFlag(versionArg)
		if err != nil {
			logFatalln(err)
			return
		}
		buf, err := repo.Checkout(context.Background(), params.session.branch, path, version)
		if err != nil {
			logFatalln(err)
			return
		}
		destination := params.checkout.destination
		if destination == "" {
			destination = args[0]
		}
		if dir := filepath.Dir(destination); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				wrapFatalln("failed to create "+dir, err)
				return
			}
		}
		if err := os.WriteFile(destination, buf, 0600); err != nil {
			wrapFatalln("failed to write "+destination, err)
			return
		}
		infoLogger.Printf("checked out %s to %s", path, destination)
	},
}

func init() {
	addBranchFlag(checkoutCmd)
	addDestinationFlag(checkoutCmd)

	rootCmd.AddCommand(checkoutCmd)
}
