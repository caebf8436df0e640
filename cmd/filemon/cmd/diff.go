package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <path> <version> <version>",
	Short: "Show the line differences between two stored versions",
	Long: "Render a unified diff between two stored versions of a tracked file, " +
		"additions in green and deletions in red.",
	Args: cobra.ExactArgs(3),
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
		out, err := repo.DiffUnified(context.Background(), params.session.branch, path, from, to)
		if err != nil {
			logFatalln(err)
			return
		}
		printColoredDiff(out)
	},
}

func diffArgs(args []string) (string, model.Version, model.Version, error) {
	path := filepath.ToSlash(filepath.Clean(args[0]))
	from, err := model.ParseVersion(args[1])
	if err != nil {
		return "", model.Version{}, model.Version{}, err
	}
	to, err := model.ParseVersion(args[2])
	if err != nil {
		return "", model.Version{}, model.Version{}, err
	}
	return path, from, to, nil
}

func printColoredDiff(out string) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			infoLogger.Println(line)
		case strings.HasPrefix(line, "@@"):
			infoLogger.Println(hunk.Sprint(line))
		case strings.HasPrefix(line, "+"):
			infoLogger.Println(added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			infoLogger.Println(removed.Sprint(line))
		default:
			infoLogger.Println(line)
		}
	}
}

func init() {
	addBranchFlag(diffCmd)

	rootCmd.AddCommand(diffCmd)
}
