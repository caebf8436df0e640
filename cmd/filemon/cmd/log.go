package cmd

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [path]",
	Short: "List commits on the session branch",
	Long: "List the commits of the session branch oldest first, " +
		"optionally restricted to a single tracked file.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		const listLineTemplateString = `{{.Path}}@{{.Version}} , {{.Timestamp}} , {{.Contributor}}{{if .Message}} , {{.Message}}{{end}}`
		listLineTemplate := template.Must(template.New("list line").Parse(listLineTemplateString))
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		var path string
		if len(args) == 1 {
			path = filepath.ToSlash(filepath.Clean(args[0]))
		}
		commits, err := repo.History(context.Background(), params.session.branch, path)
		if err != nil {
			logFatalln(err)
			return
		}
		for i := range commits {
			var buf bytes.Buffer
			if err := listLineTemplate.Execute(&buf, &commits[i]); err != nil {
				log.Println("executing template:", err)
			}
			log.Println(buf.String())
		}
	},
}

func init() {
	addBranchFlag(logCmd)

	rootCmd.AddCommand(logCmd)
}
