package cmd

import (
	"bytes"
	"context"
	"log"
	"text/template"

	"github.com/spf13/cobra"
)

var tagList = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Long:  "List the tags of the repository in the order they were added.",
	Run: func(cmd *cobra.Command, args []string) {
		const listLineTemplateString = `{{.Name}} , {{.Path}}@{{.Version}} , {{.Branch}} , {{.Timestamp}}`
		listLineTemplate := template.Must(template.New("list line").Parse(listLineTemplateString))
		repo, err := paramsToRepo(params)
		if err != nil {
			logFatalln(err)
			return
		}
		tags, err := repo.ListTags(context.Background())
		if err != nil {
			logFatalln(err)
			return
		}
		for i := range tags {
			var buf bytes.Buffer
			if err := listLineTemplate.Execute(&buf, &tags[i]); err != nil {
				log.Println("executing template:", err)
			}
			log.Println(buf.String())
		}
	},
}

func init() {
	tagCmd.AddCommand(tagList)
}
