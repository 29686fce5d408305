package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/hizollo/internal/docs"
)

var (
	readmeTemplate string
	readmeOutput   string
)

// readmeCmd regenerates README.md
var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Write README.md from the catalog",
	Long: `Write README.md from the command catalog. A README.md.tmpl next to it
is used as the template when present; it receives .BotName, .Prefix and
.CommandSections.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, _, err := catalog()
		if err != nil {
			return err
		}
		if err := docs.UpdateReadme(reg, readmeTemplate, readmeOutput, docs.Data{BotName: botName, Prefix: prefix}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", readmeOutput)
		return nil
	},
}

func init() {
	readmeCmd.Flags().StringVar(&readmeTemplate, "template", "README.md.tmpl", "template path")
	readmeCmd.Flags().StringVar(&readmeOutput, "out", "README.md", "output path")
}
