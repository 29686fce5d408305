// cmd/cli/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/commands"
	"github.com/keshon/hizollo/internal/help"
)

var (
	botName   string
	prefix    string
	developer bool
)

// rootCmd inspects the command catalog without connecting to Discord.
var rootCmd = &cobra.Command{
	Use:   "hizollo-cli",
	Short: "Inspect the HiZollo command catalog offline",
	Long: `Render the help center and generate documentation from the same
registry the bot uses, without a Discord connection.

Available subcommands:
  overview - Show the category overview
  category - List the commands of one category
  show     - Show the detail of a command or group
  readme   - Write README.md from the catalog`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&botName, "name", "HiZollo", "bot display name")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "z!", "message command prefix")
	rootCmd.PersistentFlags().BoolVar(&developer, "developer", false, "render as a developer")

	rootCmd.AddCommand(overviewCmd, categoryCmd, showCmd, readmeCmd)
}

// catalog builds the registry and renderer the same way the bot does.
func catalog() (*command.Registry, *help.Renderer, error) {
	reg := command.NewRegistry()
	auth := help.AuthorizerFunc(func(_ command.Caller, t command.Type) bool {
		return t != command.TypeDeveloper || developer
	})
	renderer := help.NewRenderer(reg, help.Config{BotName: botName, Prefix: prefix}, auth, nil)
	if err := commands.Register(reg, commands.Deps{Renderer: renderer}); err != nil {
		return nil, nil, err
	}
	return reg, renderer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
