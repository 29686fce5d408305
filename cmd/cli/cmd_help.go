package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/view"
)

var cliCaller = command.Caller{Tag: "cli"}

// overviewCmd prints the category overview
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the category overview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, renderer, err := catalog()
		if err != nil {
			return err
		}
		printView(cmd.OutOrStdout(), renderer.Overview(cliCaller))
		return nil
	},
}

// categoryCmd prints one category
var categoryCmd = &cobra.Command{
	Use:   "category <key>",
	Short: "List the commands of one category",
	Long: `List the commands of one category. Keys: utility, information, fun,
single-player-game, multi-player-game, contact, network, miscellaneous,
subcommand-group, developer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, renderer, err := catalog()
		if err != nil {
			return err
		}
		t, ok := command.ParseType(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}
		if !renderer.Authorized(cliCaller, t) {
			fmt.Fprintln(cmd.OutOrStdout(), renderer.NotFound())
			return nil
		}
		printView(cmd.OutOrStdout(), renderer.Category(cliCaller, t))
		return nil
	},
}

// showCmd prints a command or group detail
var showCmd = &cobra.Command{
	Use:   "show <command> [subcommand]",
	Short: "Show the detail of a command or group",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, renderer, err := catalog()
		if err != nil {
			return err
		}
		sub := ""
		if len(args) == 2 {
			sub = args[1]
		}
		v, ok := renderer.Resolved(cliCaller, reg.Resolve(args[0], sub))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), renderer.NotFound())
			return nil
		}
		printView(cmd.OutOrStdout(), v)
		return nil
	},
}

// printView writes a view as plain text.
func printView(w io.Writer, v *view.View) {
	if v.Author.Name != "" {
		fmt.Fprintf(w, "== %s ==\n", v.Author.Name)
	}
	if v.Description != "" {
		fmt.Fprintln(w, v.Description)
	}
	for _, f := range v.Fields {
		if f.Name == "\u200b" {
			continue
		}
		fmt.Fprintf(w, "\n%s\n%s\n", f.Name, f.Value)
	}
	if v.Menu != nil {
		fmt.Fprintf(w, "\n[%s] %s\n", v.Menu.CustomID, v.Menu.Placeholder)
		for _, o := range v.Menu.Options {
			fmt.Fprintf(w, "  %s %s (%s)\n", o.Emoji, o.Label, o.Value)
		}
	}
	if v.Footer.Text != "" {
		fmt.Fprintf(w, "-- %s\n", v.Footer.Text)
	}
}
