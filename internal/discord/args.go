package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
)

// slashArgs orders interaction option values by the command's declared
// options. Missing optional values become empty strings; a repeating option
// contributes every indexed value that was supplied.
func slashArgs(cmd *command.Command, opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	values := make(map[string]string, len(opts))
	for _, o := range opts {
		values[o.Name] = optionValue(o)
	}

	var args []string
	for _, opt := range cmd.Options {
		if !opt.Repeat {
			args = append(args, values[opt.Name])
			continue
		}
		for i := 1; i <= command.MaxRepeat; i++ {
			if v, ok := values[opt.Indexed(i)]; ok {
				args = append(args, v)
			}
		}
	}
	return args
}

func optionValue(o *discordgo.ApplicationCommandInteractionDataOption) string {
	switch o.Type {
	case discordgo.ApplicationCommandOptionString:
		return o.StringValue()
	case discordgo.ApplicationCommandOptionInteger:
		return fmt.Sprint(o.IntValue())
	case discordgo.ApplicationCommandOptionBoolean:
		return fmt.Sprint(o.BoolValue())
	default:
		return fmt.Sprint(o.Value)
	}
}

// splitSubcommand unwraps the single subcommand option of a group
// invocation.
func splitSubcommand(opts []*discordgo.ApplicationCommandInteractionDataOption) (string, []*discordgo.ApplicationCommandInteractionDataOption, bool) {
	if len(opts) != 1 || opts[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", opts, false
	}
	return opts[0].Name, opts[0].Options, true
}

// prefixRequest is a message command split into its parts.
type prefixRequest struct {
	Key    string
	Fields []string
}

// parsePrefix splits "z!roll dice 2d6" style content. ok is false when the
// message does not start with the prefix or names nothing.
func parsePrefix(prefix, content string) (prefixRequest, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(content), prefix)
	if !ok || prefix == "" {
		return prefixRequest{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return prefixRequest{}, false
	}
	return prefixRequest{Key: fields[0], Fields: fields[1:]}, true
}

// bindArgs assigns message words to declared options. A repeating option
// takes every remaining word; the last plain option takes the rest of the
// line.
func bindArgs(cmd *command.Command, fields []string) []string {
	var args []string
	for i, opt := range cmd.Options {
		if len(fields) == 0 {
			break
		}
		switch {
		case opt.Repeat:
			n := min(len(fields), command.MaxRepeat)
			args = append(args, fields[:n]...)
			fields = nil
		case i == len(cmd.Options)-1:
			args = append(args, strings.Join(fields, " "))
			fields = nil
		default:
			args = append(args, fields[0])
			fields = fields[1:]
		}
	}
	return args
}
