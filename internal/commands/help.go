package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
)

func helpCommand(reg *command.Registry, deps Deps) *command.Command {
	return &command.Command{
		Type:        command.TypeInformation,
		Name:        "help",
		Aliases:     []string{"h"},
		Description: "顯示 HiZollo 的指令清單或查詢指令用法",
		Options: []command.Option{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "指令名稱",
			Description: "要查詢的特定指令",
		}},
		Permissions: &command.Permissions{Bot: []int64{discordgo.PermissionEmbedLinks}},
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			key, sub := splitQuery(inv.Args)
			if key == "" {
				return inv.Reply.Respond(ctx, deps.Renderer.Overview(inv.Caller))
			}

			v, ok := deps.Renderer.Resolved(inv.Caller, reg.Resolve(key, sub))
			if !ok {
				return inv.Reply.RespondText(ctx, deps.Renderer.NotFound(), true)
			}
			return inv.Reply.Respond(ctx, v)
		},
	}
}

// splitQuery reads "key [sub]" from either one combined argument or two.
func splitQuery(args []string) (key, sub string) {
	fields := strings.Fields(strings.Join(args, " "))
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}
