package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
)

var chooseReplies = []string{
	"我選 <>", "我的話會選 <>", "我想選 <>", "我選擇 <>", "選 <> 好了",
	"<>，我選這個", "<>，如何", "也許 <> 是 ok 的", "<>？", "我認為 <> 是最好的",
	"<> 好像比較好，你覺得呢？", "<> 吧",
}

const chooseTooFew = "請給我兩個以上的選項，不然我是要怎麼選"

func chooseCommand(deps Deps) *command.Command {
	return &command.Command{
		Type:        command.TypeUtility,
		Name:        "choose",
		Description: "讓 HiZollo 來拯救你的選擇困難症",
		Options: []command.Option{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "選項%i",
			Description: "要抽出的選項",
			Repeat:      true,
		}},
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			var options []string
			for _, a := range inv.Args {
				if a = strings.TrimSpace(a); a != "" {
					options = append(options, a)
				}
			}
			if len(options) < 2 {
				return inv.Reply.RespondText(ctx, chooseTooFew, true)
			}

			picked := options[deps.Intn(len(options))]
			reply := chooseReplies[deps.Intn(len(chooseReplies))]
			return inv.Reply.RespondText(ctx, strings.Replace(reply, "<>", picked, 1), false)
		},
	}
}
