package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
	"github.com/keshon/hizollo/internal/view"
)

const historyShown = 10

func devdumpCommand(reg *command.Registry, deps Deps) *command.Command {
	return &command.Command{
		Type:        command.TypeDeveloper,
		Name:        "devdump",
		Description: "列出指令註冊狀態與最近的指令紀錄",
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			v := &view.View{
				Author:    view.Author{Name: "指令註冊狀態"},
				Color:     deps.Color,
				Ephemeral: true,
			}

			counts := make(map[command.Type]int)
			for cmd := range reg.Iterate(nil) {
				counts[cmd.Type]++
			}
			var lines []string
			for _, t := range command.Types() {
				if counts[t] > 0 {
					lines = append(lines, fmt.Sprintf("%s：%d", help.CategoryName(t), counts[t]))
				}
			}
			v.Description = fmt.Sprintf("共 %d 個指令，%d 個指令群\n%s", reg.Len(), len(reg.Groups()), strings.Join(lines, "\n"))

			v.Fields = append(v.Fields,
				view.Field{Name: "最近的指令紀錄", Value: recentHistory(deps.History, inv.Caller.GuildID)},
				view.Field{Name: "背景工作", Value: runningJobs(deps.Jobs)},
			)
			return inv.Reply.Respond(ctx, v)
		},
	}
}

func recentHistory(h HistoryReader, guildID string) string {
	if h == nil {
		return "無"
	}
	records, err := h.FetchCommandHistory(guildID)
	if err != nil {
		return "讀取失敗：" + err.Error()
	}
	if len(records) == 0 {
		return "無"
	}
	if len(records) > historyShown {
		records = records[len(records)-historyShown:]
	}

	var sb strings.Builder
	for _, r := range records {
		prefix := ""
		if r.Slash {
			prefix = "/"
		}
		fmt.Fprintf(&sb, "`%s` %s %s%s\n", r.Datetime.Format("01-02 15:04"), r.Username, prefix, r.Command)
	}
	return sb.String()
}

func runningJobs(jobs func() []string) string {
	if jobs == nil {
		return "無"
	}
	active := jobs()
	if len(active) == 0 {
		return "無"
	}
	return "`" + strings.Join(active, "`\n`") + "`"
}
