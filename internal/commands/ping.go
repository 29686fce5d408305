package commands

import (
	"context"
	"fmt"

	"github.com/keshon/hizollo/internal/command"
)

func pingCommand(deps Deps) *command.Command {
	return &command.Command{
		Type:        command.TypeInformation,
		Name:        "ping",
		Description: "查看 HiZollo 的延遲",
		Cooldown:    5,
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			if deps.Latency == nil {
				return inv.Reply.RespondText(ctx, "Pong！", false)
			}
			return inv.Reply.RespondText(ctx, fmt.Sprintf("Pong！延遲為 %d 毫秒", deps.Latency().Milliseconds()), false)
		},
	}
}
