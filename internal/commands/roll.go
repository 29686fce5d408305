package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/view"
)

const defaultFormula = "1d6"

func rollGroup(deps Deps) (*command.Command, []*command.Command) {
	header := &command.Command{
		Type:        command.TypeSubcommandGroup,
		Name:        "roll",
		Description: "擲骰子或擲硬幣",
	}

	dice := &command.Command{
		Type:             command.TypeFun,
		Name:             "dice",
		Aliases:          []string{"d"},
		Description:      "依照算式擲骰子",
		ExtraDescription: "算式支援 `2d6+1d4*2-3` 這類寫法，預設為 `1d6`",
		Cooldown:         3,
		Options: []command.Option{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "算式",
			Description: "例如 2d6+1d4*2-3",
		}},
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			formula := inv.Arg(0)
			if formula == "" {
				formula = defaultFormula
			}
			roll, err := EvalFormula(formula, deps.Intn)
			if err != nil {
				return inv.Reply.RespondText(ctx, fmt.Sprintf("無法計算這個算式：%v", err), true)
			}
			return inv.Reply.Respond(ctx, &view.View{
				Author:      view.Author{Name: "🎲 擲骰結果"},
				Description: fmt.Sprintf("**算式**：`%s`\n**過程**：%s\n**結果**：**%d**", roll.Formula, roll.Detail, roll.Total),
				Color:       deps.Color,
			})
		},
	}

	coin := &command.Command{
		Type:        command.TypeFun,
		Name:        "coin",
		Aliases:     []string{"c"},
		Description: "擲一枚硬幣",
		Cooldown:    3,
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			side := "正面"
			if deps.Intn(2) == 1 {
				side = "反面"
			}
			return inv.Reply.RespondText(ctx, "🪙 硬幣落下，是"+side+"！", false)
		},
	}

	return header, []*command.Command{dice, coin}
}
