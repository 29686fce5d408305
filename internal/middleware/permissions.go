package middleware

import (
	"context"

	"github.com/keshon/hizollo/internal/command"
)

// PermissionChecker reports the effective permission bits of a user in a
// channel.
type PermissionChecker interface {
	UserPermissions(userID, channelID string) (int64, error)
	BotPermissions(channelID string) (int64, error)
}

const (
	userMissingPermissions = "你沒有足夠的權限使用這個指令"
	botMissingPermissions  = "我沒有足夠的權限執行這個指令"
)

// WithPermissions enforces Command.Permissions in guild channels. Direct
// messages carry no permission model and pass through.
func WithPermissions(checker PermissionChecker) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, inv *command.Invocation) error {
			perms := permissionsOf(inv)
			if perms == nil || inv.Caller.GuildID == "" {
				return next(ctx, inv)
			}

			if len(perms.User) > 0 {
				have, err := checker.UserPermissions(inv.Caller.UserID, inv.Caller.ChannelID)
				if err != nil || !hasAll(have, perms.User) {
					return deny(ctx, inv, userMissingPermissions)
				}
			}
			if len(perms.Bot) > 0 {
				have, err := checker.BotPermissions(inv.Caller.ChannelID)
				if err != nil || !hasAll(have, perms.Bot) {
					return deny(ctx, inv, botMissingPermissions)
				}
			}
			return next(ctx, inv)
		}
	}
}

func permissionsOf(inv *command.Invocation) *command.Permissions {
	if inv.Command == nil {
		return nil
	}
	return inv.Command.Permissions
}

func hasAll(have int64, want []int64) bool {
	for _, p := range want {
		if have&p != p {
			return false
		}
	}
	return true
}
