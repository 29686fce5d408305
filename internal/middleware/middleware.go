// Package middleware holds the handler wrappers every command runs through:
// access control, permission checks, cooldowns and history logging.
package middleware

import (
	"context"

	"github.com/keshon/hizollo/internal/command"
)

// deny answers the caller privately and stops the chain.
func deny(ctx context.Context, inv *command.Invocation, text string) error {
	if inv.Reply == nil {
		return nil
	}
	return inv.Reply.RespondText(ctx, text, true)
}

func commandName(inv *command.Invocation) string {
	if inv.Command == nil {
		return ""
	}
	if inv.Group != "" {
		return inv.Group + " " + inv.Command.Name
	}
	return inv.Command.Name
}
