package command

import (
	"context"

	"github.com/keshon/hizollo/internal/view"
)

// Caller identifies who triggered an invocation or a menu selection.
type Caller struct {
	UserID    string
	Tag       string
	AvatarURL string
	GuildID   string
	ChannelID string
}

// Responder delivers a payload back to the requester. Delivery is the
// transport's concern; a returned error is only logged.
type Responder interface {
	Respond(ctx context.Context, v *view.View) error
	RespondText(ctx context.Context, text string, ephemeral bool) error
}

// Invocation is an already parsed request. Args hold option values in
// declaration order; a repeating option contributes every collected value.
type Invocation struct {
	Command    *Command
	Caller     Caller
	Group      string
	Subcommand string
	Args       []string
	Reply      Responder
	Slash      bool
}

// Arg returns the i-th argument or an empty string.
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Handler executes a command.
type Handler func(ctx context.Context, inv *Invocation) error
