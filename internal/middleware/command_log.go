package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/storage"
)

// HistoryStore persists executed commands.
type HistoryStore interface {
	AppendCommandToHistory(guildID string, rec storage.CommandHistoryRecord) error
}

// WithCommandLogger logs every execution and appends it to the history of
// the guild it ran in.
func WithCommandLogger(store HistoryStore, log zerolog.Logger) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, inv *command.Invocation) error {
			start := time.Now()
			err := next(ctx, inv)

			name := commandName(inv)
			ev := log.Info()
			if err != nil {
				ev = log.Error().Err(err)
			}
			ev.Str("command", name).
				Str("user", inv.Caller.Tag).
				Str("guild", inv.Caller.GuildID).
				Bool("slash", inv.Slash).
				Dur("took", time.Since(start)).
				Msg("command executed")

			if store != nil {
				rec := storage.CommandHistoryRecord{
					ChannelID: inv.Caller.ChannelID,
					GuildID:   inv.Caller.GuildID,
					UserID:    inv.Caller.UserID,
					Username:  inv.Caller.Tag,
					Command:   name,
					Param:     strings.Join(inv.Args, " "),
					Slash:     inv.Slash,
					Datetime:  start.UTC(),
				}
				if e := store.AppendCommandToHistory(inv.Caller.GuildID, rec); e != nil {
					log.Warn().Err(e).Str("command", name).Msg("failed to record command history")
				}
			}
			return err
		}
	}
}
