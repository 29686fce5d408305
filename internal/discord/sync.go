package discord

import (
	"context"
	"fmt"
	"maps"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/hizollo/pkg/retrylimit"
)

// commandAPI is the slice of the REST API slash sync needs.
type commandAPI interface {
	Commands(guildID string) ([]*discordgo.ApplicationCommand, error)
	Create(guildID string, cmd *discordgo.ApplicationCommand) error
	Delete(guildID, cmdID string) error
}

// hashStore remembers what was last pushed per guild.
type hashStore interface {
	CommandHashes(guildID string) (map[string]string, error)
	SetCommandHashes(guildID string, hashes map[string]string) error
}

type sessionAPI struct {
	s *discordgo.Session
}

func (a sessionAPI) appID() string { return a.s.State.User.ID }

func (a sessionAPI) Commands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return a.s.ApplicationCommands(a.appID(), guildID)
}

func (a sessionAPI) Create(guildID string, cmd *discordgo.ApplicationCommand) error {
	_, err := a.s.ApplicationCommandCreate(a.appID(), guildID, cmd)
	return err
}

func (a sessionAPI) Delete(guildID, cmdID string) error {
	return a.s.ApplicationCommandDelete(a.appID(), guildID, cmdID)
}

// commandSyncer pushes slash definitions, skipping the ones whose hash
// matches what the guild already has.
type commandSyncer struct {
	api   commandAPI
	store hashStore
	lim   *retrylimit.AdaptiveLimiter
	retry retrylimit.Config
	log   zerolog.Logger
}

func newCommandSyncer(api commandAPI, store hashStore, log zerolog.Logger) *commandSyncer {
	retry := retrylimit.DefaultConfig()
	retry.Log = log
	return &commandSyncer{
		api:   api,
		store: store,
		lim:   retrylimit.NewAdaptiveLimiter(5, 1, 40, 1, 0.5),
		retry: retry,
		log:   log,
	}
}

// Sync makes the guild's commands match wanted and returns how many were
// created or updated.
func (c *commandSyncer) Sync(ctx context.Context, guildID string, wanted []*discordgo.ApplicationCommand) (int, error) {
	var existing []*discordgo.ApplicationCommand
	err := c.do(ctx, func() error {
		var err error
		existing, err = c.api.Commands(guildID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("list commands: %w", err)
	}

	stored, err := c.store.CommandHashes(guildID)
	if err != nil {
		return 0, fmt.Errorf("load command hashes: %w", err)
	}
	wantedHashes := hashAll(wanted)

	remote := make(map[string]bool, len(existing))
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; ok {
			remote[old.Name] = true
			continue
		}
		c.log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
		if err := c.do(ctx, func() error { return c.api.Delete(guildID, old.ID) }); err != nil {
			c.log.Error().Err(err).Str("guild", guildID).Str("command", old.Name).Msg("failed to delete command")
			continue
		}
		delete(stored, old.Name)
	}

	changed := 0
	for _, cmd := range wanted {
		hash := wantedHashes[cmd.Name]
		if remote[cmd.Name] && stored[cmd.Name] == hash {
			continue
		}
		if err := c.do(ctx, func() error { return c.api.Create(guildID, cmd) }); err != nil {
			if ctx.Err() != nil {
				return changed, ctx.Err()
			}
			c.log.Error().Err(err).Str("guild", guildID).Str("command", cmd.Name).Msg("failed to create command")
			continue
		}
		stored[cmd.Name] = hash
		changed++
	}

	maps.DeleteFunc(stored, func(name, _ string) bool {
		_, ok := wantedHashes[name]
		return !ok
	})
	if err := c.store.SetCommandHashes(guildID, stored); err != nil {
		return changed, fmt.Errorf("save command hashes: %w", err)
	}
	return changed, nil
}

func (c *commandSyncer) do(ctx context.Context, fn func() error) error {
	return retrylimit.WithRetryConfig(ctx, func() error {
		return retrylimit.FromDiscord(fn())
	}, c.lim, c.retry)
}
