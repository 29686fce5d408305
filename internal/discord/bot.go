package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/commands"
	"github.com/keshon/hizollo/internal/config"
	"github.com/keshon/hizollo/internal/help"
	"github.com/keshon/hizollo/internal/middleware"
	"github.com/keshon/hizollo/internal/nav"
	"github.com/keshon/hizollo/internal/storage"
	"github.com/keshon/hizollo/pkg/jobmgr"
)

// Bot is a Discord bot
type Bot struct {
	dg        *discordgo.Session
	cfg       *config.Config
	log       zerolog.Logger
	storage   *storage.Storage
	registry  *command.Registry
	renderer  *help.Renderer
	router    *nav.Router
	syncer    *commandSyncer
	cooldowns *middleware.Cooldowns
	jobs      *jobmgr.Manager
	ctx       context.Context
}

// New builds the session and the command catalog without connecting.
func New(cfg *config.Config, store *storage.Storage, log zerolog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		dg:        dg,
		cfg:       cfg,
		log:       log,
		storage:   store,
		cooldowns: middleware.NewCooldowns(),
		ctx:       context.Background(),
	}
	b.jobs = jobmgr.NewManager(b.reportJob)
	if err := b.buildCatalog(); err != nil {
		return nil, err
	}
	b.syncer = newCommandSyncer(sessionAPI{dg}, store, log.With().Str("component", "slash-sync").Logger())
	return b, nil
}

func (b *Bot) buildCatalog() error {
	auth := developerAuthorizer{cfg: b.cfg}
	b.registry = command.NewRegistry()
	b.renderer = help.NewRenderer(b.registry, help.Config{
		BotName: b.cfg.BotName,
		Prefix:  b.cfg.Prefix,
		Color:   int(b.cfg.EmbedColor),
	}, auth, sessionProfile{b.dg})
	b.router = nav.NewRouter(b.registry, b.renderer, b.log)

	err := commands.Register(b.registry, commands.Deps{
		Renderer: b.renderer,
		History:  b.storage,
		Color:    int(b.cfg.EmbedColor),
		Latency:  b.dg.HeartbeatLatency,
		Jobs:     b.jobs.List,
	},
		middleware.WithAccessControl(auth, b.renderer.NotFound),
		middleware.WithPermissions(sessionPermissions{b.dg}),
		middleware.WithCooldown(b.cooldowns),
		middleware.WithCommandLogger(b.storage, b.log),
	)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

// Registry exposes the catalog, mainly for tooling.
func (b *Bot) Registry() *command.Registry { return b.registry }

// Run connects and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onInteractionCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("shutdown signal received, cleaning up")
			b.jobs.Wait()
			return nil
		case <-ticker.C:
			b.cooldowns.Prune()
		}
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.leaveIfBlacklisted(s, g.ID) {
			continue
		}
		b.syncCommands(g.ID)
	}
	b.log.Info().Str("user", r.User.String()).Int("guilds", len(r.Guilds)).Msg("discord bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.leaveIfBlacklisted(s, g.ID) {
		return
	}
	b.syncCommands(g.ID)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID string) bool {
	if !b.cfg.IsBlacklisted(guildID) {
		return false
	}
	b.log.Info().Str("guild", guildID).Msg("leaving blacklisted guild")
	if err := s.GuildLeave(guildID); err != nil {
		b.log.Error().Err(err).Str("guild", guildID).Msg("failed to leave guild")
	}
	return true
}

func (b *Bot) syncCommands(guildID string) {
	if !b.cfg.InitSlashCommands {
		b.log.Debug().Str("guild", guildID).Msg("slash command sync skipped")
		return
	}
	err := b.jobs.StartAsync(b.ctx, "slash-sync:"+guildID, func(ctx context.Context) error {
		changed, err := b.syncer.Sync(ctx, guildID, b.registry.SlashDefinitions())
		if changed > 0 {
			b.log.Info().Str("guild", guildID).Int("changed", changed).Msg("slash commands updated")
		}
		return err
	})
	if errors.Is(err, jobmgr.ErrRunning) {
		b.log.Debug().Str("guild", guildID).Msg("slash command sync already running")
	}
}

func (b *Bot) reportJob(ev jobmgr.Event) {
	switch ev.State {
	case jobmgr.StateFailed:
		b.log.Error().Err(ev.Err).Str("job", ev.Job).Msg("job failed")
	default:
		b.log.Debug().Str("job", ev.Job).Str("state", string(ev.State)).Msg("job")
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || b.cfg.IsBlacklisted(m.GuildID) {
		return
	}
	req, ok := parsePrefix(b.cfg.Prefix, m.Content)
	if !ok {
		return
	}

	res := b.registry.Resolve(req.Key, "")
	group, sub := "", ""
	if res.Kind() == command.KindGroup && len(req.Fields) > 0 {
		group, sub = res.Group().Name(), req.Fields[0]
		res = b.registry.Resolve(req.Key, sub)
		req.Fields = req.Fields[1:]
	}

	reply := messageResponder{s: s, m: m.Message}
	caller := callerFrom(m.Author, m.GuildID, m.ChannelID)

	// Hidden commands must be indistinguishable from unknown ones.
	if res.Kind() != command.KindNotFound && !b.renderer.Authorized(caller, res.Type()) {
		res = command.NotFound()
	}

	switch res.Kind() {
	case command.KindFound:
		b.execute(&command.Invocation{
			Command:    res.Command(),
			Caller:     caller,
			Group:      group,
			Subcommand: sub,
			Args:       bindArgs(res.Command(), req.Fields),
			Reply:      reply,
		})
	case command.KindGroup:
		if v, ok := b.renderer.Resolved(caller, res); ok {
			b.reply(reply.Respond(b.ctx, v))
		}
	default:
		b.log.Debug().Str("key", req.Key).Msg("unknown prefix command")
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.cfg.IsBlacklisted(i.GuildID) {
		return
	}
	caller := callerFrom(interactionUser(i), i.GuildID, i.ChannelID)
	reply := interactionResponder{s: s, i: i.Interaction}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		opts := data.Options
		sub, subOpts, isSub := splitSubcommand(opts)

		group := ""
		res := b.registry.Resolve(data.Name, "")
		if isSub {
			group = data.Name
			res = b.registry.Resolve(data.Name, sub)
			opts = subOpts
		}
		if res.Kind() != command.KindFound || !b.renderer.Authorized(caller, res.Type()) {
			b.log.Warn().Str("command", data.Name).Str("sub", sub).Msg("unknown slash command")
			b.reply(reply.RespondText(b.ctx, b.renderer.NotFound(), true))
			return
		}

		b.execute(&command.Invocation{
			Command:    res.Command(),
			Caller:     caller,
			Group:      group,
			Subcommand: sub,
			Args:       slashArgs(res.Command(), opts),
			Reply:      reply,
			Slash:      true,
		})

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if !b.router.Owns(data.CustomID) {
			b.log.Debug().Str("custom_id", data.CustomID).Msg("no handler for component")
			return
		}
		out, ok := b.router.Handle(caller, nav.Selection{CustomID: data.CustomID, Values: data.Values})
		if !ok {
			return
		}
		if out.View != nil {
			b.reply(reply.Respond(b.ctx, out.View))
		} else {
			b.reply(reply.RespondText(b.ctx, out.Text, true))
		}

	default:
		b.log.Debug().Int("type", int(i.Type)).Msg("unhandled interaction type")
	}
}

func (b *Bot) execute(inv *command.Invocation) {
	if inv.Command.Handler == nil {
		b.log.Warn().Str("command", inv.Command.Name).Msg("command has no handler")
		return
	}
	if err := inv.Command.Handler(b.ctx, inv); err != nil {
		b.log.Error().Err(err).Str("command", inv.Command.Name).Msg("error running command")
	}
}

func (b *Bot) reply(err error) {
	if err != nil {
		b.log.Warn().Err(err).Msg("failed to deliver response")
	}
}
