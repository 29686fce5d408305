package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/config"
)

// developerAuthorizer opens the developer category to configured developers
// and to anyone inside a configured test channel.
type developerAuthorizer struct {
	cfg *config.Config
}

func (a developerAuthorizer) Authorized(c command.Caller, t command.Type) bool {
	if t != command.TypeDeveloper {
		return true
	}
	return a.cfg.IsDeveloper(c.UserID) || a.cfg.IsDevChannel(c.ChannelID)
}

// sessionPermissions resolves channel permissions from the gateway state,
// falling back to the REST API.
type sessionPermissions struct {
	s *discordgo.Session
}

func (p sessionPermissions) UserPermissions(userID, channelID string) (int64, error) {
	if perms, err := p.s.State.UserChannelPermissions(userID, channelID); err == nil {
		return perms, nil
	}
	return p.s.UserChannelPermissions(userID, channelID)
}

func (p sessionPermissions) BotPermissions(channelID string) (int64, error) {
	return p.UserPermissions(p.s.State.User.ID, channelID)
}

// sessionProfile exposes the bot's own avatar once the session is ready.
type sessionProfile struct {
	s *discordgo.Session
}

func (p sessionProfile) AvatarURL() string {
	if p.s.State == nil || p.s.State.User == nil {
		return ""
	}
	return p.s.State.User.AvatarURL("")
}

func (p sessionProfile) ThumbnailURL() string {
	if p.s.State == nil || p.s.State.User == nil {
		return ""
	}
	return p.s.State.User.AvatarURL("2048")
}
