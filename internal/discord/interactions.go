package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/view"
)

// interactionResponder answers a slash command or component interaction.
type interactionResponder struct {
	s *discordgo.Session
	i *discordgo.Interaction
}

var _ command.Responder = interactionResponder{}

func (r interactionResponder) Respond(_ context.Context, v *view.View) error {
	return r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(v),
	})
}

func (r interactionResponder) RespondText(_ context.Context, text string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: text}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// messageResponder answers a prefix command by replying to its message.
// Messages cannot be ephemeral, so that flag is ignored.
type messageResponder struct {
	s *discordgo.Session
	m *discordgo.Message
}

var _ command.Responder = messageResponder{}

func (r messageResponder) Respond(_ context.Context, v *view.View) error {
	_, err := r.s.ChannelMessageSendComplex(r.m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{toEmbed(v)},
		Components: toComponents(v),
		Reference:  r.m.Reference(),
	})
	return err
}

func (r messageResponder) RespondText(_ context.Context, text string, _ bool) error {
	_, err := r.s.ChannelMessageSendReply(r.m.ChannelID, text, r.m.Reference())
	return err
}

// interactionUser returns the invoking user, in guilds and in DMs.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

func callerFrom(u *discordgo.User, guildID, channelID string) command.Caller {
	return command.Caller{
		UserID:    u.ID,
		Tag:       u.String(),
		AvatarURL: u.AvatarURL(""),
		GuildID:   guildID,
		ChannelID: channelID,
	}
}
