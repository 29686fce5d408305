package discord

import (
	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/keshon/hizollo/internal/view"
)

// toEmbed converts a view into a Discord embed.
func toEmbed(v *view.View) *discordgo.MessageEmbed {
	e := embed.NewEmbed().
		SetDescription(v.Description).
		SetColor(v.Color)

	if v.Author.Name != "" {
		e.SetAuthor(v.Author.Name, v.Author.IconURL)
	}
	if v.Thumbnail != "" {
		e.SetThumbnail(v.Thumbnail)
	}
	if v.Footer.Text != "" {
		e.SetFooter(v.Footer.Text, v.Footer.IconURL)
	}
	for _, f := range v.Fields {
		e.AddField(f.Name, f.Value)
		e.Fields[len(e.Fields)-1].Inline = f.Inline
	}
	return e.MessageEmbed
}

// toComponents converts the optional picker of a view into an action row.
func toComponents(v *view.View) []discordgo.MessageComponent {
	if v.Menu == nil || len(v.Menu.Options) == 0 {
		return nil
	}

	options := make([]discordgo.SelectMenuOption, len(v.Menu.Options))
	for i, o := range v.Menu.Options {
		options[i] = discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Description,
		}
		if o.Emoji != "" {
			options[i].Emoji = &discordgo.ComponentEmoji{Name: o.Emoji}
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    v.Menu.CustomID,
					Placeholder: v.Menu.Placeholder,
					Options:     options,
				},
			},
		},
	}
}

// responseData builds the interaction payload for a view.
func responseData(v *view.View) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{toEmbed(v)},
		Components: toComponents(v),
	}
	if v.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}
