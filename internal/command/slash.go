package command

import "github.com/bwmarrin/discordgo"

// SlashDefinition converts a top-level command to its application command.
// Developer commands are hidden from regular members.
func (c *Command) SlashDefinition() *discordgo.ApplicationCommand {
	return restrict(&discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        c.Name,
		Description: nonEmpty(c.Description, c.Name),
		Options:     slashOptions(c.Options),
	}, c.Type)
}

// SlashDefinition converts a group to one application command with a
// subcommand option per member.
func (g *Group) SlashDefinition() *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        g.Name(),
		Description: nonEmpty(g.Header.Description, g.Name()),
	}
	for _, sub := range g.order {
		def.Options = append(def.Options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        sub.Name,
			Description: nonEmpty(sub.Description, sub.Name),
			Options:     slashOptions(sub.Options),
		})
	}
	return restrict(def, g.Header.Type)
}

// restrict limits a definition to administrators outside of DMs when it
// belongs to the developer category. Permission 0 leaves it to admins and
// explicit overrides.
func restrict(def *discordgo.ApplicationCommand, t Type) *discordgo.ApplicationCommand {
	if t != TypeDeveloper {
		return def
	}
	var perms int64
	dm := false
	def.DefaultMemberPermissions = &perms
	def.DMPermission = &dm
	return def
}

// SlashDefinitions returns one definition per top-level entry.
func (r *Registry) SlashDefinitions() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*discordgo.ApplicationCommand, 0, len(r.order))
	for _, e := range r.order {
		if e.group != nil {
			defs = append(defs, e.group.SlashDefinition())
			continue
		}
		defs = append(defs, e.cmd.SlashDefinition())
	}
	return defs
}

func slashOptions(opts []Option) []*discordgo.ApplicationCommandOption {
	var out []*discordgo.ApplicationCommandOption
	for _, opt := range opts {
		if !opt.Repeat {
			out = append(out, slashOption(opt, opt.Name, opt.Required))
			continue
		}
		for i := 1; i <= MaxRepeat; i++ {
			out = append(out, slashOption(opt, opt.Indexed(i), opt.Required && i == 1))
		}
	}
	return out
}

func slashOption(opt Option, name string, required bool) *discordgo.ApplicationCommandOption {
	o := &discordgo.ApplicationCommandOption{
		Type:        opt.Type,
		Name:        name,
		Description: nonEmpty(opt.Description, name),
		Required:    required,
	}
	for _, ch := range opt.Choices {
		o.Choices = append(o.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  ch.Name,
			Value: ch.Value,
		})
	}
	return o
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
