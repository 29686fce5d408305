// Package command holds the command model and the registry that resolves
// names, aliases and subcommand groups to commands.
package command

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Type is the category a command is listed under. Declaration order is the
// order categories are displayed in.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeUtility
	TypeInformation
	TypeFun
	TypeSinglePlayerGame
	TypeMultiPlayerGame
	TypeContact
	TypeNetwork
	TypeMiscellaneous
	TypeSubcommandGroup
	TypeDeveloper
)

var typeKeys = [...]string{
	TypeUnknown:          "",
	TypeUtility:          "utility",
	TypeInformation:      "information",
	TypeFun:              "fun",
	TypeSinglePlayerGame: "single-player-game",
	TypeMultiPlayerGame:  "multi-player-game",
	TypeContact:          "contact",
	TypeNetwork:          "network",
	TypeMiscellaneous:    "miscellaneous",
	TypeSubcommandGroup:  "subcommand-group",
	TypeDeveloper:        "developer",
}

// Types lists every valid category in display order.
func Types() []Type {
	return []Type{
		TypeUtility,
		TypeInformation,
		TypeFun,
		TypeSinglePlayerGame,
		TypeMultiPlayerGame,
		TypeContact,
		TypeNetwork,
		TypeMiscellaneous,
		TypeSubcommandGroup,
		TypeDeveloper,
	}
}

// Key is the stable identifier used as a menu value.
func (t Type) Key() string {
	if int(t) >= len(typeKeys) {
		return ""
	}
	return typeKeys[t]
}

func (t Type) String() string { return t.Key() }

// Valid reports whether t is one of the declared categories.
func (t Type) Valid() bool {
	return t > TypeUnknown && t <= TypeDeveloper
}

// ParseType maps a category key back to its Type.
func ParseType(key string) (Type, bool) {
	for _, t := range Types() {
		if typeKeys[t] == key {
			return t, true
		}
	}
	return TypeUnknown, false
}

// LogicalType overrides the platform option type for help display only.
type LogicalType uint8

const (
	LogicalNone LogicalType = iota
	LogicalString
	LogicalInteger
	LogicalBoolean
	LogicalUser
	LogicalChannel
	LogicalRole
	LogicalMentionable
	LogicalNumber
	LogicalAttachment
	LogicalSubcommand
	LogicalSubcommandGroup
	LogicalEmoji
	LogicalMember
)

// RepeatPlaceholder is replaced by the element index of a repeating option.
const RepeatPlaceholder = "%i"

// MaxRepeat is how many numbered options a repeating option expands to in a
// slash command definition.
const MaxRepeat = 10

// Choice constrains an option to a fixed value.
type Choice struct {
	Name  string
	Value any
}

// Option is one declared parameter of a command.
type Option struct {
	Name        string
	Description string
	Type        discordgo.ApplicationCommandOptionType
	ParseAs     LogicalType
	Required    bool
	Repeat      bool
	Choices     []Choice
}

// Indexed returns the option name with the repeat placeholder set to i.
func (o Option) Indexed(i int) string {
	return strings.ReplaceAll(o.Name, RepeatPlaceholder, strconv.Itoa(i))
}

// Permissions are evaluated by the transport, never by the registry.
type Permissions struct {
	Bot  []int64
	User []int64
}

// Command is an invocable action. It is immutable once registered.
type Command struct {
	Name             string
	Aliases          []string
	Type             Type
	Description      string
	ExtraDescription string
	Options          []Option
	Cooldown         int
	Permissions      *Permissions
	Handler          Handler
}

// Validate checks the option schema. A repeating option must be the last
// one and option names must be unique within the command.
func (c *Command) Validate() error {
	if c.Name == "" {
		return &MalformedOptionError{Reason: "empty command name"}
	}
	if c.Cooldown < 0 {
		return &MalformedOptionError{Command: c.Name, Reason: "negative cooldown"}
	}

	seen := make(map[string]struct{}, len(c.Options))
	for i, opt := range c.Options {
		if opt.Name == "" {
			return &MalformedOptionError{Command: c.Name, Reason: "empty option name"}
		}
		if _, dup := seen[opt.Name]; dup {
			return &MalformedOptionError{Command: c.Name, Option: opt.Name, Reason: "duplicate option name"}
		}
		seen[opt.Name] = struct{}{}

		if opt.Repeat && i != len(c.Options)-1 {
			return &MalformedOptionError{Command: c.Name, Option: opt.Name, Reason: "repeat option must be last"}
		}
	}
	return nil
}

// Keys returns the name followed by every alias.
func (c *Command) Keys() []string {
	keys := make([]string, 0, 1+len(c.Aliases))
	keys = append(keys, c.Name)
	return append(keys, c.Aliases...)
}
