package help

import (
	"fmt"
	"strings"

	"github.com/keshon/hizollo/internal/command"
)

// OptionToken renders an option as it is typed: [name] when required,
// <name> otherwise. A repeating option shows its first two elements.
func OptionToken(opt command.Option) string {
	pattern := "<" + opt.Name + ">"
	if opt.Required {
		pattern = "[" + opt.Name + "]"
	}
	if !opt.Repeat {
		return pattern
	}
	one := strings.ReplaceAll(pattern, command.RepeatPlaceholder, "1")
	two := strings.ReplaceAll(pattern, command.RepeatPlaceholder, "2")
	return one + " " + two + " ..."
}

// OptionTypeString is the display label of an option type. ParseAs wins
// over the platform type.
func OptionTypeString(opt command.Option) string {
	if opt.ParseAs != command.LogicalNone && int(opt.ParseAs) < len(logicalTypeNames) {
		return logicalTypeNames[opt.ParseAs]
	}
	return optionTypeNames[opt.Type]
}

// ChoiceString renders `label` or `label`/`value`.
func ChoiceString(ch command.Choice) string {
	value := fmt.Sprint(ch.Value)
	if ch.Name == value {
		return "`" + ch.Name + "`"
	}
	return "`" + ch.Name + "`/`" + value + "`"
}

// OptionsString renders the usage line followed by one block per option.
func OptionsString(opts []command.Option) string {
	tokens := make([]string, len(opts))
	for i, opt := range opts {
		tokens[i] = OptionToken(opt)
	}

	var sb strings.Builder
	sb.WriteString("`" + strings.Join(tokens, " ") + "`\n")
	for i, opt := range opts {
		sb.WriteString(" `" + tokens[i] + "`\n")
		sb.WriteString("　- 選項說明：" + opt.Description + "\n")
		sb.WriteString("　- 規範型別：" + OptionTypeString(opt) + "\n")
		if len(opt.Choices) > 0 {
			choices := make([]string, len(opt.Choices))
			for j, ch := range opt.Choices {
				choices[j] = ChoiceString(ch)
			}
			sb.WriteString("　- 規範選項：" + strings.Join(choices, "．") + "\n")
		}
	}
	return sb.String()
}

// CommandDescription renders the detail text of a command. Subcommands
// omit the name, long description and category lines.
func CommandDescription(cmd *command.Command, subcommand bool) string {
	var sb strings.Builder
	if !subcommand {
		sb.WriteString("`" + cmd.Name + "`\n" + cmd.Description + "\n")
		if cmd.ExtraDescription != "" {
			sb.WriteString(cmd.ExtraDescription + "\n")
		}
		sb.WriteString("\n")
	}
	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = "`" + a + "`"
		}
		sb.WriteString("** - 替代名稱：**" + strings.Join(aliases, ", ") + "\n")
	}
	if !subcommand && cmd.Type.Valid() {
		sb.WriteString("** - 分類位置：**" + CategoryName(cmd.Type) + "\n")
	}
	if len(cmd.Options) > 0 {
		sb.WriteString("** - 指令參數：**" + OptionsString(cmd.Options))
	}
	if cmd.Cooldown > 0 {
		sb.WriteString(fmt.Sprintf("** - 冷卻時間：**%d 秒\n", cmd.Cooldown))
	}
	return sb.String()
}
