package help

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hizollo/internal/command"
)

var categoryNames = [...]string{
	command.TypeUtility:          "功能",
	command.TypeInformation:      "資訊",
	command.TypeFun:              "娛樂",
	command.TypeSinglePlayerGame: "單人遊戲",
	command.TypeMultiPlayerGame:  "多人遊戲",
	command.TypeContact:          "聯繫",
	command.TypeNetwork:          "聯絡網",
	command.TypeMiscellaneous:    "雜項",
	command.TypeSubcommandGroup:  "指令群",
	command.TypeDeveloper:        "開發者專用",
}

var categoryDescriptions = [...]string{
	command.TypeUtility:          "HiZollo 多少還是會一些有用的功能好嗎",
	command.TypeInformation:      "顯示 HiZollo 的相關資訊",
	command.TypeFun:              "適合在聊天室跟朋友玩樂",
	command.TypeSinglePlayerGame: "讓你在沒人的凌晨三點邊吃美味蟹堡邊玩遊戲",
	command.TypeMultiPlayerGame:  "跟伺服器上的夥伴一起玩遊戲",
	command.TypeContact:          "與 HiZollo 的開發者聯絡",
	command.TypeNetwork:          "查看 HiZollo 聯絡網的相關功能",
	command.TypeMiscellaneous:    "開發者懶得分類的指令",
	command.TypeSubcommandGroup:  "集合很多指令的指令",
	command.TypeDeveloper:        "開發者專用指令",
}

var optionTypeNames = map[discordgo.ApplicationCommandOptionType]string{
	discordgo.ApplicationCommandOptionAttachment:      "檔案",
	discordgo.ApplicationCommandOptionBoolean:         "布林值",
	discordgo.ApplicationCommandOptionChannel:         "頻道",
	discordgo.ApplicationCommandOptionInteger:         "整數",
	discordgo.ApplicationCommandOptionMentionable:     "使用者或身分組",
	discordgo.ApplicationCommandOptionNumber:          "數字",
	discordgo.ApplicationCommandOptionRole:            "身分組",
	discordgo.ApplicationCommandOptionString:          "字串",
	discordgo.ApplicationCommandOptionSubCommand:      "子指令",
	discordgo.ApplicationCommandOptionSubCommandGroup: "指令群",
	discordgo.ApplicationCommandOptionUser:            "使用者",
}

var logicalTypeNames = [...]string{
	command.LogicalNone:            "",
	command.LogicalAttachment:      "檔案",
	command.LogicalBoolean:         "布林值",
	command.LogicalChannel:         "頻道",
	command.LogicalEmoji:           "表情符號",
	command.LogicalInteger:         "整數",
	command.LogicalMember:          "伺服器成員",
	command.LogicalMentionable:     "使用者或身分組",
	command.LogicalNumber:          "數字",
	command.LogicalRole:            "身分組",
	command.LogicalString:          "字串",
	command.LogicalSubcommand:      "子指令",
	command.LogicalSubcommandGroup: "指令群",
	command.LogicalUser:            "使用者",
}

// CategoryName is the display label of a category.
func CategoryName(t command.Type) string {
	if !t.Valid() {
		return ""
	}
	return categoryNames[t]
}

// CategoryDescription is the one-line blurb shown for a category.
func CategoryDescription(t command.Type) string {
	if !t.Valid() {
		return ""
	}
	return categoryDescriptions[t]
}
