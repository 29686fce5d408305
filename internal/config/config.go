// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment. A .env
// file in the working directory is loaded first when present.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`

	BotName    string `env:"BOT_NAME" envDefault:"HiZollo"`
	Prefix     string `env:"BOT_PREFIX" envDefault:"z!"`
	EmbedColor Color  `env:"EMBED_COLOR" envDefault:"#b01e66"`

	DeveloperIDs   []string `env:"DEVELOPER_IDS" envSeparator:","`
	DevChannelIDs  []string `env:"DEV_CHANNEL_IDS" envSeparator:","`
	GuildBlacklist []string `env:"GUILD_BLACKLIST" envSeparator:","`

	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	StoragePath       string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// ErrNoToken is returned when DISCORD_TOKEN is missing.
var ErrNoToken = errors.New("DISCORD_TOKEN is not set")

// Load reads .env files (missing ones are fine) and then the environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)
	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DiscordToken == "" {
		return nil, ErrNoToken
	}
	return &cfg, nil
}

// IsDeveloper reports whether userID belongs to a bot developer.
func (c *Config) IsDeveloper(userID string) bool {
	return userID != "" && slices.Contains(c.DeveloperIDs, userID)
}

// IsDevChannel reports whether channelID is one of the test channels.
func (c *Config) IsDevChannel(channelID string) bool {
	return channelID != "" && slices.Contains(c.DevChannelIDs, channelID)
}

// IsBlacklisted reports whether the bot should ignore guildID entirely.
func (c *Config) IsBlacklisted(guildID string) bool {
	return guildID != "" && slices.Contains(c.GuildBlacklist, guildID)
}

// Color is an embed color written as "#rrggbb", "0xrrggbb" or decimal.
type Color int

func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil || v < 0 || v > 0xffffff {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = Color(v)
	return nil
}
