package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	Env                           string `mapstructure:"ENV"`
	LogLevel                      string `mapstructure:"LOG_LEVEL"`
	LogFormat                     string `mapstructure:"LOG_FORMAT"`
	Storage                       string `mapstructure:"STORAGE"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	Timezone                      string `mapstructure:"TIMEZONE"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	EnableMetrics                 bool   `mapstructure:"ENABLE_METRICS"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORAGE", StorageMemory)
	v.SetDefault("DATABASE_PATH", "canteens.db")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("ENABLE_METRICS", true)

	v.BindEnv("JWT_SECRET")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	switch config.Storage {
	case StorageMemory, StorageSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", config.Storage)
	}

	if _, err := config.Location(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Location resolves TIMEZONE, in which reservation dates and times are interpreted.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
