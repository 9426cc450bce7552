package repository

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func NewConfigRepository(path string) (*Config, error) {
	viper.SetConfigFile(path)

	viper.AutomaticEnv()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("slack.mention", "none")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}

	var c Config
	err = viper.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	valid := validator.New()
	if err = valid.Struct(c); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &c, nil
}

type Config struct {
	ListenAddr string      `mapstructure:"listen_addr" validate:"required"`
	Slack      SlackConfig `mapstructure:"slack"`
}

type SlackConfig struct {
	// AlertChannel takes a channel name ("#ops-alerts") or a channel ID.
	AlertChannel string `mapstructure:"alert_channel"`
	Mention      string `mapstructure:"mention" validate:"omitempty,oneof=here channel none"`
}

// NotificationsEnabled reports whether an alert destination is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.Slack.AlertChannel != ""
}
