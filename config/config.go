package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for one watcher run
type Config struct {
	Source    SourceConfig
	Filter    FilterConfig
	Telegram  TelegramConfig
	Discord   DiscordConfig
	RateLimit RateLimitConfig
}

// SourceConfig holds the product-listing page settings
type SourceConfig struct {
	ProductURL string        `mapstructure:"product_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
}

// FilterConfig holds the selection criteria
type FilterConfig struct {
	Grade        string `mapstructure:"grade"`
	Availability string `mapstructure:"availability"`
	// TargetPrice is compared against the listing's sale-price string exactly
	// as emitted; no numeric coercion
	TargetPrice   string `mapstructure:"target_price"`
	MentionHandle string `mapstructure:"mention_handle"`
}

// TelegramConfig holds the chat adapter settings
type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token"`
	ChatID     string `mapstructure:"chat_id"`
	APIBaseURL string `mapstructure:"api_base_url"`
	SendPhotos bool   `mapstructure:"send_photos"`
}

// DiscordConfig holds the rich-card adapter settings
type DiscordConfig struct {
	WebhookURL   string `mapstructure:"webhook_url"`
	UseThumbnail bool   `mapstructure:"use_thumbnail"`
	EmbedColor   int    `mapstructure:"embed_color"`
	FooterText   string `mapstructure:"footer_text"`
}

// RateLimitConfig holds per-adapter outbound rate limits (messages per second)
type RateLimitConfig struct {
	Telegram float64 `mapstructure:"telegram"`
	Discord  float64 `mapstructure:"discord"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gradewatch/")

	// Environment variable settings
	v.SetEnvPrefix("GRADEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Required keys default to ""
// so AutomaticEnv can resolve them without an explicit BindEnv per key.
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.product_url", "")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.user_agent", "Mozilla/5.0")

	// Filter defaults
	v.SetDefault("filter.grade", "Superb")
	v.SetDefault("filter.availability", "https://schema.org/InStock")
	v.SetDefault("filter.target_price", "")
	v.SetDefault("filter.mention_handle", "")

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.api_base_url", "https://api.telegram.org")
	v.SetDefault("telegram.send_photos", true)

	// Discord defaults
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("discord.use_thumbnail", true)
	v.SetDefault("discord.embed_color", 4245430)
	v.SetDefault("discord.footer_text", "Cashify")

	// Rate limit defaults
	v.SetDefault("ratelimit.telegram", 25.0)
	v.SetDefault("ratelimit.discord", 5.0)
}

// validate validates the configuration; it runs before any network call so a
// misconfigured run never reaches the listing or a webhook
func validate(config *Config) error {
	if config.Source.ProductURL == "" {
		return fmt.Errorf("product URL is required (set GRADEWATCH_SOURCE_PRODUCT_URL)")
	}

	if config.Telegram.BotToken == "" {
		return fmt.Errorf("Telegram bot token is required (set GRADEWATCH_TELEGRAM_BOT_TOKEN)")
	}
	if config.Telegram.ChatID == "" {
		return fmt.Errorf("Telegram chat id is required (set GRADEWATCH_TELEGRAM_CHAT_ID)")
	}

	if config.Discord.WebhookURL == "" {
		return fmt.Errorf("Discord webhook URL is required (set GRADEWATCH_DISCORD_WEBHOOK_URL)")
	}

	if config.Filter.Grade == "" {
		return fmt.Errorf("filter grade must not be empty (set GRADEWATCH_FILTER_GRADE)")
	}
	if config.Filter.Availability == "" {
		return fmt.Errorf("filter availability must not be empty (set GRADEWATCH_FILTER_AVAILABILITY)")
	}

	if config.Filter.TargetPrice != "" && config.Filter.MentionHandle == "" {
		return fmt.Errorf("mention handle is required when a target price is set (set GRADEWATCH_FILTER_MENTION_HANDLE)")
	}

	if config.Source.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got: %s", config.Source.Timeout)
	}

	return nil
}
