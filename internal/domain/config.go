package domain

import "time"

type Config struct {
	LogLevel          string        `toml:"log_level" mapstructure:"log_level"`
	DatabaseDir       string        `toml:"database_dir" mapstructure:"database_dir"`
	LocalesDir        string        `toml:"locales_dir" mapstructure:"locales_dir"`
	DefaultLocale     string        `toml:"default_locale" mapstructure:"default_locale"`
	AnilistURL        string        `toml:"anilist_url" mapstructure:"anilist_url"`
	AnilistTimeout    time.Duration `toml:"anilist_timeout" mapstructure:"anilist_timeout"`
	AnilistRateLimit  int           `toml:"anilist_rate_limit" mapstructure:"anilist_rate_limit"`
	CacheCapacity     int           `toml:"cache_capacity" mapstructure:"cache_capacity"`
	DiscordWebhookURL string        `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
}
