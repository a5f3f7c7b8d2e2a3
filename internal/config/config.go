package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/varoOP/shinkrobot/internal/cache"
	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/internal/logger"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("database_dir", ".")
	v.SetDefault("locales_dir", "")
	v.SetDefault("default_locale", "en")
	v.SetDefault("anilist_url", anilist.DefaultEndpoint)
	v.SetDefault("anilist_timeout", anilist.DefaultTimeout)
	v.SetDefault("anilist_rate_limit", anilist.DefaultRateLimit)
	v.SetDefault("cache_capacity", cache.DefaultCapacity)
	v.SetDefault("discord_webhook_url", "")
}

// Load loads configuration from multiple sources:
// 1. Config file (config.toml, optional)
// 2. Environment variables (SHINKROBOT_*)
// 3. Flags bound by the CLI
func Load() (*domain.Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v
func LoadFrom(v *viper.Viper) (*domain.Config, error) {
	SetDefaults(v)

	cfg := &domain.Config{
		LogLevel:          v.GetString("log_level"),
		DatabaseDir:       v.GetString("database_dir"),
		LocalesDir:        v.GetString("locales_dir"),
		DefaultLocale:     v.GetString("default_locale"),
		AnilistURL:        v.GetString("anilist_url"),
		AnilistTimeout:    v.GetDuration("anilist_timeout"),
		AnilistRateLimit:  v.GetInt("anilist_rate_limit"),
		CacheCapacity:     v.GetInt("cache_capacity"),
		DiscordWebhookURL: v.GetString("discord_webhook_url"),
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level: %s (must be one of trace, debug, info, warn, error)", cfg.LogLevel)
	}

	if cfg.DefaultLocale == "" {
		return nil, fmt.Errorf("default_locale is required (set via config.toml or SHINKROBOT_DEFAULT_LOCALE environment variable)")
	}

	if cfg.AnilistURL == "" {
		return nil, fmt.Errorf("anilist_url is required (set via config.toml or SHINKROBOT_ANILIST_URL environment variable)")
	}

	if cfg.AnilistTimeout <= 0 {
		cfg.AnilistTimeout = anilist.DefaultTimeout
	} else if cfg.AnilistTimeout < time.Second {
		return nil, fmt.Errorf("invalid anilist_timeout: %s (must be at least 1s)", cfg.AnilistTimeout)
	}

	if cfg.AnilistRateLimit < 0 {
		return nil, fmt.Errorf("invalid anilist_rate_limit: %d (must be 0 for unlimited or a positive number of requests per minute)", cfg.AnilistRateLimit)
	}

	if cfg.CacheCapacity < 1 {
		return nil, fmt.Errorf("invalid cache_capacity: %d (must be at least 1)", cfg.CacheCapacity)
	}

	return cfg, nil
}
