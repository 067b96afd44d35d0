package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	TelegramSession    string   `koanf:"telegram_session"`
	TelegramAPIURL     string   `koanf:"telegram_api_url"`
	TelegramPreviewURL string   `koanf:"telegram_preview_url"`
	IngestURL          string   `koanf:"supabase_ingest_url"`
	IngestToken        string   `koanf:"supabase_anon_key"`
	TargetChannels     []string `koanf:"-"`
	Port               string   `koanf:"port"`
	PollInterval       int      `koanf:"poll_interval"`
	PollLimit          int      `koanf:"poll_limit"`
	PollConcurrency    int      `koanf:"poll_concurrency"`
	PreviewRate        int      `koanf:"preview_rate"`
	DedupCapacity      int      `koanf:"dedup_capacity"`
	DedupEvict         int      `koanf:"dedup_evict"`
	RequestTimeout     int      `koanf:"request_timeout"`
	RecentOffers       int      `koanf:"recent_offers"`
	AppEnv             AppEnv   `koanf:"app_env"`
}

var defaults = map[string]any{
	"telegram_api_url":     "https://api.telegram.org",
	"telegram_preview_url": "https://t.me/s",
	"port":                 "3000",
	"poll_interval":        30,
	"poll_limit":           3,
	"poll_concurrency":     4,
	"preview_rate":         2,
	"dedup_capacity":       5000,
	"dedup_evict":          1000,
	"request_timeout":      5,
	"recent_offers":        50,
	"app_env":              "production",
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	// TELEGRAM_SESSION -> telegram_session
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) || k.String(key) == "" {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Env vars deliver a comma-separated string, config files a list
	if channels := k.Get("target_channels"); channels != nil {
		switch v := channels.(type) {
		case string:
			cfg.TargetChannels = ParseChannelNames(v)
		case []interface{}:
			cfg.TargetChannels = ParseChannelNames(strings.Join(lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
				s, ok := item.(string)
				return s, ok
			}), ","))
		}
	}

	if env, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = env
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if strings.TrimSpace(cfg.TelegramSession) == "" {
		return nil, errors.ErrMissingSession
	}

	return &cfg, nil
}

// ParseChannelNames splits a comma-separated channel list, trimming entries
// and dropping empty ones and repeats.
func ParseChannelNames(s string) []string {
	parts := lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
	return lo.Uniq(parts)
}

func (c *Config) PollEvery() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Verbose reports whether debug logging should be enabled.
func (c *Config) Verbose() bool {
	return c.AppEnv == AppEnvLocal || c.AppEnv == AppEnvDevelopment
}
