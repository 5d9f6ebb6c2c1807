// Package config loads tlpad settings from flags, environment, .env and the
// config file through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/tlpad/internal/language"
	"github.com/valpere/tlpad/internal/translator"
)

const EnvPrefix = "TLPAD"

const (
	ServiceMyMemory = "mymemory"
	ServiceGoogle   = "google"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Service        string        `mapstructure:"service"`
	SourceLang     string        `mapstructure:"source_lang"`
	TargetLang     string        `mapstructure:"target_lang"`
	Locale         string        `mapstructure:"locale"`
	MaxChars       int           `mapstructure:"max_chars"`
	RevealInterval time.Duration `mapstructure:"reveal_interval"`
	StatusWindow   time.Duration `mapstructure:"status_window"`
	Timeout        time.Duration `mapstructure:"timeout"`
	DetectSource   bool          `mapstructure:"detect_source"`

	MyMemory MyMemoryConfig `mapstructure:"mymemory"`
	Google   GoogleConfig   `mapstructure:"google"`
	Cache    CacheConfig    `mapstructure:"cache"`
	History  HistoryConfig  `mapstructure:"history"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Log      LogConfig      `mapstructure:"log"`
}

type MyMemoryConfig struct {
	Email   string `mapstructure:"email"`
	BaseURL string `mapstructure:"base_url"`
}

type GoogleConfig struct {
	Credentials string `mapstructure:"credentials"`
	ProjectID   string `mapstructure:"project_id"`
}

type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type SpeechConfig struct {
	Command string `mapstructure:"command"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ServiceConfig returns the per-call settings for the selected service.
func (c *Config) ServiceConfig() translator.ServiceConfig {
	cfg := translator.ServiceConfig{Timeout: c.Timeout}
	switch c.Service {
	case ServiceGoogle:
		cfg.Credentials = c.Google.Credentials
		cfg.ProjectID = c.Google.ProjectID
	case ServiceMyMemory:
		cfg.BaseURL = c.MyMemory.BaseURL
	}
	return cfg
}

// DefaultHistoryPath is <user cache dir>/tlpad/history.db, or a path in the
// temp dir when the platform has no cache dir.
func DefaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tlpad", "history.db")
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("service", ServiceMyMemory)
	v.SetDefault("source_lang", language.Auto)
	v.SetDefault("target_lang", "es")
	v.SetDefault("locale", "en")
	v.SetDefault("max_chars", 5000)
	v.SetDefault("reveal_interval", 20*time.Millisecond)
	v.SetDefault("status_window", 3*time.Second)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("detect_source", false)

	v.SetDefault("mymemory.email", "")
	v.SetDefault("mymemory.base_url", translator.DefaultMyMemoryURL)

	v.SetDefault("google.credentials", "")
	v.SetDefault("google.project_id", "")

	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.key_prefix", "tlpad:")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", DefaultHistoryPath())

	v.SetDefault("speech.command", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
}

// Init prepares v: defaults, environment binding and the config file. An
// explicit cfgFile must exist; the default locations are optional.
func Init(v *viper.Viper, cfgFile string) error {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName(".tlpad")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigName("tlpad")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Service = strings.ToLower(strings.TrimSpace(c.Service))
	switch c.Service {
	case ServiceMyMemory, ServiceGoogle:
	default:
		return fmt.Errorf("config: unknown service %q (want %s or %s)", c.Service, ServiceMyMemory, ServiceGoogle)
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case "", CacheNone:
		c.Cache.Backend = CacheNone
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}

	if err := language.Validate(c.SourceLang); err != nil {
		return fmt.Errorf("config: source_lang: %w", err)
	}
	if err := language.ValidateTarget(c.TargetLang); err != nil {
		return fmt.Errorf("config: target_lang: %w", err)
	}

	if c.MaxChars <= 0 {
		return fmt.Errorf("config: max_chars must be positive, got %d", c.MaxChars)
	}
	if c.StatusWindow < 0 {
		return fmt.Errorf("config: status_window must not be negative, got %s", c.StatusWindow)
	}
	if c.RevealInterval < 0 {
		c.RevealInterval = 0
	}

	if c.History.Enabled && c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}

	return nil
}
