package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Site      SiteConfig      `yaml:"site"`
	Resend    ResendConfig    `yaml:"resend"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	GitHub    GitHubConfig    `yaml:"github"`
	Secrets   SecretsConfig   `yaml:"secrets"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port    string `yaml:"port"`     // PORT, default "8080"
	GinMode string `yaml:"gin_mode"` // GIN_MODE, default "release"
}

// SiteConfig holds settings shared by the rendered pages
type SiteConfig struct {
	URL        string `yaml:"url"`         // SITE_URL, default "https://www.decocms.com"
	Name       string `yaml:"name"`        // default "deco"
	GitHubRepo string `yaml:"github_repo"` // GITHUB_REPO, default "deco-cx/deco"
}

// ResendConfig holds the contact CRM credentials
type ResendConfig struct {
	APIKey     string `yaml:"-"`           // RESEND_API_KEY only, never read from file
	AudienceID string `yaml:"audience_id"` // RESEND_AUDIENCE_ID
	BaseURL    string `yaml:"base_url"`    // default "https://api.resend.com"
}

// AnalyticsConfig holds the PostHog settings. The key itself is resolved
// per request through the secret named by KeySecret.
type AnalyticsConfig struct {
	KeySecret string `yaml:"key_secret"` // POSTHOG_KEY_SECRET, default "POSTHOG_KEY"
	Host      string `yaml:"host"`       // POSTHOG_HOST, default "https://us.i.posthog.com"
}

// GitHubConfig holds settings for the star counter island
type GitHubConfig struct {
	BaseURL  string        `yaml:"base_url"`  // default "https://api.github.com"
	CacheTTL time.Duration `yaml:"cache_ttl"` // default 10m
	Timeout  time.Duration `yaml:"timeout"`   // default 5s, bounds the island fragment request
}

// SecretsConfig holds where secret references are resolved from
type SecretsConfig struct {
	Dir string `yaml:"dir"` // SECRETS_DIR, default "" (environment only)
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `yaml:"level"`       // LOG_LEVEL, default "info"
	Development bool   `yaml:"development"` // default false
}

// RateLimitConfig bounds contact submissions per client
type RateLimitConfig struct {
	ContactsPerMinute int `yaml:"contacts_per_minute"` // default 6
	Burst             int `yaml:"burst"`               // default 3
}

// DefaultConfig returns a Config with every default applied
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		Site: SiteConfig{
			URL:        "https://www.decocms.com",
			Name:       "deco",
			GitHubRepo: "deco-cx/deco",
		},
		Resend: ResendConfig{
			BaseURL: "https://api.resend.com",
		},
		Analytics: AnalyticsConfig{
			KeySecret: "POSTHOG_KEY",
			Host:      "https://us.i.posthog.com",
		},
		GitHub: GitHubConfig{
			BaseURL:  "https://api.github.com",
			CacheTTL: 10 * time.Minute,
			Timeout:  5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			ContactsPerMinute: 6,
			Burst:             3,
		},
	}
}

// LoadConfig reads configuration from defaults, then the optional YAML file at
// path, then environment variables. An empty path or a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// Empty or comment-only files decode to EOF
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	setIfPresent(&c.Server.Port, "PORT")
	setIfPresent(&c.Server.GinMode, "GIN_MODE")
	setIfPresent(&c.Site.URL, "SITE_URL")
	setIfPresent(&c.Site.GitHubRepo, "GITHUB_REPO")
	setIfPresent(&c.Resend.APIKey, "RESEND_API_KEY")
	setIfPresent(&c.Resend.AudienceID, "RESEND_AUDIENCE_ID")
	setIfPresent(&c.Analytics.KeySecret, "POSTHOG_KEY_SECRET")
	setIfPresent(&c.Analytics.Host, "POSTHOG_HOST")
	setIfPresent(&c.Secrets.Dir, "SECRETS_DIR")
	setIfPresent(&c.Log.Level, "LOG_LEVEL")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports the first malformed setting
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("config: invalid port %q", c.Server.Port)
	}

	for name, raw := range map[string]string{
		"site.url":        c.Site.URL,
		"resend.base_url": c.Resend.BaseURL,
		"analytics.host":  c.Analytics.Host,
		"github.base_url": c.GitHub.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: invalid %s %q", name, raw)
		}
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: invalid gin mode %q", c.Server.GinMode)
	}

	if c.RateLimit.ContactsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("config: rate limit must be positive, got %d/min burst %d",
			c.RateLimit.ContactsPerMinute, c.RateLimit.Burst)
	}

	if c.GitHub.CacheTTL < 0 || c.GitHub.Timeout <= 0 {
		return fmt.Errorf("config: invalid github cache_ttl %v or timeout %v", c.GitHub.CacheTTL, c.GitHub.Timeout)
	}

	return nil
}
