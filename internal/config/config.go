// Package config handles application configuration using Viper.
// Viper merges YAML files, environment variables, and defaults in priority
// order. Configuration is loaded once into a struct and passed explicitly to
// every component — nothing reads ambient process state after startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dkruglov/newsimage/internal/model"
)

// Config is the root configuration struct. Nested structs organize related
// settings; `mapstructure` tags tell Viper how to map YAML/env keys to fields.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LLMConfig struct {
	// ProviderOrder controls which completion providers are tried and in what
	// order. First is primary, rest are fallbacks. OpenAI is always required;
	// Anthropic joins the order only when its key is configured.
	ProviderOrder []string        `mapstructure:"provider_order"`
	OpenAI        OpenAIConfig    `mapstructure:"openai"`
	Anthropic     AnthropicConfig `mapstructure:"anthropic"`
	RatePerMinute int             `mapstructure:"rate_per_minute"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SearchConfig struct {
	// Engine selects the image-search backend: "google" or "duckduckgo".
	Engine  string        `mapstructure:"engine"`
	Count   int           `mapstructure:"count"` // page size, Google only
	Google  GoogleConfig  `mapstructure:"google"`
	SerpAPI SerpAPIConfig `mapstructure:"serpapi"`
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
	CSEID  string `mapstructure:"cse_id"`
}

type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type FetchConfig struct {
	// MaxRetries bounds the retry loop; BaseDelay is doubled on each attempt.
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type AuditConfig struct {
	// Enabled turns on the SQLite model-call audit log. Off by default so a
	// plain CLI run touches no disk.
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

type AuthConfig struct {
	APIKeys   []string `mapstructure:"api_keys"`
	AdminKeys []string `mapstructure:"admin_keys"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from an optional YAML file and the environment.
// Validation is a separate step (Validate) so tests can construct partial
// configs without tripping startup checks.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("llm.provider_order", []string{"openai"})
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.rate_per_minute", 20)
	v.SetDefault("search.engine", "")
	v.SetDefault("search.count", 5)
	v.SetDefault("fetch.max_retries", 5)
	v.SetDefault("fetch.base_delay", time.Second)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.database_path", "./newsimage-audit.db")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// A file missing from the search path is fine, defaults plus env cover
	// everything. Any other read error, including a malformed file that was
	// found, is fatal.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// NEWSIMAGE_ prefix + nested keys: NEWSIMAGE_SEARCH_ENGINE=google.
	v.SetEnvPrefix("NEWSIMAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare variables predate the prefixed scheme and stay supported.
	// BindEnv takes the key followed by env names in priority order.
	_ = v.BindEnv("llm.openai.api_key", "NEWSIMAGE_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.anthropic.api_key", "NEWSIMAGE_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("search.engine", "NEWSIMAGE_SEARCH_ENGINE", "SEARCH_ENGINE")
	_ = v.BindEnv("search.google.api_key", "NEWSIMAGE_SEARCH_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("search.google.cse_id", "NEWSIMAGE_SEARCH_GOOGLE_CSE_ID", "GOOGLE_CSE_ID")
	_ = v.BindEnv("search.serpapi.api_key", "NEWSIMAGE_SEARCH_SERPAPI_API_KEY", "SERPAPI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every credential the selected configuration needs is
// present. It runs before any network or model call; a non-nil error is fatal
// for the whole run.
func (c *Config) Validate() error {
	if c.LLM.OpenAI.APIKey == "" {
		return errors.New("missing OPENAI_API_KEY")
	}

	if !model.ValidEngine(c.Search.Engine) {
		return fmt.Errorf("invalid SEARCH_ENGINE %q: use 'google' or 'duckduckgo'", c.Search.Engine)
	}
	switch model.Engine(c.Search.Engine) {
	case model.EngineGoogle:
		if c.Search.Google.APIKey == "" || c.Search.Google.CSEID == "" {
			return errors.New("missing GOOGLE_API_KEY or GOOGLE_CSE_ID")
		}
	case model.EngineDuckDuckGo:
		if c.Search.SerpAPI.APIKey == "" {
			return errors.New("missing SERPAPI_API_KEY for DuckDuckGo")
		}
	}

	for _, p := range c.LLM.ProviderOrder {
		switch p {
		case "openai":
		case "anthropic":
			if c.LLM.Anthropic.APIKey == "" {
				return errors.New("provider_order includes anthropic but no Anthropic key is configured")
			}
		default:
			return fmt.Errorf("unknown LLM provider %q in provider_order", p)
		}
	}

	return nil
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
