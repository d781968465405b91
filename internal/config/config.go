// Package config loads and validates the blaster service configuration from
// a YAML file and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// Hard limits shared with request validation.
const (
	MaxResults    = 20
	MaxQueries    = 5
	MaxCrawlPages = 3
	MaxTweets     = 50
)

// Config holds all configuration for the blaster service.
type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   logger.Config   `mapstructure:"logging"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string        `mapstructure:"name"`
	Version        string        `mapstructure:"version"`
	Port           int           `mapstructure:"port"`
	Debug          bool          `mapstructure:"debug"`
	MaxQueryLength int           `mapstructure:"max_query_length"`
	SearchTimeout  time.Duration `mapstructure:"search_timeout"`
}

// ProvidersConfig holds search provider endpoints and credentials.
// Endpoint URLs are overridable so tests can point providers at local servers.
type ProvidersConfig struct {
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DuckDuckGoURL  string        `mapstructure:"duckduckgo_url"`
	InstantAPIURL  string        `mapstructure:"instant_api_url"`
	UnsplashURL    string        `mapstructure:"unsplash_url"`
	UnsplashKey    string        `mapstructure:"unsplash_key"`
	PexelsURL      string        `mapstructure:"pexels_url"`
	PexelsKey      string        `mapstructure:"pexels_key"`
	YouTubeURL     string        `mapstructure:"youtube_url"`
	NewsURL        string        `mapstructure:"news_url"`
	TwitterURL     string        `mapstructure:"twitter_url"`
	TwitterBearer  string        `mapstructure:"twitter_bearer"`
	DefaultTweets  int           `mapstructure:"default_tweets"`
}

// CrawlerConfig holds settings for the result-page crawler.
type CrawlerConfig struct {
	Parallelism    int           `mapstructure:"parallelism"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int           `mapstructure:"max_body_bytes"`
	MaxTextChars   int           `mapstructure:"max_text_chars"`
}

// LLMConfig holds settings for the answer-synthesis client.
type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds optional Postgres settings for search history.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SchedulerConfig holds the cron schedule for periodic tweet-stats export.
type SchedulerConfig struct {
	Spec      string `mapstructure:"spec"`
	Query     string `mapstructure:"query"`
	Format    string `mapstructure:"format"`
	OutputDir string `mapstructure:"output_dir"`
}

// CORSConfig holds CORS settings for the HTTP API.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Init configures viper: config file location, env overrides, and defaults.
// Call once from the root command before Load.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvPrefix("BLASTER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Config file is optional; defaults and env vars cover everything.
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

// Load unmarshals the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values with viper. Keys that are usually set
// only through the environment (credentials) get empty defaults so Unmarshal
// picks their env values up.
func setDefaults() {
	viper.SetDefault("service.name", "blaster")
	viper.SetDefault("service.version", "1.0.0")
	viper.SetDefault("service.port", 8080)
	viper.SetDefault("service.debug", false)
	viper.SetDefault("service.max_query_length", 500)
	viper.SetDefault("service.search_timeout", "15s")

	viper.SetDefault("providers.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("providers.request_timeout", "10s")
	viper.SetDefault("providers.duckduckgo_url", "https://html.duckduckgo.com/html/")
	viper.SetDefault("providers.instant_api_url", "https://api.duckduckgo.com/")
	viper.SetDefault("providers.unsplash_url", "https://api.unsplash.com")
	viper.SetDefault("providers.unsplash_key", "")
	viper.SetDefault("providers.pexels_url", "https://api.pexels.com")
	viper.SetDefault("providers.pexels_key", "")
	viper.SetDefault("providers.youtube_url", "https://www.youtube.com")
	viper.SetDefault("providers.news_url", "https://news.google.com")
	viper.SetDefault("providers.twitter_url", "https://api.twitter.com")
	viper.SetDefault("providers.twitter_bearer", "")
	viper.SetDefault("providers.default_tweets", 20)

	viper.SetDefault("crawler.parallelism", 3)
	viper.SetDefault("crawler.request_timeout", "10s")
	viper.SetDefault("crawler.max_body_bytes", 2*1024*1024)
	viper.SetDefault("crawler.max_text_chars", 8000)

	viper.SetDefault("llm.base_url", "https://api.deepseek.com/v1")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.model", "deepseek-chat")
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.timeout", "60s")

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "blaster")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "blaster")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("scheduler.spec", "@hourly")
	viper.SetDefault("scheduler.query", "")
	viper.SetDefault("scheduler.format", "json")
	viper.SetDefault("scheduler.output_dir", ".")

	viper.SetDefault("logging.level", "info")

	viper.SetDefault("cors.enabled", true)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization"})
	viper.SetDefault("cors.max_age", 300)
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return &ValidationError{Field: "service.port", Message: fmt.Sprintf("invalid port: %d", c.Service.Port)}
	}
	if c.Service.MaxQueryLength < 1 {
		return &ValidationError{Field: "service.max_query_length", Message: "must be greater than 0"}
	}
	if c.Service.SearchTimeout <= 0 {
		return &ValidationError{Field: "service.search_timeout", Message: "must be greater than 0"}
	}
	if c.Crawler.Parallelism < 1 {
		return &ValidationError{Field: "crawler.parallelism", Message: "must be greater than 0"}
	}
	if c.Crawler.MaxBodyBytes < 1 {
		return &ValidationError{Field: "crawler.max_body_bytes", Message: "must be greater than 0"}
	}
	if c.Providers.DefaultTweets < 1 || c.Providers.DefaultTweets > MaxTweets {
		return &ValidationError{
			Field:   "providers.default_tweets",
			Message: fmt.Sprintf("must be between 1 and %d", MaxTweets),
		}
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			return &ValidationError{Field: "database.host", Message: "is required when database is enabled"}
		}
		if c.Database.DBName == "" {
			return &ValidationError{Field: "database.dbname", Message: "is required when database is enabled"}
		}
	}
	if c.Scheduler.Format != "json" && c.Scheduler.Format != "csv" {
		return &ValidationError{Field: "scheduler.format", Message: "must be json or csv"}
	}
	return nil
}
