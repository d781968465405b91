package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, config.Init(""))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "blaster", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 15*time.Second, cfg.Service.SearchTimeout)
	assert.Equal(t, "https://html.duckduckgo.com/html/", cfg.Providers.DuckDuckGoURL)
	assert.Equal(t, 10*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, 3, cfg.Crawler.Parallelism)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "@hourly", cfg.Scheduler.Spec)
	assert.Equal(t, "json", cfg.Scheduler.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.CORS.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("BLASTER_SERVICE_PORT", "9090")
	t.Setenv("BLASTER_LLM_API_KEY", "test-key")
	require.NoError(t, config.Init(""))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *config.Config {
		return &config.Config{
			Service: config.ServiceConfig{
				Port:           8080,
				MaxQueryLength: 500,
				SearchTimeout:  15 * time.Second,
			},
			Providers: config.ProvidersConfig{DefaultTweets: 20},
			Crawler:   config.CrawlerConfig{Parallelism: 3, MaxBodyBytes: 1024},
			Scheduler: config.SchedulerConfig{Format: "json"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{
			name:   "port out of range",
			mutate: func(c *config.Config) { c.Service.Port = 0 },
			field:  "service.port",
		},
		{
			name:   "zero search timeout",
			mutate: func(c *config.Config) { c.Service.SearchTimeout = 0 },
			field:  "service.search_timeout",
		},
		{
			name:   "zero parallelism",
			mutate: func(c *config.Config) { c.Crawler.Parallelism = 0 },
			field:  "crawler.parallelism",
		},
		{
			name:   "default tweets over limit",
			mutate: func(c *config.Config) { c.Providers.DefaultTweets = config.MaxTweets + 1 },
			field:  "providers.default_tweets",
		},
		{
			name: "database enabled without host",
			mutate: func(c *config.Config) {
				c.Database.Enabled = true
				c.Database.DBName = "blaster"
			},
			field: "database.host",
		},
		{
			name:   "bad scheduler format",
			mutate: func(c *config.Config) { c.Scheduler.Format = "xml" },
			field:  "scheduler.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var vErr *config.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
