package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"website_url": "https://example.com",
		"lead_objective_type": "Demo Booking",
		"lead_objective_url": "https://example.com/demo",
		"pieces": 15,
		"provider": "gemini",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com", cfg.WebsiteURL)
	assert.Equal(t, "Demo Booking", cfg.LeadObjectiveType)
	assert.Equal(t, "https://example.com/demo", cfg.LeadObjectiveURL)
	assert.Equal(t, 15, cfg.Pieces)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"pieces too low", func(c *Config) { c.Pieces = 9 }, "pieces"},
		{"pieces too high", func(c *Config) { c.Pieces = 21 }, "pieces"},
		{"concurrency zero", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"concurrency too high", func(c *Config) { c.Concurrency = 7 }, "concurrency"},
		{"unknown provider", func(c *Config) { c.Provider = "mistral" }, "unknown provider"},
		{"scrape tokens", func(c *Config) { c.MaxScrapeTokens = 0 }, "max_scrape_tokens"},
		{"content tokens", func(c *Config) { c.MaxContentTokens = -1 }, "max_content_tokens"},
		{"temperature", func(c *Config) { c.GenerationTemperature = 2.5 }, "generation_temperature"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"missing file", func(c *Config) { c.Files = []string{"/nonexistent/deck.pptx"} }, "file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()
	defaults.APIKey = "default-key"

	partial := Config{
		WebsiteURL: "https://acme.test",
		Pieces:     12,
		Provider:   ProviderGemini,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "https://acme.test", merged.WebsiteURL)
	assert.Equal(t, 12, merged.Pieces)
	assert.Equal(t, ProviderGemini, merged.Provider)

	// Default values should fill in empty fields
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 4000, merged.MaxScrapeTokens)
	assert.Equal(t, 2000, merged.MaxContentTokens)
	assert.InDelta(t, 0.2, merged.ExtractionTemperature, 1e-9)
	assert.InDelta(t, 0.7, merged.GenerationTemperature, 1e-9)
	assert.Equal(t, 1, merged.Concurrency)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{WebsiteURL: "https://acme.test"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://acme.test", merged.WebsiteURL)
	assert.Zero(t, merged.Pieces)
}

func TestDurations(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout())
}

func TestResolvedModel(t *testing.T) {
	cfg := Config{Provider: ProviderGemini}
	assert.Equal(t, "gemini-2.5-flash", cfg.ResolvedModel())

	cfg = Config{Provider: ProviderOpenAI}
	assert.Equal(t, "gpt-4o-mini", cfg.ResolvedModel())

	cfg.Model = "gpt-4.1-mini"
	assert.Equal(t, "gpt-4.1-mini", cfg.ResolvedModel())
}
