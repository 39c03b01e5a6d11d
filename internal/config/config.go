// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Supported model providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Piece count bounds for email and per-objective social batches.
const (
	MinPieces = 10
	MaxPieces = 20
)

// MaxConcurrency caps the generator fan-out; there are only six generators.
const MaxConcurrency = 6

// Config represents the run configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Campaign inputs
	WebsiteURL           string   `json:"website_url,omitempty"`            // Client website to scrape
	LeadObjectiveType    string   `json:"lead_objective_type,omitempty"`    // "Demo Booking" or "Sales Meeting"
	LeadObjectiveURL     string   `json:"lead_objective_url,omitempty"`     // Destination for the primary objective
	DownloadableAssetURL string   `json:"downloadable_asset_url,omitempty"` // Optional whitepaper or similar
	Files                []string `json:"files,omitempty"`                  // PDF/PPTX documents to ingest
	Pieces               int      `json:"pieces,omitempty"`                 // Emails, and ads per objective
	OutputDir            string   `json:"output_dir,omitempty"`             // Where the workbook is written

	// Model
	Provider              string  `json:"provider,omitempty"`               // "openai" or "gemini"
	Model                 string  `json:"model,omitempty"`                  // Provider model name
	APIKey                string  `json:"api_key,omitempty"`                // Provider API key
	MaxScrapeTokens       int     `json:"max_scrape_tokens,omitempty"`      // Token ceiling for profile extraction
	MaxContentTokens      int     `json:"max_content_tokens,omitempty"`     // Token ceiling for content generation
	ExtractionTemperature float64 `json:"extraction_temperature,omitempty"` // Sampling temperature for extraction
	GenerationTemperature float64 `json:"generation_temperature,omitempty"` // Sampling temperature for copy

	// Limits
	FetchTimeoutSeconds   int `json:"fetch_timeout_seconds,omitempty"`   // Website fetch timeout
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"` // Per model call timeout
	RequestsPerMinute     int `json:"requests_per_minute,omitempty"`     // Shared model call budget
	Concurrency           int `json:"concurrency,omitempty"`             // Generators run at once

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Render JS-heavy sites with headless Chrome
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	WriteJSON   bool   `json:"write_json,omitempty"`   // Also write the raw GenerationResult JSON
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history
	LogLevel    string `json:"log_level,omitempty"`    // debug, info, warn, error
	LogFormat   string `json:"log_format,omitempty"`   // json or console
	MetricsFile string `json:"metrics_file,omitempty"` // Prometheus textfile output path
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Pieces:                MinPieces,
		OutputDir:             ".",
		Provider:              ProviderOpenAI,
		MaxScrapeTokens:       4000,
		MaxContentTokens:      2000,
		ExtractionTemperature: 0.2,
		GenerationTemperature: 0.7,
		FetchTimeoutSeconds:   10,
		RequestTimeoutSeconds: 120,
		RequestsPerMinute:     60,
		Concurrency:           1,
		LogLevel:              "info",
		LogFormat:             "console",
	}
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash"
	}
	return "gpt-4o-mini"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required campaign inputs are checked by the CLI and CampaignGoals validation.
func (c *Config) Validate() error {
	if c.Pieces < MinPieces || c.Pieces > MaxPieces {
		return fmt.Errorf("config error: 'pieces' must be between %d and %d, got %d", MinPieces, MaxPieces, c.Pieces)
	}
	if c.Concurrency < 1 || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("config error: 'concurrency' must be between 1 and %d, got %d", MaxConcurrency, c.Concurrency)
	}
	if c.Provider != ProviderOpenAI && c.Provider != ProviderGemini {
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}
	if c.MaxScrapeTokens <= 0 {
		return fmt.Errorf("config error: 'max_scrape_tokens' must be positive")
	}
	if c.MaxContentTokens <= 0 {
		return fmt.Errorf("config error: 'max_content_tokens' must be positive")
	}
	if c.ExtractionTemperature < 0 || c.ExtractionTemperature > 2 {
		return fmt.Errorf("config error: 'extraction_temperature' must be between 0 and 2")
	}
	if c.GenerationTemperature < 0 || c.GenerationTemperature > 2 {
		return fmt.Errorf("config error: 'generation_temperature' must be between 0 and 2")
	}
	if c.FetchTimeoutSeconds < 0 || c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("config error: 'requests_per_minute' must be non-negative")
	}
	if c.LogFormat != "" && c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("config error: 'log_format' must be json or console")
	}

	for _, f := range c.Files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", f)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.WebsiteURL == "" {
		result.WebsiteURL = defaults.WebsiteURL
	}
	if result.LeadObjectiveType == "" {
		result.LeadObjectiveType = defaults.LeadObjectiveType
	}
	if result.LeadObjectiveURL == "" {
		result.LeadObjectiveURL = defaults.LeadObjectiveURL
	}
	if result.DownloadableAssetURL == "" {
		result.DownloadableAssetURL = defaults.DownloadableAssetURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.MetricsFile == "" {
		result.MetricsFile = defaults.MetricsFile
	}
	if len(result.Files) == 0 {
		result.Files = defaults.Files
	}

	// Int fields: use default if zero
	if result.Pieces == 0 {
		result.Pieces = defaults.Pieces
	}
	if result.MaxScrapeTokens == 0 {
		result.MaxScrapeTokens = defaults.MaxScrapeTokens
	}
	if result.MaxContentTokens == 0 {
		result.MaxContentTokens = defaults.MaxContentTokens
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.RequestsPerMinute == 0 {
		result.RequestsPerMinute = defaults.RequestsPerMinute
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Float fields: zero is treated as unset
	if result.ExtractionTemperature == 0 {
		result.ExtractionTemperature = defaults.ExtractionTemperature
	}
	if result.GenerationTemperature == 0 {
		result.GenerationTemperature = defaults.GenerationTemperature
	}

	// Bool fields: cannot distinguish unset from false, so we OR them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose
	result.WriteJSON = result.WriteJSON || defaults.WriteJSON

	return result
}

// FetchTimeout returns the website fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// RequestTimeout returns the per model call timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ResolvedModel returns the configured model or the provider default.
func (c *Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}
