// Package llm provides centralized LLM configuration and client abstractions.
// Content generation and profile extraction go through a single Gateway so every
// call shares one rate limiter, one timeout policy and one JSON recovery path.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Purpose selects the sampling settings for a call.
type Purpose string

const (
	// PurposeExtraction is for factual structured extraction from page text
	PurposeExtraction Purpose = "extraction"
	// PurposeGeneration is for creative marketing copy
	PurposeGeneration Purpose = "generation"
)

// Sampling holds per-purpose generation settings.
type Sampling struct {
	Temperature float64
	MaxTokens   int
}

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Model          string
	BaseURL        string // Optional API endpoint override
	Sampling       map[Purpose]Sampling
	RequestTimeout time.Duration
}

// DefaultConfig returns the default configuration (OpenAI gpt-4o-mini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-4o-mini",
		Sampling: map[Purpose]Sampling{
			PurposeExtraction: {Temperature: 0.2, MaxTokens: 4000},
			PurposeGeneration: {Temperature: 0.7, MaxTokens: 2000},
		},
		RequestTimeout: 120 * time.Second,
	}
}

// DefaultGeminiConfig returns the default configuration with Gemini as provider
func DefaultGeminiConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.Model = "gemini-2.5-flash"
	return cfg
}

// SamplingFor returns the settings for a purpose, falling back to generation settings.
func (c *Config) SamplingFor(p Purpose) Sampling {
	if s, ok := c.Sampling[p]; ok {
		return s
	}
	return c.Sampling[PurposeGeneration]
}

// WithSampling returns a new Config with the settings for one purpose replaced
func (c *Config) WithSampling(p Purpose, s Sampling) *Config {
	newConfig := *c
	newConfig.Sampling = make(map[Purpose]Sampling, len(c.Sampling)+1)
	for k, v := range c.Sampling {
		newConfig.Sampling[k] = v
	}
	newConfig.Sampling[p] = s
	return &newConfig
}
