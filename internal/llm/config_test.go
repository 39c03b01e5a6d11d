package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "gpt-4o-mini", config.Model)
	assert.Equal(t, Sampling{Temperature: 0.2, MaxTokens: 4000}, config.SamplingFor(PurposeExtraction))
	assert.Equal(t, Sampling{Temperature: 0.7, MaxTokens: 2000}, config.SamplingFor(PurposeGeneration))
	assert.Equal(t, 120*time.Second, config.RequestTimeout)
}

func TestDefaultGeminiConfig(t *testing.T) {
	config := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
}

func TestSamplingFor_Fallback(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, config.SamplingFor(PurposeGeneration), config.SamplingFor("unknown"))
}

func TestWithSampling(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithSampling(PurposeGeneration, Sampling{Temperature: 1.0, MaxTokens: 500})

	// Original should be unchanged
	assert.Equal(t, 2000, config.SamplingFor(PurposeGeneration).MaxTokens)

	assert.Equal(t, 500, newConfig.SamplingFor(PurposeGeneration).MaxTokens)
	assert.Equal(t, config.SamplingFor(PurposeExtraction), newConfig.SamplingFor(PurposeExtraction))
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
	assert.Equal(t, Provider("gemini"), ProviderGemini)
}
