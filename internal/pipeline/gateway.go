package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/config"
	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/ratelimit"
)

// LLMConfig maps the run configuration onto the provider settings.
func LLMConfig(cfg config.Config) *llm.Config {
	llmCfg := llm.DefaultConfig()
	if cfg.Provider == config.ProviderGemini {
		llmCfg = llm.DefaultGeminiConfig()
	}
	llmCfg.Model = cfg.ResolvedModel()
	if cfg.RequestTimeoutSeconds > 0 {
		llmCfg.RequestTimeout = cfg.RequestTimeout()
	}
	llmCfg = llmCfg.WithSampling(llm.PurposeExtraction, llm.Sampling{
		Temperature: cfg.ExtractionTemperature,
		MaxTokens:   cfg.MaxScrapeTokens,
	})
	return llmCfg.WithSampling(llm.PurposeGeneration, llm.Sampling{
		Temperature: cfg.GenerationTemperature,
		MaxTokens:   cfg.MaxContentTokens,
	})
}

// NewGateway creates the provider client and wraps it in a rate-limited gateway.
// All generators of a run share the returned gateway and therefore its limiter.
func NewGateway(ctx context.Context, cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) (*llm.Gateway, error) {
	llmCfg := LLMConfig(cfg)
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return llm.NewGateway(client, llmCfg,
		llm.WithLimiter(ratelimit.PerMinute(cfg.RequestsPerMinute)),
		llm.WithLogger(logger),
		llm.WithMetrics(metrics),
	), nil
}
