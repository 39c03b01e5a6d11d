package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/ratelimit"
)

// Call is one logical model invocation.
type Call struct {
	System     string
	Prompt     string
	ExpectJSON bool
	Purpose    Purpose
}

// Response holds the reply of a successful Call.
type Response struct {
	Text     string          // Raw reply text
	JSON     json.RawMessage // Recovered document; set only when the call expected JSON
	Model    string
	Duration time.Duration
}

// Invoker is anything that can serve a Call. *Gateway is the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, call Call) (*Response, error)
}

// Gateway wraps a provider Client with rate limiting, timeouts, JSON recovery and metrics.
type Gateway struct {
	client  Client
	config  *Config
	limiter *ratelimit.TokenBucket
	logger  *zap.Logger
	metrics *observability.Metrics
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLimiter shares a token bucket across every call made through the gateway.
func WithLimiter(l *ratelimit.TokenBucket) GatewayOption {
	return func(g *Gateway) { g.limiter = l }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = l }
}

// WithMetrics records per-call counters and durations.
func WithMetrics(m *observability.Metrics) GatewayOption {
	return func(g *Gateway) { g.metrics = m }
}

// NewGateway creates a Gateway around client.
func NewGateway(client Client, config *Config, opts ...GatewayOption) *Gateway {
	if config == nil {
		config = DefaultConfig()
	}
	g := &Gateway{
		client: client,
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invoke waits for the rate limiter, calls the provider with the sampling settings of
// call.Purpose and, for JSON calls, recovers the document from the reply.
// Provider failures are returned as *APICallError and unrecoverable JSON as *ParseError.
func (g *Gateway) Invoke(ctx context.Context, call Call) (*Response, error) {
	log := g.logger.With(zap.String("purpose", string(call.Purpose)), zap.Bool("json", call.ExpectJSON))

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &APICallError{Provider: g.config.Provider, Message: "rate limiter wait aborted", Cause: err}
	}

	if g.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.RequestTimeout)
		defer cancel()
	}

	sampling := g.config.SamplingFor(call.Purpose)
	start := time.Now()
	text, err := g.client.Complete(ctx, CompletionRequest{
		System:      call.System,
		Prompt:      call.Prompt,
		JSON:        call.ExpectJSON,
		Temperature: sampling.Temperature,
		MaxTokens:   sampling.MaxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		outcome := "api_error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		g.metrics.ObserveLLMCall(string(call.Purpose), outcome, elapsed)
		log.Warn("model call failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, &APICallError{Provider: g.config.Provider, Message: "completion failed", Cause: err}
	}

	resp := &Response{
		Text:     text,
		Model:    g.client.Model(),
		Duration: elapsed,
	}

	if call.ExpectJSON {
		raw, err := ParseJSON(text)
		if err != nil {
			g.metrics.ObserveLLMCall(string(call.Purpose), "parse_error", elapsed)
			log.Warn("model reply is not JSON", zap.Int("reply_chars", len(text)), zap.Error(err))
			return nil, err
		}
		resp.JSON = raw
	}

	g.metrics.ObserveLLMCall(string(call.Purpose), "ok", elapsed)
	log.Debug("model call completed",
		zap.String("model", resp.Model),
		zap.Duration("elapsed", elapsed),
		zap.Int("reply_chars", len(text)),
	)
	return resp, nil
}

// Close releases the underlying client.
func (g *Gateway) Close() error {
	return g.client.Close()
}
