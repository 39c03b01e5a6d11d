package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/types"
)

// Reasoning generates the plain-text strategy statement. It never returns an empty string.
func (g *Generator) Reasoning(ctx context.Context) string {
	resp, err := g.invoke(ctx, "reasoning-system", "reasoning", map[string]string{"Context": g.promptContext()}, false)
	if err != nil {
		g.metrics.IncFallback(string(types.ContentReasoning), "api_error")
		g.logger.Warn("reasoning generation failed", zap.Error(err))
		return "Error generating reasoning text: " + err.Error()
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		g.metrics.IncFallback(string(types.ContentReasoning), "empty_reply")
		g.logger.Warn("model returned empty reasoning text")
		return types.ReasoningErrorPlaceholder
	}

	g.metrics.AddItems(string(types.ContentReasoning), 1)
	return text
}
