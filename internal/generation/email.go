package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/schemas"
	"github.com/jonathan/content-generator/internal/types"
)

// Email generates the email versions in one call. More than Pieces items are truncated;
// a shortfall is logged and the returned items are kept. A failed call yields no emails.
func (g *Generator) Email(ctx context.Context) []types.EmailItem {
	log := g.logger.With(zap.String("content_type", string(types.ContentEmail)))
	emails := []types.EmailItem{}

	resp, err := g.invoke(ctx, "email-system", "email", g.baseData(), true)
	if err != nil {
		g.metrics.IncFallback(string(types.ContentEmail), "api_error")
		log.Warn("email generation failed", zap.Error(err))
		return emails
	}

	items, ok := itemList(resp.JSON)
	if !ok {
		g.metrics.IncFallback(string(types.ContentEmail), "unexpected_shape")
		log.Warn("unexpected reply structure for emails", zap.Int("reply_chars", len(resp.Text)))
		return emails
	}

	objects, skipped := objectItems(items)
	if skipped > 0 {
		log.Warn("dropped non-object email items", zap.Int("skipped", skipped))
	}
	if len(objects) > g.pieces {
		log.Debug("truncating extra emails", zap.Int("returned", len(objects)), zap.Int("requested", g.pieces))
		objects = objects[:g.pieces]
	}
	if len(objects) < g.pieces {
		log.Warn("model returned fewer emails than requested", zap.Int("returned", len(objects)), zap.Int("requested", g.pieces))
	}

	for i, fields := range objects {
		g.checkSchema(schemas.EmailItem, fields)
		emails = append(emails, types.EmailItem{
			VersionNumber: i + 1,
			Objective:     textField(fields, "Objective"),
			Headline:      textField(fields, "Headline"),
			SubjectLine:   textField(fields, "SubjectLine"),
			Body:          textField(fields, "Body"),
			CTA:           textField(fields, "CTA"),
		})
	}

	g.metrics.AddItems(string(types.ContentEmail), len(emails))
	return emails
}
