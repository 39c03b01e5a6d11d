package generation

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/schemas"
	"github.com/jonathan/content-generator/internal/types"
)

// AdFormat fixes the asset counts and rune limits of a Google responsive ad.
type AdFormat struct {
	HeadlineCount    int
	HeadlineMax      int
	DescriptionCount int
	DescriptionMax   int
}

// Google responsive ad formats.
var (
	SearchFormat  = AdFormat{HeadlineCount: 15, HeadlineMax: 30, DescriptionCount: 4, DescriptionMax: 90}
	DisplayFormat = AdFormat{HeadlineCount: 5, HeadlineMax: 30, DescriptionCount: 5, DescriptionMax: 90}
)

// GoogleSearch generates Responsive Search Ad copy.
func (g *Generator) GoogleSearch(ctx context.Context) types.AdCopy {
	return g.googleAds(ctx, types.ContentGoogleSearch, "google-search", SearchFormat)
}

// GoogleDisplay generates Responsive Display Ad copy.
func (g *Generator) GoogleDisplay(ctx context.Context) types.AdCopy {
	return g.googleAds(ctx, types.ContentGoogleDisplay, "google-display", DisplayFormat)
}

// googleAds always returns exactly the counts of format. Items are clipped to the rune
// limits and short lists padded. A failed call fills every slot with the error
// placeholders, a reply without both lists fills every slot with "Error".
func (g *Generator) googleAds(ctx context.Context, ct types.ContentType, promptKey string, format AdFormat) types.AdCopy {
	log := g.logger.With(zap.String("content_type", string(ct)))

	assetURL := g.goals.DownloadableAssetURL
	if assetURL == "" {
		assetURL = NotAvailable
	}
	data := g.baseData()
	data["AssetURL"] = assetURL
	data["HeadlineCount"] = strconv.Itoa(format.HeadlineCount)
	data["HeadlineMax"] = strconv.Itoa(format.HeadlineMax)
	data["DescriptionCount"] = strconv.Itoa(format.DescriptionCount)
	data["DescriptionMax"] = strconv.Itoa(format.DescriptionMax)

	resp, err := g.invoke(ctx, promptKey+"-system", promptKey, data, true)
	if err != nil {
		g.metrics.IncFallback(string(ct), "api_error")
		log.Warn("ad copy generation failed", zap.Error(err))
		return filledCopy(format, types.HeadlineErrorPlaceholder, types.DescriptionErrorPlaceholder)
	}

	headlines, descriptions, ok := decodeAdCopy(resp.JSON)
	if !ok {
		g.metrics.IncFallback(string(ct), "unexpected_shape")
		log.Warn("unexpected reply structure for ad copy", zap.Int("reply_chars", len(resp.Text)))
		return filledCopy(format, types.ErrorSentinel, types.ErrorSentinel)
	}
	g.checkSchema(schemas.AdCopy, resp.JSON)

	if len(headlines) < format.HeadlineCount || len(descriptions) < format.DescriptionCount {
		g.metrics.IncFallback(string(ct), "short_list")
		log.Warn("padding short ad copy",
			zap.Int("headlines", len(headlines)),
			zap.Int("descriptions", len(descriptions)),
		)
	}

	adCopy := types.AdCopy{
		Headlines:    fitList(headlines, format.HeadlineCount, format.HeadlineMax, types.HeadlinePlaceholder),
		Descriptions: fitList(descriptions, format.DescriptionCount, format.DescriptionMax, types.DescriptionPlaceholder),
	}
	g.metrics.AddItems(string(ct), len(adCopy.Headlines)+len(adCopy.Descriptions))
	return adCopy
}

// decodeAdCopy reads the headlines and descriptions lists of an ad copy reply.
func decodeAdCopy(raw json.RawMessage) (headlines, descriptions []string, ok bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, nil, false
	}
	h, hasHeadlines := fields["headlines"]
	d, hasDescriptions := fields["descriptions"]
	if !hasHeadlines || !hasDescriptions {
		return nil, nil, false
	}
	if headlines, ok = textList(h); !ok {
		return nil, nil, false
	}
	if descriptions, ok = textList(d); !ok {
		return nil, nil, false
	}
	return headlines, descriptions, true
}

// fitList clips each item to limit runes, keeps the first count items and pads with filler.
func fitList(items []string, count, limit int, filler string) []string {
	out := make([]string, 0, count)
	for _, item := range items {
		if len(out) == count {
			break
		}
		out = append(out, clip(item, limit))
	}
	for len(out) < count {
		out = append(out, filler)
	}
	return out
}

func filledCopy(format AdFormat, headline, description string) types.AdCopy {
	return types.AdCopy{
		Headlines:    fitList(nil, format.HeadlineCount, format.HeadlineMax, headline),
		Descriptions: fitList(nil, format.DescriptionCount, format.DescriptionMax, description),
	}
}
