package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/fetch"
	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/prompts"
	"github.com/jonathan/content-generator/internal/schemas"
	"github.com/jonathan/content-generator/internal/types"
	"github.com/jonathan/content-generator/internal/validation"
)

// DefaultMaxScrapeTokens is the extraction token ceiling; page text is capped relative to it.
const DefaultMaxScrapeTokens = 4000

// Extractor turns website text into a CompanyProfile with one model call.
type Extractor struct {
	invoker         llm.Invoker
	maxScrapeTokens int
	logger          *zap.Logger
	metrics         *observability.Metrics
}

// NewExtractor creates an Extractor. maxScrapeTokens <= 0 uses DefaultMaxScrapeTokens.
func NewExtractor(invoker llm.Invoker, maxScrapeTokens int, logger *zap.Logger, metrics *observability.Metrics) *Extractor {
	if maxScrapeTokens <= 0 {
		maxScrapeTokens = DefaultMaxScrapeTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		invoker:         invoker,
		maxScrapeTokens: maxScrapeTokens,
		logger:          logger,
		metrics:         metrics,
	}
}

// ExtractProfile asks the model for the nine profile fields. Missing or null scalars
// become "Not found" and missing or null lists become empty. Schema mismatches are
// logged and do not fail the extraction.
func (e *Extractor) ExtractProfile(ctx context.Context, text string) (*types.CompanyProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ExtractionError{Message: "no website text to analyze"}
	}

	text = fetch.Truncate(text, e.maxScrapeTokens*2)
	validation.LogInjectionWarning(e.logger, validation.CheckBasicHeuristics(text), "website text")

	prompt, err := prompts.Render(prompts.ExtractionFile, "extract-company-profile", map[string]string{
		"WebsiteText": text,
	})
	if err != nil {
		return nil, &ExtractionError{Message: "failed to build prompt", Cause: err}
	}

	resp, err := e.invoker.Invoke(ctx, llm.Call{
		System:     prompts.MustGet(prompts.ExtractionFile, "extract-company-profile-system"),
		Prompt:     prompt,
		ExpectJSON: true,
		Purpose:    llm.PurposeExtraction,
	})
	if err != nil {
		return nil, &ExtractionError{Message: "model call failed", Cause: err}
	}

	profile, err := DecodeProfile(resp.JSON)
	if err != nil {
		return nil, &ExtractionError{Message: "unexpected profile shape", Cause: err}
	}

	if err := schemas.Validate(schemas.CompanyProfile, json.RawMessage(resp.JSON)); err != nil {
		var vErr *schemas.ValidationError
		if errors.As(err, &vErr) {
			e.metrics.IncSchemaWarning(schemas.CompanyProfile)
			e.logger.Warn("company profile does not match schema", zap.Strings("errors", vErr.Fields()))
		}
	}

	return profile, nil
}

// DecodeProfile maps an extraction reply onto a CompanyProfile.
// The reply must be a JSON object; field values are coerced leniently.
func DecodeProfile(raw json.RawMessage) (*types.CompanyProfile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("profile reply is null")
	}

	return &types.CompanyProfile{
		CompanyName:          scalarField(fields, "company_name"),
		Tagline:              scalarField(fields, "tagline"),
		MissionStatement:     scalarField(fields, "mission_statement"),
		Industry:             scalarField(fields, "industry"),
		ProductsServices:     listField(fields, "products_services"),
		USPsValueProposition: scalarField(fields, "usps_value_proposition"),
		TargetAudience:       scalarField(fields, "target_audience"),
		ToneOfVoice:          scalarField(fields, "tone_of_voice"),
		CTAs:                 listField(fields, "ctas"),
	}, nil
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// scalarField returns the string value of key. Missing and null give NotFound,
// non-string values are kept as their JSON text.
func scalarField(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return types.NotFound
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var list []interface{}
	if err := json.Unmarshal(v, &list); err == nil {
		return strings.Join(stringify(list), ", ")
	}
	return string(bytes.TrimSpace(v))
}

// listField returns the list value of key. A bare string becomes a one-element list.
func listField(fields map[string]json.RawMessage, key string) []string {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return []string{}
	}
	var list []interface{}
	if err := json.Unmarshal(v, &list); err == nil {
		return stringify(list)
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return []string{}
	}
	return []string{string(bytes.TrimSpace(v))}
}

func stringify(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		default:
			b, _ := json.Marshal(v)
			out = append(out, string(b))
		}
	}
	return out
}
