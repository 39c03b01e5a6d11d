package generation

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/prompts"
	"github.com/jonathan/content-generator/internal/types"
)

// Piece count bounds for emails and for each social ad objective.
const (
	MinPieces     = 10
	MaxPieces     = 20
	DefaultPieces = 10
)

// Options configures a Generator.
type Options struct {
	Pieces  int // Emails, and social ads per objective
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// Generator produces every content type for one campaign. Generators never return
// errors: failed or malformed model replies become placeholder content.
type Generator struct {
	invoker   llm.Invoker
	profile   *types.CompanyProfile
	documents string
	goals     types.CampaignGoals
	pieces    int
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// New creates a Generator for one campaign.
func New(invoker llm.Invoker, profile *types.CompanyProfile, documents string, goals types.CampaignGoals, opts Options) *Generator {
	if opts.Pieces <= 0 {
		opts.Pieces = DefaultPieces
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if profile == nil {
		profile = types.NewFallbackProfile("")
	}
	return &Generator{
		invoker:   invoker,
		profile:   profile,
		documents: documents,
		goals:     goals,
		pieces:    opts.Pieces,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
}

// Pieces returns the configured number of pieces.
func (g *Generator) Pieces() int {
	return g.pieces
}

// Output is the result of one content type, ready to merge into a GenerationResult.
type Output struct {
	Type      types.ContentType
	Email     []types.EmailItem
	Social    []types.SocialAd
	AdCopy    types.AdCopy
	Reasoning string
}

// MergeInto stores the output under its content type in r.
func (o Output) MergeInto(r *types.GenerationResult) {
	switch o.Type {
	case types.ContentEmail:
		r.Email = o.Email
	case types.ContentLinkedIn:
		r.LinkedIn = o.Social
	case types.ContentFacebook:
		r.Facebook = o.Social
	case types.ContentGoogleSearch:
		r.GoogleSearch = o.AdCopy
	case types.ContentGoogleDisplay:
		r.GoogleDisplay = o.AdCopy
	case types.ContentReasoning:
		r.ReasoningText = o.Reasoning
	}
}

// Generate runs the generator for ct.
func (g *Generator) Generate(ctx context.Context, ct types.ContentType) Output {
	out := Output{Type: ct}
	switch ct {
	case types.ContentEmail:
		out.Email = g.Email(ctx)
	case types.ContentLinkedIn:
		out.Social = g.LinkedIn(ctx)
	case types.ContentFacebook:
		out.Social = g.Facebook(ctx)
	case types.ContentGoogleSearch:
		out.AdCopy = g.GoogleSearch(ctx)
	case types.ContentGoogleDisplay:
		out.AdCopy = g.GoogleDisplay(ctx)
	case types.ContentReasoning:
		out.Reasoning = g.Reasoning(ctx)
	default:
		g.logger.Warn("unknown content type", zap.String("content_type", string(ct)))
	}
	return out
}

// GenerateAll runs every generator in order and returns the aggregated result.
func (g *Generator) GenerateAll(ctx context.Context) *types.GenerationResult {
	result := &types.GenerationResult{}
	for _, ct := range types.ContentTypes() {
		g.Generate(ctx, ct).MergeInto(result)
	}
	return result
}

// promptContext rebuilds the shared prompt context for each generator call.
func (g *Generator) promptContext() string {
	return BuildContext(g.profile, g.documents, g.goals)
}

// baseData returns the placeholders shared by the generation prompts.
func (g *Generator) baseData() map[string]string {
	return map[string]string{
		"Context":          g.promptContext(),
		"Count":            strconv.Itoa(g.pieces),
		"LeadObjective":    string(g.goals.LeadObjectiveType),
		"LeadObjectiveURL": g.goals.LeadObjectiveURL,
	}
}

// invoke renders promptKey with data and calls the model with the generation sampling.
func (g *Generator) invoke(ctx context.Context, systemKey, promptKey string, data map[string]string, expectJSON bool) (*llm.Response, error) {
	prompt, err := prompts.Render(prompts.GenerationFile, promptKey, data)
	if err != nil {
		return nil, err
	}
	system, err := prompts.Get(prompts.GenerationFile, systemKey)
	if err != nil {
		return nil, err
	}
	return g.invoker.Invoke(ctx, llm.Call{
		System:     prompts.Format(system, data),
		Prompt:     prompt,
		ExpectJSON: expectJSON,
		Purpose:    llm.PurposeGeneration,
	})
}
