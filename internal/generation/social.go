package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/prompts"
	"github.com/jonathan/content-generator/internal/schemas"
	"github.com/jonathan/content-generator/internal/types"
)

type platformSpec struct {
	platform     types.Platform
	contentType  types.ContentType
	structureKey string
	schema       string
}

var (
	linkedInSpec = platformSpec{
		platform:     types.PlatformLinkedIn,
		contentType:  types.ContentLinkedIn,
		structureKey: "linkedin-structure",
		schema:       schemas.LinkedInAd,
	}
	facebookSpec = platformSpec{
		platform:     types.PlatformFacebook,
		contentType:  types.ContentFacebook,
		structureKey: "facebook-structure",
		schema:       schemas.FacebookAd,
	}
)

// LinkedIn generates Pieces LinkedIn ads for each ad objective.
func (g *Generator) LinkedIn(ctx context.Context) []types.SocialAd {
	return g.social(ctx, linkedInSpec)
}

// Facebook generates Pieces Facebook ads for each ad objective.
func (g *Generator) Facebook(ctx context.Context) []types.SocialAd {
	return g.social(ctx, facebookSpec)
}

// social makes one call per ad objective. Each batch holds exactly Pieces ads with
// version numbers i*Pieces+k+1, so the full list is numbered 1..3*Pieces. A failed
// call, a short batch or an unreadable reply is filled with error placeholders without
// touching the other batches.
func (g *Generator) social(ctx context.Context, spec platformSpec) []types.SocialAd {
	log := g.logger.With(zap.String("content_type", string(spec.contentType)))
	objectives := types.AdObjectives()
	ads := make([]types.SocialAd, 0, len(objectives)*g.pieces)

	for i, objective := range objectives {
		batch := g.socialBatch(ctx, spec, objective, log)
		for k := range batch {
			batch[k].VersionNumber = i*g.pieces + k + 1
			batch[k].Objective = string(objective)
		}
		ads = append(ads, batch...)
	}

	g.metrics.AddItems(string(spec.contentType), len(ads))
	return ads
}

// socialBatch returns exactly Pieces ads for one objective. A reply with no usable ad
// list is padded like a short one rather than left empty, so later batches keep their
// version numbers.
func (g *Generator) socialBatch(ctx context.Context, spec platformSpec, objective types.AdObjective, log *zap.Logger) []types.SocialAd {
	log = log.With(zap.String("objective", string(objective)))
	log.Info("generating ads", zap.String("platform", string(spec.platform)))

	resp, err := g.invoke(ctx, "social-system", "social", g.socialData(spec, objective), true)
	if err != nil {
		g.metrics.IncFallback(string(spec.contentType), "api_error")
		log.Warn("ad generation failed, using placeholders", zap.Error(err))
		return placeholderAds(spec.platform, objective, 0, g.pieces)
	}

	var objects []map[string]json.RawMessage
	if items, ok := itemList(resp.JSON); ok {
		var skipped int
		objects, skipped = objectItems(items)
		if skipped > 0 {
			log.Warn("dropped non-object ad items", zap.Int("skipped", skipped))
		}
	}
	if len(objects) == 0 {
		log.Warn("no ads generated or unexpected format")
	}
	if len(objects) > g.pieces {
		objects = objects[:g.pieces]
	}

	batch := make([]types.SocialAd, 0, g.pieces)
	for _, fields := range objects {
		g.checkSchema(spec.schema, fields)
		batch = append(batch, decodeAd(spec.platform, fields))
	}

	if missing := g.pieces - len(batch); missing > 0 {
		g.metrics.IncFallback(string(spec.contentType), "short_batch")
		log.Warn("padding short ad batch", zap.Int("returned", len(batch)), zap.Int("missing", missing))
		batch = append(batch, placeholderAds(spec.platform, objective, len(batch), g.pieces)...)
	}
	return batch
}

func (g *Generator) socialData(spec platformSpec, objective types.AdObjective) map[string]string {
	data := g.baseData()
	data["Platform"] = string(spec.platform)
	data["AdObjective"] = string(objective)
	data["CompanyName"] = g.companyName()
	data["Structure"] = prompts.MustGet(prompts.GenerationFile, spec.structureKey)
	data["AssetLine"] = ""
	if g.goals.HasAsset() {
		data["AssetLine"] = prompts.Format(prompts.MustGet(prompts.GenerationFile, "social-asset-url"), map[string]string{
			"AssetURL": g.goals.DownloadableAssetURL,
		})
	}
	return data
}

func (g *Generator) companyName() string {
	if g.profile.CompanyName == "" || g.profile.CompanyName == types.NotFound {
		return "Client"
	}
	return g.profile.CompanyName
}

// decodeAd maps a reply item onto the fields of platform.
func decodeAd(platform types.Platform, fields map[string]json.RawMessage) types.SocialAd {
	ad := types.SocialAd{
		AdName:      textField(fields, "AdName"),
		ImageCopy:   textField(fields, "ImageCopy"),
		Headline:    textField(fields, "Headline"),
		Destination: textField(fields, "Destination"),
		CTAButton:   textField(fields, "CTAButton"),
	}
	switch platform {
	case types.PlatformLinkedIn:
		ad.IntroductoryText = textField(fields, "IntroductoryText")
	case types.PlatformFacebook:
		ad.PrimaryText = textField(fields, "PrimaryText")
		ad.LinkDescription = textField(fields, "LinkDescription")
	}
	return ad
}

// placeholderAds returns error placeholders for batch positions from..to-1.
func placeholderAds(platform types.Platform, objective types.AdObjective, from, to int) []types.SocialAd {
	ads := make([]types.SocialAd, 0, to-from)
	for k := from; k < to; k++ {
		ad := types.SocialAd{
			AdName:      fmt.Sprintf("Error generating ad - %s - V%d", objective, k+1),
			Objective:   string(objective),
			ImageCopy:   types.ErrorSentinel,
			Headline:    types.ErrorSentinel,
			Destination: types.ErrorSentinel,
			CTAButton:   types.ErrorSentinel,
		}
		switch platform {
		case types.PlatformLinkedIn:
			ad.IntroductoryText = types.ErrorSentinel
		case types.PlatformFacebook:
			ad.PrimaryText = types.ErrorSentinel
			ad.LinkDescription = types.ErrorSentinel
		}
		ads = append(ads, ad)
	}
	return ads
}
