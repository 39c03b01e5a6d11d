// Package generation produces the campaign content for each channel from a company
// profile, optional document text and the campaign goals.
package generation

import (
	"strings"

	"github.com/jonathan/content-generator/internal/prompts"
	"github.com/jonathan/content-generator/internal/types"
)

// Context defaults.
const (
	NotAvailable = "N/A"
	NoDocuments  = "No additional documents provided."
)

// BuildContext renders the shared context block every generation prompt starts with.
// Empty values render as "N/A"; lists are joined with ", ". The downloadable asset
// line is present only when the goals carry an asset URL.
func BuildContext(profile *types.CompanyProfile, documents string, goals types.CampaignGoals) string {
	if profile == nil {
		profile = &types.CompanyProfile{}
	}

	documents = strings.TrimSpace(documents)
	if documents == "" {
		documents = NoDocuments
	}

	block := prompts.Format(prompts.MustGet(prompts.GenerationFile, "campaign-context"), map[string]string{
		"CompanyName":      orNA(profile.CompanyName),
		"Tagline":          orNA(profile.Tagline),
		"MissionStatement": orNA(profile.MissionStatement),
		"Industry":         orNA(profile.Industry),
		"ProductsServices": joinOrNA(profile.ProductsServices),
		"USPs":             orNA(profile.USPsValueProposition),
		"TargetAudience":   orNA(profile.TargetAudience),
		"ToneOfVoice":      orNA(profile.ToneOfVoice),
		"CTAs":             joinOrNA(profile.CTAs),
		"Documents":        documents,
		"LeadObjective":    string(goals.LeadObjectiveType),
		"LeadObjectiveURL": goals.LeadObjectiveURL,
	})

	if goals.HasAsset() {
		block += prompts.Format(prompts.MustGet(prompts.GenerationFile, "campaign-context-asset"), map[string]string{
			"AssetURL": goals.DownloadableAssetURL,
		})
	}
	return block
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func joinOrNA(list []string) string {
	if len(list) == 0 {
		return NotAvailable
	}
	return strings.Join(list, ", ")
}
