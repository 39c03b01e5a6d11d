//nolint:revive // types is a standard Go package name pattern
package types

// Placeholder strings substituted when real copy is unavailable.
const (
	ErrorSentinel                   = "Error"
	HeadlinePlaceholder             = "Generated Headline Placeholder"
	DescriptionPlaceholder          = "Generated Description Placeholder"
	HeadlineErrorPlaceholder        = "Error generating headline"
	DescriptionErrorPlaceholder     = "Error generating description"
	ReasoningErrorPlaceholder       = "Error generating reasoning text."
	ReasoningUnavailablePlaceholder = "Reasoning not available."
)

// ContentType identifies one of the six outputs of a run.
type ContentType string

// Content type keys, also used as GenerationResult JSON keys.
const (
	ContentEmail         ContentType = "email"
	ContentLinkedIn      ContentType = "linkedin"
	ContentFacebook      ContentType = "facebook"
	ContentGoogleSearch  ContentType = "google_search"
	ContentGoogleDisplay ContentType = "google_display"
	ContentReasoning     ContentType = "reasoning_text"
)

// ContentTypes returns all content types in generation order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentEmail,
		ContentLinkedIn,
		ContentFacebook,
		ContentGoogleSearch,
		ContentGoogleDisplay,
		ContentReasoning,
	}
}

// AdObjective is the funnel stage a batch of social ads targets.
type AdObjective string

// Social ad objectives, in batch order.
const (
	ObjectiveBrandAwareness AdObjective = "Brand Awareness"
	ObjectiveDemandGen      AdObjective = "Demand Gen"
	ObjectiveDemandCapture  AdObjective = "Demand Capture"
)

// AdObjectives returns the three social ad objectives in batch order.
func AdObjectives() []AdObjective {
	return []AdObjective{ObjectiveBrandAwareness, ObjectiveDemandGen, ObjectiveDemandCapture}
}

// Platform is a social ad platform.
type Platform string

// Supported social platforms.
const (
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformFacebook Platform = "Facebook"
)

// EmailItem is one email version. JSON keys match the model contract.
type EmailItem struct {
	VersionNumber int    `json:"Version #"`
	Objective     string `json:"Objective"`
	Headline      string `json:"Headline"`
	SubjectLine   string `json:"SubjectLine"`
	Body          string `json:"Body"`
	CTA           string `json:"CTA"`
}

// SocialAd is one LinkedIn or Facebook ad version.
// IntroductoryText is LinkedIn-only; PrimaryText and LinkDescription are Facebook-only.
type SocialAd struct {
	VersionNumber    int    `json:"Version #"`
	AdName           string `json:"AdName"`
	Objective        string `json:"Objective"`
	IntroductoryText string `json:"IntroductoryText,omitempty"`
	PrimaryText      string `json:"PrimaryText,omitempty"`
	ImageCopy        string `json:"ImageCopy"`
	Headline         string `json:"Headline"`
	LinkDescription  string `json:"LinkDescription,omitempty"`
	Destination      string `json:"Destination"`
	CTAButton        string `json:"CTAButton"`
}

// AdCopy holds the headline and description assets of a Google responsive ad.
type AdCopy struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}

// GenerationResult is the aggregate output of a run handed to the report compiler.
type GenerationResult struct {
	Email         []EmailItem `json:"email"`
	LinkedIn      []SocialAd  `json:"linkedin"`
	Facebook      []SocialAd  `json:"facebook"`
	GoogleSearch  AdCopy      `json:"google_search"`
	GoogleDisplay AdCopy      `json:"google_display"`
	ReasoningText string      `json:"reasoning_text"`
}

// Count returns how many items a content type holds in the result.
// Google ads count headlines plus descriptions; reasoning counts 1 when present.
func (r *GenerationResult) Count(ct ContentType) int {
	switch ct {
	case ContentEmail:
		return len(r.Email)
	case ContentLinkedIn:
		return len(r.LinkedIn)
	case ContentFacebook:
		return len(r.Facebook)
	case ContentGoogleSearch:
		return len(r.GoogleSearch.Headlines) + len(r.GoogleSearch.Descriptions)
	case ContentGoogleDisplay:
		return len(r.GoogleDisplay.Headlines) + len(r.GoogleDisplay.Descriptions)
	case ContentReasoning:
		if r.ReasoningText != "" {
			return 1
		}
	}
	return 0
}
