// Package types provides type definitions for structured data used throughout the content generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// NotFound is the value used for company profile scalars the extraction could not fill.
const NotFound = "Not found"

// UnknownCompany names a company whose site had no usable <title>.
const UnknownCompany = "Unknown Company"

// CompanyProfile is the normalized record extracted from a client's website.
// After Normalize every scalar is non-empty and every list is non-nil.
type CompanyProfile struct {
	CompanyName          string   `json:"company_name"`
	Tagline              string   `json:"tagline"`
	MissionStatement     string   `json:"mission_statement"`
	Industry             string   `json:"industry"`
	ProductsServices     []string `json:"products_services"`
	USPsValueProposition string   `json:"usps_value_proposition"`
	TargetAudience       string   `json:"target_audience"`
	ToneOfVoice          string   `json:"tone_of_voice"`
	CTAs                 []string `json:"ctas"`
}

// ProfileFields lists the JSON keys every extracted profile must carry.
var ProfileFields = []string{
	"company_name",
	"tagline",
	"mission_statement",
	"industry",
	"products_services",
	"usps_value_proposition",
	"target_audience",
	"tone_of_voice",
	"ctas",
}

// Normalize fills empty scalars with NotFound and nil lists with empty slices.
func (p *CompanyProfile) Normalize() {
	for _, field := range []*string{
		&p.CompanyName,
		&p.Tagline,
		&p.MissionStatement,
		&p.Industry,
		&p.USPsValueProposition,
		&p.TargetAudience,
		&p.ToneOfVoice,
	} {
		if *field == "" {
			*field = NotFound
		}
	}
	if p.ProductsServices == nil {
		p.ProductsServices = []string{}
	}
	if p.CTAs == nil {
		p.CTAs = []string{}
	}
}

// NewFallbackProfile returns the degraded profile used when structured extraction fails.
// Only the company name is known; an empty name becomes UnknownCompany.
func NewFallbackProfile(companyName string) *CompanyProfile {
	if companyName == "" {
		companyName = UnknownCompany
	}
	p := &CompanyProfile{CompanyName: companyName}
	p.Normalize()
	return p
}
