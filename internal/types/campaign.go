//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// LeadObjectiveType is the primary conversion the campaign drives toward.
type LeadObjectiveType string

// Lead objective values accepted by the generator.
const (
	LeadDemoBooking  LeadObjectiveType = "Demo Booking"
	LeadSalesMeeting LeadObjectiveType = "Sales Meeting"
)

// LeadObjectiveTypes returns the accepted lead objectives in display order.
func LeadObjectiveTypes() []LeadObjectiveType {
	return []LeadObjectiveType{LeadDemoBooking, LeadSalesMeeting}
}

// ParseLeadObjectiveType maps user input onto a LeadObjectiveType, ignoring case
// and surrounding space.
func ParseLeadObjectiveType(s string) (LeadObjectiveType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range LeadObjectiveTypes() {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// CampaignGoals are the immutable campaign inputs for one run.
type CampaignGoals struct {
	LeadObjectiveType    LeadObjectiveType `json:"lead_objective_type" validate:"required,oneof='Demo Booking' 'Sales Meeting'"`
	LeadObjectiveURL     string            `json:"lead_objective_url" validate:"required,http_url"`
	DownloadableAssetURL string            `json:"downloadable_asset_url,omitempty" validate:"omitempty,http_url"`
}

// HasAsset reports whether a downloadable asset URL was configured.
func (g CampaignGoals) HasAsset() bool {
	return g.DownloadableAssetURL != ""
}

// Validate validates the CampaignGoals using the validator.
func (g *CampaignGoals) Validate() error {
	validate := validator.New()
	return validate.Struct(g)
}
