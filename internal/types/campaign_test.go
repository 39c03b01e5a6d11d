//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignGoals_Validate(t *testing.T) {
	tests := []struct {
		name    string
		goals   CampaignGoals
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid without asset",
			goals: CampaignGoals{
				LeadObjectiveType: LeadDemoBooking,
				LeadObjectiveURL:  "https://example.com/demo",
			},
		},
		{
			name: "valid with asset",
			goals: CampaignGoals{
				LeadObjectiveType:    LeadSalesMeeting,
				LeadObjectiveURL:     "https://example.com/meet",
				DownloadableAssetURL: "http://example.com/whitepaper.pdf",
			},
		},
		{
			name: "unknown objective",
			goals: CampaignGoals{
				LeadObjectiveType: "Newsletter",
				LeadObjectiveURL:  "https://example.com/demo",
			},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name: "missing objective url",
			goals: CampaignGoals{
				LeadObjectiveType: LeadDemoBooking,
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "objective url without scheme",
			goals: CampaignGoals{
				LeadObjectiveType: LeadDemoBooking,
				LeadObjectiveURL:  "example.com/demo",
			},
			wantErr: true,
			errMsg:  "http_url",
		},
		{
			name: "asset url not http",
			goals: CampaignGoals{
				LeadObjectiveType:    LeadDemoBooking,
				LeadObjectiveURL:     "https://example.com/demo",
				DownloadableAssetURL: "ftp://example.com/file.pdf",
			},
			wantErr: true,
			errMsg:  "http_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goals.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLeadObjectiveType(t *testing.T) {
	got, ok := ParseLeadObjectiveType("Sales Meeting")
	assert.True(t, ok)
	assert.Equal(t, LeadSalesMeeting, got)

	got, ok = ParseLeadObjectiveType("  demo booking ")
	assert.True(t, ok)
	assert.Equal(t, LeadDemoBooking, got)

	_, ok = ParseLeadObjectiveType("Webinar")
	assert.False(t, ok)
}

func TestCampaignGoals_HasAsset(t *testing.T) {
	assert.False(t, CampaignGoals{}.HasAsset())
	assert.True(t, CampaignGoals{DownloadableAssetURL: "https://example.com/a.pdf"}.HasAsset())
}
