//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyProfile_JSONKeys(t *testing.T) {
	profile := CompanyProfile{
		CompanyName:          "Acme Corp",
		Tagline:              "Build faster",
		MissionStatement:     "Make shipping boring",
		Industry:             "B2B SaaS",
		ProductsServices:     []string{"CI", "CD"},
		USPsValueProposition: "Zero-config pipelines",
		TargetAudience:       "Platform teams",
		ToneOfVoice:          "direct",
		CTAs:                 []string{"Request a Demo"},
	}

	jsonBytes, err := json.Marshal(profile)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &raw))
	for _, key := range ProfileFields {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, len(ProfileFields))
}

func TestCompanyProfile_Normalize(t *testing.T) {
	profile := CompanyProfile{
		CompanyName: "Acme Corp",
		Industry:    "Logistics",
	}

	profile.Normalize()

	assert.Equal(t, "Acme Corp", profile.CompanyName)
	assert.Equal(t, "Logistics", profile.Industry)
	assert.Equal(t, NotFound, profile.Tagline)
	assert.Equal(t, NotFound, profile.MissionStatement)
	assert.Equal(t, NotFound, profile.USPsValueProposition)
	assert.Equal(t, NotFound, profile.TargetAudience)
	assert.Equal(t, NotFound, profile.ToneOfVoice)
	assert.NotNil(t, profile.ProductsServices)
	assert.Empty(t, profile.ProductsServices)
	assert.NotNil(t, profile.CTAs)
	assert.Empty(t, profile.CTAs)
}

func TestCompanyProfile_NormalizeKeepsLists(t *testing.T) {
	profile := CompanyProfile{CTAs: []string{"Shop Now"}}
	profile.Normalize()
	assert.Equal(t, []string{"Shop Now"}, profile.CTAs)
}

func TestNewFallbackProfile(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{name: "title present", title: "Acme | Home", expected: "Acme | Home"},
		{name: "no title", title: "", expected: UnknownCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewFallbackProfile(tt.title)
			assert.Equal(t, tt.expected, p.CompanyName)
			assert.Equal(t, NotFound, p.Tagline)
			assert.Equal(t, NotFound, p.ToneOfVoice)
			assert.Equal(t, []string{}, p.ProductsServices)
			assert.Equal(t, []string{}, p.CTAs)
		})
	}
}
