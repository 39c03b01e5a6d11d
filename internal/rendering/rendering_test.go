package rendering

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/content-generator/internal/types"
)

func sampleResult() *types.GenerationResult {
	result := &types.GenerationResult{
		Email: []types.EmailItem{
			{VersionNumber: 1, Objective: "Demo Booking", Headline: "H1", SubjectLine: "S1", Body: "Body one", CTA: "Book"},
			{VersionNumber: 2, Objective: "Demo Booking", Headline: "H2", SubjectLine: "S2", Body: "Body two", CTA: "Book"},
		},
		LinkedIn: []types.SocialAd{
			{VersionNumber: 1, AdName: "Acme - Brand Awareness Ad - V1", Objective: "Brand Awareness", IntroductoryText: "Intro",
				ImageCopy: "Image", Headline: "Headline", Destination: "https://example.com/demo", CTAButton: "Learn More"},
		},
		Facebook: []types.SocialAd{
			{VersionNumber: 1, AdName: "Acme - Demand Gen Ad - V1", Objective: "Demand Gen", PrimaryText: "Primary",
				ImageCopy: "Image", Headline: "Headline", LinkDescription: "Link", Destination: "https://example.com/demo", CTAButton: "Sign Up"},
		},
		GoogleSearch: types.AdCopy{
			Headlines:    []string{"Fast dashboards", types.HeadlinePlaceholder},
			Descriptions: []string{"See every number", types.DescriptionErrorPlaceholder, "More", "Even more"},
		},
		GoogleDisplay: types.AdCopy{
			Headlines:    []string{"A", "B", "C", "D", "E"},
			Descriptions: []string{"1", "2", "3", "4", "5"},
		},
		ReasoningText: "The copy leans on fast setup.",
	}
	for len(result.GoogleSearch.Headlines) < 15 {
		result.GoogleSearch.Headlines = append(result.GoogleSearch.Headlines, fmt.Sprintf("Headline %d", len(result.GoogleSearch.Headlines)+1))
	}
	return result
}

func sampleProfile() *types.CompanyProfile {
	return &types.CompanyProfile{
		CompanyName:          "Acme Analytics",
		Tagline:              "See every number",
		MissionStatement:     types.NotFound,
		Industry:             "Software",
		ProductsServices:     []string{"Dashboards", "Forecasting"},
		USPsValueProposition: "Fast setup",
		TargetAudience:       "CFOs",
		ToneOfVoice:          "Confident",
		CTAs:                 []string{},
	}
}

func openWorkbook(t *testing.T, result *types.GenerationResult, profile *types.CompanyProfile) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, result, profile))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

func TestWriteWorkbook_SheetOrder(t *testing.T) {
	f := openWorkbook(t, sampleResult(), sampleProfile())

	assert.Equal(t, []string{
		SheetEmail, SheetLinkedIn, SheetFacebook, SheetGoogleSearch, SheetGoogleDisplay, SheetReasoning,
	}, f.GetSheetList())
}

func TestWriteWorkbook_SkipsEmptySheets(t *testing.T) {
	result := sampleResult()
	result.Email = nil
	result.Facebook = []types.SocialAd{}

	f := openWorkbook(t, result, sampleProfile())
	assert.Equal(t, []string{SheetLinkedIn, SheetGoogleSearch, SheetGoogleDisplay, SheetReasoning}, f.GetSheetList())
}

func TestWriteWorkbook_Tables(t *testing.T) {
	f := openWorkbook(t, sampleResult(), sampleProfile())

	rows, err := f.GetRows(SheetEmail)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, emailHeaders, rows[0])
	assert.Equal(t, []string{"1", "Demo Booking", "H1", "S1", "Body one", "Book"}, rows[1])

	rows, err = f.GetRows(SheetLinkedIn)
	require.NoError(t, err)
	assert.Equal(t, linkedInHeaders, rows[0])
	assert.Equal(t, "Intro", rows[1][3])

	rows, err = f.GetRows(SheetFacebook)
	require.NoError(t, err)
	assert.Equal(t, facebookHeaders, rows[0])
	assert.Equal(t, "Primary", rows[1][3])
	assert.Equal(t, "Link", rows[1][6])

	headerStyle, err := f.GetCellStyle(SheetEmail, "A1")
	require.NoError(t, err)
	lastHeaderStyle, err := f.GetCellStyle(SheetEmail, "F1")
	require.NoError(t, err)
	dataStyle, err := f.GetCellStyle(SheetEmail, "B2")
	require.NoError(t, err)
	assert.Equal(t, headerStyle, lastHeaderStyle)
	assert.NotEqual(t, headerStyle, dataStyle)
}

func TestWriteWorkbook_GoogleSearchLayout(t *testing.T) {
	f := openWorkbook(t, sampleResult(), sampleProfile())

	assert.Equal(t, "Headlines (15 total, Max 30 characters each)", cell(t, f, SheetGoogleSearch, "A1"))
	assert.Equal(t, "Fast dashboards", cell(t, f, SheetGoogleSearch, "A2"))
	assert.Equal(t, "Headline 15", cell(t, f, SheetGoogleSearch, "A16"))
	assert.Equal(t, "", cell(t, f, SheetGoogleSearch, "A17"))
	assert.Equal(t, "Descriptions (4 total, Max 90 characters each)", cell(t, f, SheetGoogleSearch, "A18"))
	assert.Equal(t, "Even more", cell(t, f, SheetGoogleSearch, "A22"))

	assert.Equal(t, "Headlines (5 total, Max 30 characters each)", cell(t, f, SheetGoogleDisplay, "A1"))
	assert.Equal(t, "Descriptions (5 total, Max 90 characters each)", cell(t, f, SheetGoogleDisplay, "A8"))
	assert.Equal(t, "5", cell(t, f, SheetGoogleDisplay, "A13"))
}

func TestWriteWorkbook_PlaceholderFill(t *testing.T) {
	f := openWorkbook(t, sampleResult(), sampleProfile())

	style := func(axis string) int {
		id, err := f.GetCellStyle(SheetGoogleSearch, axis)
		require.NoError(t, err)
		return id
	}

	filled := style("A2")
	placeholder := style("A3")
	errorCell := style("A20")
	assert.NotEqual(t, filled, placeholder)
	assert.Equal(t, placeholder, errorCell)
	assert.Equal(t, filled, style("A19"))
}

func TestWriteWorkbook_ShortAdCopyLeavesBlankSlots(t *testing.T) {
	result := sampleResult()
	result.GoogleDisplay = types.AdCopy{Headlines: []string{"Only one"}}

	f := openWorkbook(t, result, sampleProfile())
	assert.Equal(t, "Only one", cell(t, f, SheetGoogleDisplay, "A2"))
	assert.Equal(t, "", cell(t, f, SheetGoogleDisplay, "A3"))

	filled, err := f.GetCellStyle(SheetGoogleDisplay, "A2")
	require.NoError(t, err)
	blank, err := f.GetCellStyle(SheetGoogleDisplay, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, filled, blank)
}

func TestWriteWorkbook_Reasoning(t *testing.T) {
	f := openWorkbook(t, sampleResult(), sampleProfile())

	assert.Equal(t, reasoningTitle, cell(t, f, SheetReasoning, "A1"))
	assert.Equal(t, "Company Name", cell(t, f, SheetReasoning, "A2"))
	assert.Equal(t, "Acme Analytics", cell(t, f, SheetReasoning, "B2"))
	assert.Equal(t, "Dashboards, Forecasting", cell(t, f, SheetReasoning, "B6"))
	assert.Equal(t, "CTAs from Website", cell(t, f, SheetReasoning, "A10"))
	assert.Equal(t, "N/A", cell(t, f, SheetReasoning, "B10"))
	assert.Equal(t, reasoningHeader, cell(t, f, SheetReasoning, "A12"))
	assert.Equal(t, "The copy leans on fast setup.", cell(t, f, SheetReasoning, "A13"))

	merges, err := f.GetMergeCells(SheetReasoning)
	require.NoError(t, err)
	var ranges []string
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"A1:B1", "A12:B12", "A13:B18"}, ranges)
}

func TestWriteWorkbook_ReasoningUnavailable(t *testing.T) {
	result := sampleResult()
	result.ReasoningText = ""

	f := openWorkbook(t, result, nil)
	assert.Equal(t, types.ReasoningUnavailablePlaceholder, cell(t, f, SheetReasoning, "A13"))
	assert.Equal(t, types.UnknownCompany, cell(t, f, SheetReasoning, "B2"))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleResult(), sampleProfile()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Len(t, f.GetSheetList(), 6)
}

func TestReasoningRows(t *testing.T) {
	assert.Equal(t, 6, reasoningRows("short"))
	assert.Equal(t, 11, reasoningRows(strings.Repeat("x", 70*20)))
}

func TestColumnWidth(t *testing.T) {
	rows := [][]interface{}{{1, strings.Repeat("a", 200)}, {2, "line one\n" + strings.Repeat("b", 300)}}

	assert.Equal(t, float64(17), columnWidth("Version #", rows, 0))
	assert.Equal(t, float64(maxColumnWidth), columnWidth("Objective", rows, 1))
	assert.Equal(t, float64(wideColumnWidth), columnWidth("Body", [][]interface{}{{1, "short"}}, 1))
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder(types.HeadlinePlaceholder))
	assert.True(t, IsPlaceholder(types.DescriptionErrorPlaceholder))
	assert.True(t, IsPlaceholder(types.ErrorSentinel))
	assert.False(t, IsPlaceholder("Fast dashboards"))
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{company: "Acme Analytics", want: "Acme_Analytics_lead_content.xlsx"},
		{company: "Acme, Inc.", want: "Acme_Inc_lead_content.xlsx"},
		{company: "  R&D-Labs  ", want: "RD-Labs_lead_content.xlsx"},
		{company: "Foo  Bar", want: "Foo__Bar_lead_content.xlsx"},
		{company: "Café Co", want: "Café_Co_lead_content.xlsx"},
		{company: "Müller & Söhne 2", want: "Müller__Söhne_2_lead_content.xlsx"},
		{company: "!!!", want: "client_content_lead_content.xlsx"},
		{company: "", want: "client_content_lead_content.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFileName(tt.company))
		})
	}
}
