package research

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/llm/llmtest"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/types"
)

const acmeHTML = `<html><head><title>Acme Analytics</title><style>.x{}</style></head>
<body><h1>Acme Analytics</h1><p>Dashboards for finance teams.</p><script>var a = 1;</script></body></html>`

const acmeProfileJSON = `{
  "company_name": "Acme Analytics",
  "tagline": "See every number",
  "mission_statement": null,
  "industry": "Software",
  "products_services": ["Dashboards", "Forecasting"],
  "usps_value_proposition": "Fast setup",
  "target_audience": "CFOs",
  "tone_of_voice": "Confident",
  "ctas": "Book a demo"
}`

func newSite(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDecodeProfile(t *testing.T) {
	profile, err := DecodeProfile(json.RawMessage(acmeProfileJSON))
	require.NoError(t, err)

	assert.Equal(t, "Acme Analytics", profile.CompanyName)
	assert.Equal(t, types.NotFound, profile.MissionStatement)
	assert.Equal(t, []string{"Dashboards", "Forecasting"}, profile.ProductsServices)
	assert.Equal(t, []string{"Book a demo"}, profile.CTAs)
}

func TestDecodeProfile_MissingFields(t *testing.T) {
	profile, err := DecodeProfile(json.RawMessage(`{"company_name": "Solo", "industry": 42, "tagline": ""}`))
	require.NoError(t, err)

	assert.Equal(t, "Solo", profile.CompanyName)
	assert.Equal(t, "42", profile.Industry)
	assert.Equal(t, "", profile.Tagline)
	assert.Equal(t, types.NotFound, profile.ToneOfVoice)
	assert.NotNil(t, profile.ProductsServices)
	assert.Empty(t, profile.ProductsServices)
	assert.NotNil(t, profile.CTAs)
	assert.Empty(t, profile.CTAs)
}

func TestDecodeProfile_NotAnObject(t *testing.T) {
	tests := []string{`["a", "b"]`, `null`, `"text"`}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeProfile(json.RawMessage(raw))
			assert.Error(t, err)
		})
	}
}

func TestExtractProfile_EmptyText(t *testing.T) {
	stub := llmtest.Reply(acmeProfileJSON)
	_, err := NewExtractor(stub, 0, nil, nil).ExtractProfile(context.Background(), "   ")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Empty(t, stub.Calls())
}

func TestExtractProfile_UsesExtractionSampling(t *testing.T) {
	stub := llmtest.Reply("```json\n" + acmeProfileJSON + "\n```")
	profile, err := NewExtractor(stub, 0, nil, nil).ExtractProfile(context.Background(), "Acme makes dashboards")
	require.NoError(t, err)
	assert.Equal(t, "Acme Analytics", profile.CompanyName)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.PurposeExtraction, calls[0].Purpose)
	assert.True(t, calls[0].ExpectJSON)
	assert.Contains(t, calls[0].Prompt, "Acme makes dashboards")
	assert.NotEmpty(t, calls[0].System)
}

func TestExtractProfile_TruncatesText(t *testing.T) {
	stub := llmtest.Reply(acmeProfileJSON)
	long := strings.Repeat("x", 500)

	_, err := NewExtractor(stub, 10, nil, nil).ExtractProfile(context.Background(), long)
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, strings.Repeat("x", 20))
	assert.NotContains(t, calls[0].Prompt, strings.Repeat("x", 21))
}

func TestScrapeCompany_Success(t *testing.T) {
	srv := newSite(t, http.StatusOK, acmeHTML)
	stub := llmtest.Reply(acmeProfileJSON)

	profile, err := NewScraper(stub, Options{}).ScrapeCompany(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Acme Analytics", profile.CompanyName)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Dashboards for finance teams.")
	assert.NotContains(t, calls[0].Prompt, "var a = 1")
}

func TestScrapeCompany_FallsBackToTitle(t *testing.T) {
	srv := newSite(t, http.StatusOK, acmeHTML)
	metrics := observability.NewMetrics()

	profile, err := NewScraper(llmtest.Reply("I cannot help with that."), Options{Metrics: metrics}).
		ScrapeCompany(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Analytics", profile.CompanyName)
	assert.Equal(t, types.NotFound, profile.Tagline)
	assert.Empty(t, profile.ProductsServices)
}

func TestScrapeCompany_UnknownCompany(t *testing.T) {
	srv := newSite(t, http.StatusOK, `<html><body><p>No title here</p></body></html>`)

	profile, err := NewScraper(llmtest.Fail(errors.New("quota exceeded")), Options{}).
		ScrapeCompany(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, types.UnknownCompany, profile.CompanyName)
}

func TestScrapeCompany_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: "<html><body>missing</body></html>"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "no visible text", status: http.StatusOK, body: "<html><head><script>x()</script></head><body></body></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSite(t, tt.status, tt.body)
			stub := llmtest.Reply(acmeProfileJSON)

			_, err := NewScraper(stub, Options{}).ScrapeCompany(context.Background(), srv.URL)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, srv.URL, fetchErr.URL)
			assert.Contains(t, err.Error(), "failed to retrieve website content")
			assert.Empty(t, stub.Calls())
		})
	}
}

func TestFetchPage_BrowserFallback(t *testing.T) {
	srv := newSite(t, http.StatusOK, `<html><head><title>Thin</title></head><body><div id="app">Loading</div></body></html>`)
	rendered := `<html><head><title>Rendered Co</title></head><body><p>` + strings.Repeat("Rich content. ", 60) + `</p></body></html>`

	var renderedURL string
	scraper := NewScraper(llmtest.Reply(acmeProfileJSON), Options{
		UseBrowser: true,
		Renderer: func(_ context.Context, url string) (string, error) {
			renderedURL = url
			return rendered, nil
		},
	})

	page, err := scraper.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, renderedURL)
	assert.True(t, page.Rendered)
	assert.Equal(t, "Rendered Co", page.Title)
	assert.Contains(t, page.Text, "Rich content.")
}

func TestFetchPage_BrowserFailureKeepsHTTPContent(t *testing.T) {
	srv := newSite(t, http.StatusOK, `<html><head><title>Thin</title></head><body>Short page</body></html>`)

	scraper := NewScraper(llmtest.Reply(acmeProfileJSON), Options{
		UseBrowser: true,
		Renderer: func(context.Context, string) (string, error) {
			return "", errors.New("chrome not installed")
		},
	})

	page, err := scraper.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, page.Rendered)
	assert.Equal(t, "Thin Short page", page.Text)
}

func TestFetchPageText_Capped(t *testing.T) {
	srv := newSite(t, http.StatusOK, "<html><body><p>"+strings.Repeat("a", 100)+"</p></body></html>")

	text, err := NewScraper(llmtest.Reply("{}"), Options{MaxScrapeTokens: 10}).
		FetchPageText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, text, 30)
}
