// Package research retrieves a client website and turns it into a CompanyProfile.
package research

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/fetch"
	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/types"
)

// Renderer returns browser-rendered HTML for a URL.
type Renderer func(ctx context.Context, url string) (string, error)

// Options configures a Scraper.
type Options struct {
	MaxScrapeTokens int            // Page text is capped to MaxScrapeTokens*3 characters
	Fetch           *fetch.Options // HTTP settings; fetch.DefaultOptions when nil
	UseBrowser      bool           // Re-render short pages with headless Chrome
	BrowserTimeout  time.Duration
	Renderer        Renderer // Overrides the chromedp renderer
	Logger          *zap.Logger
	Metrics         *observability.Metrics
}

// Page is a fetched website.
type Page struct {
	URL      string
	HTML     string
	Text     string // Visible text, capped
	Title    string
	Rendered bool // Text came from the headless browser
}

// Scraper fetches a client website and extracts its company profile.
type Scraper struct {
	extractor *Extractor
	opts      Options
	logger    *zap.Logger
}

// NewScraper creates a Scraper that extracts profiles through invoker.
func NewScraper(invoker llm.Invoker, opts Options) *Scraper {
	if opts.MaxScrapeTokens <= 0 {
		opts.MaxScrapeTokens = DefaultMaxScrapeTokens
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.DefaultOptions()
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Renderer == nil {
		logger := opts.Logger
		timeout := opts.BrowserTimeout
		opts.Renderer = func(ctx context.Context, url string) (string, error) {
			return fetch.WithBrowser(ctx, url, timeout, logger)
		}
	}

	return &Scraper{
		extractor: NewExtractor(invoker, opts.MaxScrapeTokens, opts.Logger, opts.Metrics),
		opts:      opts,
		logger:    opts.Logger,
	}
}

// FetchPage retrieves url and extracts its visible text and title.
// Transport failures, non-200 responses and pages without visible text are *FetchError.
func (s *Scraper) FetchPage(ctx context.Context, url string) (*Page, error) {
	maxChars := s.opts.MaxScrapeTokens * 3

	result, err := fetch.URL(ctx, url, s.opts.Fetch)
	if err != nil {
		s.opts.Metrics.IncPageFetch("http", "error")
		return nil, &FetchError{URL: url, Message: "request failed", Cause: err}
	}
	s.opts.Metrics.IncPageFetch("http", "ok")

	text, err := fetch.ExtractVisibleText(result.HTML, maxChars)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "failed to parse HTML", Cause: err}
	}
	page := &Page{
		URL:   url,
		HTML:  result.HTML,
		Text:  text,
		Title: fetch.ExtractTitle(result.HTML),
	}

	if s.opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		s.renderInto(ctx, page, maxChars)
	}

	if strings.TrimSpace(page.Text) == "" {
		return nil, &FetchError{URL: url, Message: "page has no visible text"}
	}

	s.logger.Info("fetched website",
		zap.String("url", url),
		zap.Int("text_chars", len([]rune(page.Text))),
		zap.Bool("rendered", page.Rendered),
	)
	return page, nil
}

// renderInto replaces the page content with the browser-rendered version when that
// yields more text. Render failures keep the HTTP result.
func (s *Scraper) renderInto(ctx context.Context, page *Page, maxChars int) {
	html, err := s.opts.Renderer(ctx, page.URL)
	if err != nil {
		s.opts.Metrics.IncPageFetch("browser", "error")
		s.logger.Warn("browser rendering failed, using HTTP content", zap.String("url", page.URL), zap.Error(err))
		return
	}
	s.opts.Metrics.IncPageFetch("browser", "ok")

	text, err := fetch.ExtractVisibleText(html, maxChars)
	if err != nil || len(text) <= len(page.Text) {
		return
	}
	page.HTML = html
	page.Text = text
	if title := fetch.ExtractTitle(html); title != "" {
		page.Title = title
	}
	page.Rendered = true
}

// FetchPageText retrieves url and returns its capped visible text.
func (s *Scraper) FetchPageText(ctx context.Context, url string) (string, error) {
	page, err := s.FetchPage(ctx, url)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// ScrapeCompany fetches url and extracts the company profile. A fetch failure is
// returned as *FetchError. An extraction failure degrades to a profile named after
// the page title, or "Unknown Company" when the page has none.
func (s *Scraper) ScrapeCompany(ctx context.Context, url string) (*types.CompanyProfile, error) {
	page, err := s.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	profile, err := s.extractor.ExtractProfile(ctx, page.Text)
	if err != nil {
		var extractionErr *ExtractionError
		if !errors.As(err, &extractionErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.opts.Metrics.IncFallback("company_profile", "extraction_failed")
		s.logger.Warn("structured extraction failed, using page title", zap.String("title", page.Title), zap.Error(err))
		return types.NewFallbackProfile(page.Title), nil
	}

	s.logger.Info("extracted company profile", zap.String("company", profile.CompanyName))
	return profile, nil
}
