// Package pipeline provides the high-level orchestration for one campaign content run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/content-generator/internal/config"
	"github.com/jonathan/content-generator/internal/db"
	"github.com/jonathan/content-generator/internal/fetch"
	"github.com/jonathan/content-generator/internal/generation"
	"github.com/jonathan/content-generator/internal/ingestion"
	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/logging"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/rendering"
	"github.com/jonathan/content-generator/internal/research"
	"github.com/jonathan/content-generator/internal/types"
)

const totalSteps = 5

// Progress categories
const (
	CategoryInput      = "input"
	CategoryResearch   = "research"
	CategoryIngestion  = "ingestion"
	CategoryGeneration = "generation"
	CategoryReport     = "report"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists run history. *db.DB satisfies it.
type Store interface {
	CreateRun(ctx context.Context, runID uuid.UUID, websiteURL, leadObjective string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status, company string) error
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Config     config.Config     // Resolved run configuration
	Invoker    llm.Invoker       // Optional; a provider gateway is built from Config when nil
	Renderer   research.Renderer // Optional headless renderer override
	Store      Store             // Optional; connects to Config.DatabaseURL when nil
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Out        io.Writer // Progress lines; os.Stdout when nil
	OnProgress ProgressCallback
}

// Result summarizes a finished run.
type Result struct {
	RunID        uuid.UUID
	Profile      *types.CompanyProfile
	Documents    string
	Generation   *types.GenerationResult
	WorkbookPath string
	JSONPath     string // Empty unless WriteJSON was set
}

type runner struct {
	opts   *RunOptions
	out    io.Writer
	logger *zap.Logger
	store  Store
	runID  uuid.UUID
}

// emitProgress calls the progress callback if configured
func (r *runner) emitProgress(step, category, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.runID.String(),
			Content:  content,
		})
	}
}

func (r *runner) step(n int, format string, args ...any) {
	fmt.Fprintf(r.out, "Step %d/%d: %s\n", n, totalSteps, fmt.Sprintf(format, args...))
}

// save persists an artifact. Store failures never abort a run.
func (r *runner) save(ctx context.Context, step string, content any) {
	if r.store == nil {
		return
	}
	var err error
	if text, ok := content.(string); ok {
		err = r.store.SaveTextArtifact(ctx, r.runID, step, text)
	} else {
		err = r.store.SaveArtifact(ctx, r.runID, step, content)
	}
	if err != nil {
		r.logger.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (r *runner) complete(ctx context.Context, status, company string) {
	if r.store == nil {
		return
	}
	if err := r.store.CompleteRun(ctx, r.runID, status, company); err != nil {
		r.logger.Warn("failed to update run status", zap.String("status", status), zap.Error(err))
	}
}

// Goals returns the campaign goals described by cfg.
func Goals(cfg config.Config) types.CampaignGoals {
	return types.CampaignGoals{
		LeadObjectiveType:    types.LeadObjectiveType(cfg.LeadObjectiveType),
		LeadObjectiveURL:     cfg.LeadObjectiveURL,
		DownloadableAssetURL: cfg.DownloadableAssetURL,
	}
}

// ScraperOptions maps the run configuration onto research.Options.
func ScraperOptions(cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) research.Options {
	fetchOpts := fetch.DefaultOptions()
	if cfg.FetchTimeoutSeconds > 0 {
		fetchOpts.Timeout = cfg.FetchTimeout()
	}
	return research.Options{
		MaxScrapeTokens: cfg.MaxScrapeTokens,
		Fetch:           fetchOpts,
		UseBrowser:      cfg.UseBrowser,
		Logger:          logger,
		Metrics:         metrics,
	}
}

// RunPipeline scrapes the client website, extracts the uploaded documents, runs the six
// content generators and writes the XLSX report. Only invalid inputs and an unreachable
// website fail the run; generation problems become placeholder content.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	cfg := opts.Config
	r := &runner{
		opts:   &opts,
		out:    opts.Out,
		logger: logging.OrNop(opts.Logger),
		store:  opts.Store,
		runID:  uuid.New(),
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	r.logger = r.logger.With(zap.String("run_id", r.runID.String()))

	// Step 1: Validate inputs before any network activity
	r.step(1, "Validating campaign inputs...")
	goals := Goals(cfg)
	if err := goals.Validate(); err != nil {
		return nil, fmt.Errorf("invalid campaign goals: %w", err)
	}
	if cfg.WebsiteURL == "" {
		return nil, fmt.Errorf("website URL is required")
	}
	docs, err := ingestion.LoadDocuments(cfg.Files)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	r.emitProgress(db.StepCampaignGoals, CategoryInput, "Validated campaign goals", goals)

	invoker := opts.Invoker
	if invoker == nil {
		gateway, err := NewGateway(ctx, cfg, r.logger, opts.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = gateway.Close() }()
		invoker = gateway
	}

	if r.store == nil && cfg.DatabaseURL != "" {
		database, err := connectStore(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(r.out, "Warning: Failed to connect to database: %v\n", err)
			fmt.Fprintf(r.out, "Continuing without database persistence...\n")
		} else {
			defer database.Close()
			r.store = database
		}
	}
	if r.store != nil {
		if err := r.store.CreateRun(ctx, r.runID, cfg.WebsiteURL, cfg.LeadObjectiveType); err != nil {
			r.logger.Warn("failed to record run", zap.Error(err))
		}
		r.save(ctx, db.StepCampaignGoals, goals)
	}

	// Step 2: Scrape website and extract the company profile
	r.step(2, "Scraping website %s...", cfg.WebsiteURL)
	scraperOpts := ScraperOptions(cfg, r.logger, opts.Metrics)
	scraperOpts.Renderer = opts.Renderer
	scraper := research.NewScraper(invoker, scraperOpts)
	profile, err := scraper.ScrapeCompany(ctx, cfg.WebsiteURL)
	if err != nil {
		r.complete(ctx, db.StatusFailed, "")
		return nil, err
	}
	r.emitProgress(db.StepCompanyProfile, CategoryResearch,
		fmt.Sprintf("Extracted company profile for %s", profile.CompanyName), profile)
	r.save(ctx, db.StepCompanyProfile, profile)

	printer := observability.NewPrinter(r.out)
	if cfg.Verbose {
		printer.PrintCompanyProfile(profile)
	}

	// Step 3: Extract document text
	r.step(3, "Extracting text from %d document(s)...", len(docs))
	documents := ingestion.ExtractText(docs, r.logger)
	r.emitProgress(db.StepDocumentText, CategoryIngestion,
		fmt.Sprintf("Extracted %d characters from documents", len(documents)), nil)
	if documents != "" {
		r.save(ctx, db.StepDocumentText, documents)
	}

	// Step 4: Run the generators
	r.step(4, "Generating campaign content (%d pieces, concurrency %d)...", cfg.Pieces, concurrency(cfg))
	generator := generation.New(invoker, profile, documents, goals, generation.Options{
		Pieces:  cfg.Pieces,
		Logger:  r.logger,
		Metrics: opts.Metrics,
	})
	result, err := r.generate(ctx, generator, concurrency(cfg))
	if err != nil {
		r.complete(ctx, db.StatusFailed, profile.CompanyName)
		return nil, err
	}
	r.save(ctx, db.StepGenerationResult, result)

	if cfg.Verbose {
		printer.PrintEmails(result.Email)
		printer.PrintSocialAds(types.PlatformLinkedIn, result.LinkedIn)
		printer.PrintSocialAds(types.PlatformFacebook, result.Facebook)
		printer.PrintAdCopy("Google Search", result.GoogleSearch)
		printer.PrintAdCopy("Google Display", result.GoogleDisplay)
	}

	// Step 5: Compile the report
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		r.complete(ctx, db.StatusFailed, profile.CompanyName)
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	workbookPath := filepath.Join(outputDir, rendering.OutputFileName(profile.CompanyName))
	r.step(5, "Compiling report %s...", workbookPath)
	if err := rendering.WriteWorkbook(workbookPath, result, profile); err != nil {
		r.complete(ctx, db.StatusFailed, profile.CompanyName)
		return nil, fmt.Errorf("report compilation failed: %w", err)
	}
	r.emitProgress(db.StepGenerationResult, CategoryReport, "Wrote campaign report", workbookPath)

	res := &Result{
		RunID:        r.runID,
		Profile:      profile,
		Documents:    documents,
		Generation:   result,
		WorkbookPath: workbookPath,
	}

	if cfg.WriteJSON {
		jsonPath := workbookPath[:len(workbookPath)-len(filepath.Ext(workbookPath))] + ".json"
		if err := writeJSON(jsonPath, result); err != nil {
			r.complete(ctx, db.StatusFailed, profile.CompanyName)
			return nil, fmt.Errorf("failed to write result JSON: %w", err)
		}
		res.JSONPath = jsonPath
	}

	if opts.Metrics != nil && cfg.MetricsFile != "" {
		if err := opts.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			r.logger.Warn("failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	r.complete(ctx, db.StatusCompleted, profile.CompanyName)
	printer.PrintResultSummary(result)
	return res, nil
}

func concurrency(cfg config.Config) int {
	switch {
	case cfg.Concurrency < 1:
		return 1
	case cfg.Concurrency > config.MaxConcurrency:
		return config.MaxConcurrency
	default:
		return cfg.Concurrency
	}
}

// generate runs the generators with at most limit in flight. Generators never fail,
// so the group only returns an error when ctx is cancelled.
func (r *runner) generate(ctx context.Context, generator *generation.Generator, limit int) (*types.GenerationResult, error) {
	result := &types.GenerationResult{}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, ct := range types.ContentTypes() {
		ct := ct
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out := generator.Generate(gCtx, ct)

			mu.Lock()
			out.MergeInto(result)
			mu.Unlock()

			r.emitProgress(string(ct), CategoryGeneration,
				fmt.Sprintf("Generated %s content", ct), nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("content generation aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("content generation aborted: %w", err)
	}
	return result, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func connectStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
