package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/config"
	"github.com/jonathan/content-generator/internal/observability"
	"github.com/jonathan/content-generator/internal/pipeline"
	"github.com/jonathan/content-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full campaign content workbook",
	Long: `Scrapes the client website, extracts text from the supplied documents, runs the email,
LinkedIn, Facebook, Google Search, Google Display and reasoning generators and writes
<company>_lead_content.xlsx to the output directory.

Configuration can be loaded from a JSON file using --config. Command-line arguments override
config file values, which override CONTENTGEN_* environment variables.`,
	RunE: runGenerate,
}

var (
	genConfigPath   string
	genURL          string
	genFiles        []string
	genObjective    string
	genObjectiveURL string
	genAssetURL     string
	genPieces       int
	genOutputDir    string
	genProvider     string
	genModel        string
	genAPIKey       string
	genConcurrency  int
	genUseBrowser   bool
	genJSON         bool
	genVerbose      bool
	genDatabaseURL  string
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genURL, "url", "u", "", "Client website URL; https:// is added when no scheme is given")
	generateCmd.Flags().StringArrayVarP(&genFiles, "file", "f", nil, "PDF or PPTX document to ingest (repeatable)")
	generateCmd.Flags().StringVar(&genObjective, "objective", "", "Lead objective: \"Demo Booking\" or \"Sales Meeting\"")
	generateCmd.Flags().StringVar(&genObjectiveURL, "objective-url", "", "Destination URL for the lead objective")
	generateCmd.Flags().StringVar(&genAssetURL, "asset-url", "", "Optional downloadable asset URL (whitepaper, guide)")
	generateCmd.Flags().IntVarP(&genPieces, "pieces", "n", 0, "Emails, and ads per objective (10-20, default 10)")
	generateCmd.Flags().StringVarP(&genOutputDir, "out", "o", "", "Output directory (default: current directory)")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "Model provider: openai or gemini (default openai)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Provider model name (default depends on provider)")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Provider API key (defaults to OPENAI_API_KEY or GEMINI_API_KEY)")
	generateCmd.Flags().IntVar(&genConcurrency, "concurrency", 0, "Generators run at once (1-6, default 1)")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Use headless browser for JS-heavy sites (requires Chrome)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Also write the raw generation result as JSON next to the workbook")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL for run history (optional)")

	rootCmd.AddCommand(generateCmd)
}

// generateFlags returns a Config holding only the flags set on cmd.
func generateFlags(cmd *cobra.Command) config.Config {
	var cfg config.Config
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.WebsiteURL = genURL
	}
	if flags.Changed("file") {
		cfg.Files = genFiles
	}
	if flags.Changed("objective") {
		cfg.LeadObjectiveType = genObjective
	}
	if flags.Changed("objective-url") {
		cfg.LeadObjectiveURL = genObjectiveURL
	}
	if flags.Changed("asset-url") {
		cfg.DownloadableAssetURL = genAssetURL
	}
	if flags.Changed("pieces") {
		cfg.Pieces = genPieces
	}
	if flags.Changed("out") {
		cfg.OutputDir = genOutputDir
	}
	if flags.Changed("provider") {
		cfg.Provider = genProvider
	}
	if flags.Changed("model") {
		cfg.Model = genModel
	}
	if flags.Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = genConcurrency
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if flags.Changed("json") {
		cfg.WriteJSON = genJSON
	}
	if flags.Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	persistentOverrides(cmd, &cfg)
	return cfg
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(genConfigPath, generateFlags(cmd), genVerbose)
	if err != nil {
		return err
	}

	// Validate before any network activity
	if err := checkWebsiteURL(cfg.WebsiteURL); err != nil {
		return err
	}
	if cfg.LeadObjectiveType == "" {
		return fmt.Errorf("--objective is required (Demo Booking or Sales Meeting)")
	}
	if cfg.LeadObjectiveURL == "" {
		return fmt.Errorf("--objective-url is required (via flag or config)")
	}
	if objective, ok := types.ParseLeadObjectiveType(cfg.LeadObjectiveType); ok {
		cfg.LeadObjectiveType = string(objective)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	goals := pipeline.Goals(cfg)
	if err := goals.Validate(); err != nil {
		return fmt.Errorf("invalid campaign goals: %w", err)
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Out:     os.Stdout,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nRun ID: %s\n", res.RunID)
	_, _ = fmt.Fprintf(os.Stdout, "Report: %s\n", res.WorkbookPath)
	if res.JSONPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "JSON: %s\n", res.JSONPath)
	}
	return nil
}
