package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/config"
	"github.com/jonathan/content-generator/internal/pipeline"
	"github.com/jonathan/content-generator/internal/research"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a website and print the extracted company profile",
	Long:  "Fetches the client website, extracts its visible text and asks the model for a structured company profile, printed as JSON.",
	RunE:  runScrape,
}

var (
	scrapeURL        string
	scrapeOutput     string
	scrapeProvider   string
	scrapeAPIKey     string
	scrapeUseBrowser bool
	scrapeTextOnly   bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "Client website URL (required)")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "out", "o", "", "Write the profile JSON to this file instead of stdout")
	scrapeCmd.Flags().StringVar(&scrapeProvider, "provider", "", "Model provider: openai or gemini (default openai)")
	scrapeCmd.Flags().StringVar(&scrapeAPIKey, "api-key", "", "Provider API key (defaults to OPENAI_API_KEY or GEMINI_API_KEY)")
	scrapeCmd.Flags().BoolVar(&scrapeUseBrowser, "use-browser", false, "Use headless browser for JS-heavy sites (requires Chrome)")
	scrapeCmd.Flags().BoolVar(&scrapeTextOnly, "text-only", false, "Print the capped page text without calling the model")

	if err := scrapeCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	flagCfg := config.Config{WebsiteURL: scrapeURL}
	if cmd.Flags().Changed("provider") {
		flagCfg.Provider = scrapeProvider
	}
	if cmd.Flags().Changed("api-key") {
		flagCfg.APIKey = scrapeAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		flagCfg.UseBrowser = scrapeUseBrowser
	}
	persistentOverrides(cmd, &flagCfg)

	cfg, err := resolveConfig("", flagCfg, false)
	if err != nil {
		return err
	}
	if err := checkWebsiteURL(cfg.WebsiteURL); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	if scrapeTextOnly {
		scraper := research.NewScraper(nil, pipeline.ScraperOptions(cfg, logger, nil))
		text, err := scraper.FetchPageText(ctx, cfg.WebsiteURL)
		if err != nil {
			return err
		}
		return writeOutput(scrapeOutput, []byte(text+"\n"))
	}

	if err := requireAPIKey(cfg); err != nil {
		return err
	}
	gateway, err := pipeline.NewGateway(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = gateway.Close() }()

	scraper := research.NewScraper(gateway, pipeline.ScraperOptions(cfg, logger, nil))
	profile, err := scraper.ScrapeCompany(ctx, cfg.WebsiteURL)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal company profile: %w", err)
	}
	return writeOutput(scrapeOutput, append(data, '\n'))
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
