package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/config"
)

// normalizeURL trims the input and adds https:// when no scheme was given.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// checkWebsiteURL rejects URLs that are not absolute http(s) URLs.
func checkWebsiteURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("--url is required (via flag or config)")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid website URL %q: must be an http or https URL", raw)
	}
	return nil
}

// persistentOverrides copies the root logging and metrics flags into cfg when they were set.
func persistentOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
}

// resolveConfig loads the optional config file and layers flags, file, environment and
// defaults. Only explicitly set flags reach flagCfg.
func resolveConfig(configPath string, flagCfg config.Config, verbose bool) (config.Config, error) {
	var fileCfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = loaded
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	cfg := config.Resolve(flagCfg, fileCfg)
	cfg.WebsiteURL = normalizeURL(cfg.WebsiteURL)
	return cfg, nil
}

func requireAPIKey(cfg config.Config) error {
	if cfg.APIKey != "" {
		return nil
	}
	if cfg.Provider == config.ProviderGemini {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	return fmt.Errorf("OPENAI_API_KEY environment variable or --api-key flag is required")
}
