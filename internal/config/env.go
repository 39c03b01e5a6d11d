package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. CONTENTGEN_PIECES.
const EnvPrefix = "CONTENTGEN"

// FromEnv reads CONTENTGEN_* configuration overrides from the environment.
func FromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		WebsiteURL:            v.GetString("website_url"),
		LeadObjectiveType:     v.GetString("lead_objective_type"),
		LeadObjectiveURL:      v.GetString("lead_objective_url"),
		DownloadableAssetURL:  v.GetString("downloadable_asset_url"),
		Pieces:                v.GetInt("pieces"),
		OutputDir:             v.GetString("output_dir"),
		Provider:              strings.ToLower(v.GetString("provider")),
		Model:                 v.GetString("model"),
		APIKey:                v.GetString("api_key"),
		MaxScrapeTokens:       v.GetInt("max_scrape_tokens"),
		MaxContentTokens:      v.GetInt("max_content_tokens"),
		ExtractionTemperature: v.GetFloat64("extraction_temperature"),
		GenerationTemperature: v.GetFloat64("generation_temperature"),
		FetchTimeoutSeconds:   v.GetInt("fetch_timeout_seconds"),
		RequestTimeoutSeconds: v.GetInt("request_timeout_seconds"),
		RequestsPerMinute:     v.GetInt("requests_per_minute"),
		Concurrency:           v.GetInt("concurrency"),
		UseBrowser:            v.GetBool("use_browser"),
		DatabaseURL:           v.GetString("database_url"),
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
		MetricsFile:           v.GetString("metrics_file"),
	}
	if files := v.GetString("files"); files != "" {
		cfg.Files = strings.Split(files, ",")
	}

	return cfg
}

// Resolve layers configuration sources: flags win over the config file, which wins
// over the environment, which wins over built-in defaults.
func Resolve(flags Config, file *Config) Config {
	env := FromEnv()
	base := env.MergeWithDefaults(Defaults())
	if file != nil {
		base = file.MergeWithDefaults(base)
	}
	merged := flags.MergeWithDefaults(base)

	// Provider keys are only consulted once the provider is settled.
	if merged.APIKey == "" {
		merged.APIKey = apiKeyFor(merged.Provider)
	}
	return merged
}

// apiKeyFor reads OPENAI_API_KEY or GEMINI_API_KEY.
func apiKeyFor(provider string) string {
	v := viper.New()
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	if provider == ProviderGemini {
		return v.GetString("gemini_api_key")
	}
	return v.GetString("openai_api_key")
}
