// Package main implements the content_agent CLI for generating marketing campaign content.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "content_agent",
	Short: "Campaign content generator",
	Long: `content_agent scrapes a client website, reads supporting PDF and PPTX documents and
generates emails, LinkedIn and Facebook ads, Google Search and Display copy and a reasoning
statement, compiled into one XLSX workbook.`,
	SilenceUsage: true,
}

var (
	logLevel    string
	logFormat   string
	metricsFile string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (default console)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
}

// newLogger builds the zap logger for a command, falling back to a no-op logger.
func newLogger(level, format string) *zap.Logger {
	logger, err := logging.New(level, format)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
