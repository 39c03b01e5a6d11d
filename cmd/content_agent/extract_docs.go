package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/ingestion"
)

var extractDocsCmd = &cobra.Command{
	Use:   "extract-docs",
	Short: "Extract text from PDF and PPTX documents",
	Long:  "Reads the given documents in order and prints their combined text, separated by blank lines. Unsupported formats are skipped.",
	RunE:  runExtractDocs,
}

var (
	extractDocsFiles  []string
	extractDocsOutput string
)

func init() {
	extractDocsCmd.Flags().StringArrayVarP(&extractDocsFiles, "file", "f", nil, "PDF or PPTX document (repeatable, required)")
	extractDocsCmd.Flags().StringVarP(&extractDocsOutput, "out", "o", "", "Write the text to this file instead of stdout")

	if err := extractDocsCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractDocsCmd)
}

func runExtractDocs(_ *cobra.Command, _ []string) error {
	docs, err := ingestion.LoadDocuments(extractDocsFiles)
	if err != nil {
		return err
	}

	logger := newLogger(logLevel, logFormat)
	defer func() { _ = logger.Sync() }()

	text := ingestion.ExtractText(docs, logger)
	if text == "" {
		_, _ = fmt.Fprintln(os.Stderr, "No text extracted")
		return nil
	}
	return writeOutput(extractDocsOutput, []byte(text+"\n"))
}
