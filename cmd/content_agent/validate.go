package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a generation result JSON file",
	Long: `Checks a JSON file written by generate --json against the embedded generation result schema.
Use --schema to pick another embedded schema (company_profile, email_item, ...) or a schema file
path ending in .json. Pass --json - to read the document from stdin.`,
	RunE: runValidate,
}

var (
	validateJSONPath string
	validateSchema   string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Path to the JSON file to validate, or - for stdin (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", schemas.GenerationResult, "Embedded schema name or schema file path")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := validateDocument(cmd.InOrStdin(), validateSchema, validateJSONPath)
	if err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s matches %s\n", validateJSONPath, validateSchema)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stderr, "Validation failed:\n%s", validationErr.Error())
		return fmt.Errorf("%s does not match %s", validateJSONPath, validateSchema)
	}
	return err
}

// validateDocument checks jsonPath (or stdin for "-") against an embedded schema name
// or a schema file on disk.
func validateDocument(stdin io.Reader, schema, jsonPath string) error {
	isFile := strings.HasSuffix(schema, ".json")
	if isFile {
		resolved := schemas.ResolveSchemaPath(schema)
		if resolved == "" {
			return fmt.Errorf("schema file not found: %s", schema)
		}
		schema = resolved
	}

	if jsonPath != "-" {
		if isFile {
			return schemas.ValidateJSON(schema, jsonPath)
		}
		return schemas.ValidateFile(schema, jsonPath)
	}

	document, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	var schemaContent []byte
	if isFile {
		schemaContent, err = os.ReadFile(schema)
	} else {
		schemaContent, err = schemas.Load(schema)
	}
	if err != nil {
		return err
	}
	return schemas.ValidateJSONString(string(schemaContent), string(document))
}
