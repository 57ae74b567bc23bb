package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a parse result JSON file against a schema",
	Long: `Validate a JSON file written by "parse" or "parse-batch". The embedded ParsedResume
schema is used unless --schema names another JSON Schema file.`,
	RunE: runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to JSON file to validate (required)")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to JSON Schema file (default: embedded ParsedResume schema)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateInputFile, validateSchemaFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", validateInputFile)
	return nil
}

func validateFile(path, schemaPath string) error {
	if schemaPath != "" {
		return schemas.ValidateJSON(schemaPath, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return schemas.ValidateParsedResumeJSON(data)
}
