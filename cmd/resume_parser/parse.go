package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one résumé into structured JSON",
	Long: `Parse a PDF, DOCX, HTML or text résumé into ParsedResume JSON.

Use "--in -" to read plain text from stdin. The JSON goes to --out, or to stdout when --out is not set.`,
	RunE: runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseMetaFile   string
	parseValidate   bool
	parseSchemaFile string
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to résumé file, or - for stdin (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseCmd.Flags().StringVar(&parseMetaFile, "meta", "", "Path to write extraction metadata JSON")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the output against the ParsedResume schema")
	parseCmd.Flags().StringVar(&parseSchemaFile, "schema", "", "Validate the output against this JSON Schema file instead (implies --validate)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a summary and stage trace to stderr")

	if err := parseCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	check, err := newResultValidator(parseValidate, parseSchemaFile)
	if err != nil {
		return err
	}

	doc, err := readInput(parseInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	recorder := &observability.Recorder{}
	var tracer observability.Tracer = observability.NopTracer{}
	if parseVerbose {
		tracer = observability.Multi(recorder, observability.NewLogTracer(logger.Logger.Level(zerolog.DebugLevel)))
	}

	result, jsonBytes, err := parseDocument(parsing.New(parsing.WithTracer(tracer)), doc, check)
	if err != nil {
		return err
	}

	if parseOutputFile == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := os.WriteFile(parseOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if parseMetaFile != "" {
		metaJSON, err := doc.Metadata.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if err := os.WriteFile(parseMetaFile, metaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write metadata file: %w", err)
		}
	}

	if parseVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintParsedResume(result)
		printer.PrintStages(recorder.Events())
	}

	if parseOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully parsed résumé\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", parseOutputFile)
	}
	return nil
}

// readInput loads a document from path. "-" reads plain text from stdin.
func readInput(path string, stdin io.Reader) (ingestion.Document, error) {
	if path != "-" {
		return ingestion.ReadFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return ingestion.Document{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return ingestion.ExtractText("", "text/plain", data)
}

// resultValidator checks encoded parse output. A nil resultValidator accepts everything.
type resultValidator func(data []byte) error

// newResultValidator returns the check selected by the validation flags. A schema file
// replaces the embedded ParsedResume schema.
func newResultValidator(validate bool, schemaPath string) (resultValidator, error) {
	if schemaPath != "" {
		content, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		return func(data []byte) error {
			return schemas.ValidateJSONString(string(content), string(data))
		}, nil
	}
	if validate {
		return schemas.ValidateParsedResumeJSON, nil
	}
	return nil, nil
}

// parseDocument parses doc and encodes the result as indented JSON. A result rejected by
// check is an error.
func parseDocument(parser *parsing.Parser, doc ingestion.Document, check resultValidator) (types.ParsedResume, []byte, error) {
	result := parser.Parse(doc.Text)

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if check != nil {
		if err := check(jsonBytes); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return result, nil, fmt.Errorf("parse result does not validate against schema: %w", err)
			}
			return result, nil, fmt.Errorf("could not validate parse result: %w", err)
		}
	}

	return result, jsonBytes, nil
}
