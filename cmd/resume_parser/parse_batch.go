package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var parseBatchCmd = &cobra.Command{
	Use:   "parse-batch",
	Short: "Parse every résumé in a directory",
	Long: `Parse every supported file (.pdf, .docx, .html, .txt, .md) in --dir concurrently and write
<name>.json for each one into --out-dir. A failing file is reported but does not stop the batch;
the command exits non-zero if any file failed.`,
	RunE: runParseBatch,
}

var (
	batchDir        string
	batchOutDir     string
	batchWorkers    int
	batchMeta       bool
	batchValidate   bool
	batchSchemaFile string
	batchConfigFile string
)

func init() {
	parseBatchCmd.Flags().StringVar(&batchDir, "dir", "", "Directory of résumés to parse (required)")
	parseBatchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory to write JSON results into (required)")
	parseBatchCmd.Flags().IntVar(&batchWorkers, "workers", config.DefaultWorkers, "Number of files parsed concurrently")
	parseBatchCmd.Flags().BoolVar(&batchMeta, "meta", false, "Also write <name>.meta.json for each file")
	parseBatchCmd.Flags().BoolVar(&batchValidate, "validate", false, "Validate each result against the ParsedResume schema")
	parseBatchCmd.Flags().StringVar(&batchSchemaFile, "schema", "", "Validate each result against this JSON Schema file instead (implies --validate)")
	parseBatchCmd.Flags().StringVar(&batchConfigFile, "config", "", "Path to config file (JSON or YAML)")

	for _, name := range []string{"dir", "out-dir"} {
		if err := parseBatchCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark flag as required: %v", err))
		}
	}

	rootCmd.AddCommand(parseBatchCmd)
}

// batchInput is one file to parse and the base name its outputs are written under.
type batchInput struct {
	path string
	name string
}

// batchOptions controls a batch run.
type batchOptions struct {
	outDir   string
	workers  int
	withMeta bool
	check    resultValidator
	tracer   observability.Tracer
}

// batchSummary counts batch outcomes. Failures maps input path to its error.
type batchSummary struct {
	Total     int
	Succeeded int
	Failures  map[string]error
}

func runParseBatch(cmd *cobra.Command, _ []string) error {
	if batchConfigFile != "" && !cmd.Flags().Changed("workers") {
		cfg, err := config.Load(batchConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		batchWorkers = cfg.Workers
	}

	check, err := newResultValidator(batchValidate, batchSchemaFile)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(batchDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no supported files found in %s", batchDir)
	}

	summary, err := parseBatch(cmd.Context(), inputs, batchOptions{
		outDir:   batchOutDir,
		workers:  batchWorkers,
		withMeta: batchMeta,
		check:    check,
		tracer:   observability.NewLogTracer(logger.Logger),
	})
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(summary.Failures))
	for path := range summary.Failures {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAILED %s: %v\n", path, summary.Failures[path])
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d/%d files into %s\n", summary.Succeeded, summary.Total, batchOutDir)

	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(summary.Failures), summary.Total)
	}
	return nil
}

// collectInputs lists the supported files directly inside dir, sorted by name. Files that
// share a stem (resume.pdf, resume.docx) keep their extension in the output name.
func collectInputs(dir string) ([]batchInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []batchInput
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !ingestion.Supported(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[name] {
			name = entry.Name()
		}
		seen[name] = true
		inputs = append(inputs, batchInput{path: filepath.Join(dir, entry.Name()), name: name})
	}
	return inputs, nil
}

// parseBatch parses inputs with at most opts.workers running at once. Per-file failures are
// collected in the summary; the returned error is only set when the context is cancelled.
func parseBatch(ctx context.Context, inputs []batchInput, opts batchOptions) (batchSummary, error) {
	if opts.workers < 1 {
		opts.workers = 1
	}
	parser := parsing.New(parsing.WithTracer(opts.tracer))

	summary := batchSummary{Total: len(inputs), Failures: make(map[string]error)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for _, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := parseFile(parser, in, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failures[in.path] = err
				logger.Ctx(ctx).Warn().Str("file", in.path).Err(err).Msg("failed to parse file")
				return nil
			}
			summary.Succeeded++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("batch interrupted: %w", err)
	}
	return summary, nil
}

func parseFile(parser *parsing.Parser, in batchInput, opts batchOptions) error {
	doc, err := ingestion.ReadFile(in.path)
	if err != nil {
		return err
	}

	_, jsonBytes, err := parseDocument(parser, doc, opts.check)
	if err != nil {
		return err
	}

	var meta *ingestion.Metadata
	if opts.withMeta {
		meta = &doc.Metadata
	}
	return ingestion.WriteOutput(opts.outDir, in.name, jsonBytes, meta)
}
