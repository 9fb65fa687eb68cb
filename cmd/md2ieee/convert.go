package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"md2ieee"
	"md2ieee/internal/config"
	"md2ieee/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkup         = errors.New("failed to read input file")
	ErrWriteDOCX          = errors.New("failed to write DOCX file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input md2ieee.Input) (*md2ieee.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2ieee.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []md2ieee.Warning
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	paper     *md2ieee.PaperSettings
	modelOnly bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, pool Pool, deps *Dependencies) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	if flags.suffix != "" {
		cfg.Output.Suffix = flags.suffix
	}

	// Resolve input paths
	inputPaths := positionalArgs
	if len(inputPaths) == 0 {
		if cfg.Input.DefaultDir == "" {
			return ErrNoInput
		}
		inputPaths = []string{cfg.Input.DefaultDir}
	}

	// Resolve output directory
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	// Discover files to convert
	var files []FileToConvert
	for _, inputPath := range inputPaths {
		discovered, err := discoverFiles(inputPath, outputDir, cfg.Output.Suffix)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, discovered...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no markup files found in %s", strings.Join(inputPaths, ", "))
	}

	params := &conversionParams{
		paper:     buildPaperSettings(cfg),
		modelOnly: flags.modelOnly,
	}

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Print results
	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, deps)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2ieee.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2ieee.MaxPoolSize)
	}
	return nil
}

// buildPaperSettings creates md2ieee.PaperSettings from config.
// Returns nil when every field holds its default.
func buildPaperSettings(cfg *config.Config) *md2ieee.PaperSettings {
	p := cfg.Paper
	if p.FontFamily == "" && p.AuthorRowCapacity == 0 &&
		p.TitleSize == 0 && p.BodySize == 0 && p.AbstractSize == 0 && p.ReferenceSize == 0 {
		return nil
	}
	return &md2ieee.PaperSettings{
		FontFamily:    p.FontFamily,
		AuthorsPerRow: p.AuthorRowCapacity,
		TitleSize:     p.TitleSize,
		BodySize:      p.BodySize,
		AbstractSize:  p.AbstractSize,
		ReferenceSize: p.ReferenceSize,
	}
}

// discoverFiles finds all markup files to convert under inputPath.
func discoverFiles(inputPath, outputDir, suffix string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkupFile(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", suffix)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.IsMarkupFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, suffix)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the DOCX output path for a markup file.
// An outputDir ending in .docx names the output file directly; otherwise
// directory inputs mirror their relative layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, suffix string) string {
	if strings.HasSuffix(strings.ToLower(outputDir), ".docx") {
		return outputDir
	}

	if outputDir != "" && baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return fileutil.DeriveOutputPath(inputPath, filepath.Join(outputDir, filepath.Dir(relPath)), suffix)
		}
	}

	return fileutil.DeriveOutputPath(inputPath, outputDir, suffix)
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkup, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, md2ieee.Input{
		Markup:    string(content),
		Paper:     params.paper,
		ModelOnly: params.modelOnly,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Warnings = res.Warnings

	if params.modelOnly {
		result.OutputPath = ""
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- papers are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.DOCX, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteDOCX, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		for _, w := range r.Warnings {
			if quiet {
				break
			}
			if w.Line > 0 {
				fmt.Fprintf(deps.Stderr, "WARNING %s:%d: %s\n", r.InputPath, w.Line, w.Message)
			} else {
				fmt.Fprintf(deps.Stderr, "WARNING %s: %s\n", r.InputPath, w.Message)
			}
		}
		if quiet {
			continue
		}

		switch {
		case verbose:
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		case r.OutputPath != "":
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		default:
			fmt.Fprintf(deps.Stdout, "Parsed %s\n", r.InputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
