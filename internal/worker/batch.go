package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// Converter defines the interface for converting one input file
type Converter interface {
	ConvertFile(ctx context.Context, path string) (*model.Conversion, error)
}

// ConvertJob represents a file conversion job
type ConvertJob struct {
	Path      string
	Converter Converter
}

// Execute executes the conversion job
func (j *ConvertJob) Execute(ctx context.Context) Result {
	conv, err := j.Converter.ConvertFile(ctx, j.Path)
	if err != nil {
		return &ConvertResult{
			Path:  j.Path,
			Error: err,
		}
	}
	return &ConvertResult{
		Path:       j.Path,
		Conversion: conv,
	}
}

// Skip records that the job was not run, with the reason
func (j *ConvertJob) Skip(err error) Result {
	return &ConvertResult{
		Path:  j.Path,
		Error: fmt.Errorf("not converted: %w", err),
	}
}

// ConvertResult represents the result of a conversion job
type ConvertResult struct {
	Path       string
	Conversion *model.Conversion
	Error      error
}

// GetError returns the error from the conversion result
func (r *ConvertResult) GetError() error {
	return r.Error
}

// BatchProcessor converts multiple files concurrently
type BatchProcessor struct {
	converter   Converter
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(converter Converter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		converter:   converter,
		concurrency: concurrency,
	}
}

// ProcessPaths converts the files concurrently. There is exactly one result
// per path, in the order of paths; paths not reached before ctx ends carry
// the context error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ConvertResult {
	if len(paths) == 0 {
		return []*ConvertResult{}
	}

	// Create worker pool
	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	// Submit jobs
	for _, path := range paths {
		pool.Submit(&ConvertJob{
			Path:      path,
			Converter: b.converter,
		})
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	convResults := make([]*ConvertResult, len(results))
	for i, result := range results {
		cr, ok := result.(*ConvertResult)
		if !ok {
			cr = &ConvertResult{Path: paths[i], Error: result.GetError()}
		}
		convResults[i] = cr
	}

	return convResults
}

// ProcessFile reads input paths from a list file and converts them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ConvertResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads input paths from a file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	baseDir := filepath.Dir(listPath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
