package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chordpro"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/pipeline"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/worker"
)

var batchTimeout time.Duration

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Convert many songs listed in a file in parallel",
	Long: `Batch converts multiple songs concurrently:
- Read input paths from a list file (one per line, # starts a comment)
- Relative paths are resolved against the list file's directory
- Convert songs in parallel with a configurable worker count
- Write one .pro file per song into the output directory

Example:
  songbook batch songs.txt
  songbook batch songs.txt --concurrency 8 --output-dir ./songbook
  songbook batch songs.txt --transpose 2 --timeout 1m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addConvertFlags(batchCmd)
	batchCmd.Flags().Int("concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := chordpro.ValidateOffset(cfg.Convert.Transpose); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Songbook Batch Conversion\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Transpose:    %+d\n", cfg.Convert.Transpose)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg, newLogger(cfg))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Converting songs with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	paths, err := worker.ReadPathsFromFile(file)
	if err != nil {
		return fmt.Errorf("read paths: %w", err)
	}

	results := processor.ProcessPaths(ctx, paths)
	if len(results) != len(paths) {
		return fmt.Errorf("batch returned %d results for %d inputs", len(results), len(paths))
	}

	successCount := 0
	failureCount := 0
	written := make(map[string]string)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		conv := result.Conversion
		if prev, ok := written[conv.FileName]; ok {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %s already written from %s\n", result.Path, conv.FileName, prev)
			continue
		}

		path, err := pipeline.WriteConversion(conv, cfg.Output.Dir, cfg.Output.Overwrite)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}
		written[conv.FileName] = result.Path

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%d chords)\n", conv.Song.Title, path, conv.Chords)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d songs\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 && ctx.Err() != nil {
		return fmt.Errorf("batch stopped early, %d of %d songs not converted: %w", failureCount, len(paths), ctx.Err())
	}
	if failureCount > 0 {
		return fmt.Errorf("%d of %d conversions failed", failureCount, len(paths))
	}
	return nil
}
