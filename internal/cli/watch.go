package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chordpro"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/logging"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/pipeline"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Convert songs as they are saved into a directory",
	Long: `Watch converts every song file created or changed in a directory until
interrupted. Files whose content has not changed since the last conversion
are skipped.

Example:
  songbook watch ~/Downloads/ug --output-dir ~/Songbook`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addConvertFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := chordpro.ValidateOffset(cfg.Convert.Transpose); err != nil {
		return err
	}
	// Unchanged files are detected through the conversion cache
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = 0

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cfg)
	p := pipeline.NewPipeline(cfg, logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("watching", "dir", dir, "output", cfg.Output.Dir, "transpose", cfg.Convert.Transpose)

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching", "dir", dir)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !watchable(event.Name, cfg) {
				continue
			}
			convertWatched(ctx, p, event.Name, cfg, logger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// watchable reports whether path is an input worth converting
func watchable(path string, cfg *model.Config) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	if strings.EqualFold(filepath.Ext(base), pipeline.NormalizeExtension(cfg.Output.Extension)) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// convertWatched converts one changed file and writes it unless the content
// was already converted
func convertWatched(ctx context.Context, p *pipeline.Pipeline, path string, cfg *model.Config, logger logging.Logger) {
	conv, err := p.ConvertFile(ctx, path)
	if err != nil {
		logger.Error("conversion failed", "source", path, "error", err)
		return
	}
	if conv.Cached {
		logger.Debug("unchanged, skipped", "source", path)
		return
	}

	out, err := pipeline.WriteConversion(conv, cfg.Output.Dir, cfg.Output.Overwrite)
	if err != nil {
		logger.Error("write failed", "source", path, "error", err)
		return
	}
	logger.Info("converted", "source", path, "output", out, "chords", conv.Chords)
}
