// Package pipeline ties adapters, the chord rewriter and the output writer together.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/cache"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chordpro"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/extract/adapters"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/logging"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// Pipeline orchestrates the conversion of one input
type Pipeline struct {
	registry *adapters.Registry
	rewriter *chordpro.Rewriter
	cache    cache.Cache
	logger   logging.Logger
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	return &Pipeline{
		registry: adapters.NewRegistry(),
		rewriter: chordpro.NewRewriter(cfg.Markup),
		cache:    c,
		logger:   logger,
		config:   cfg,
	}
}

// ConvertFile reads the file at path and converts it
func (p *Pipeline) ConvertFile(ctx context.Context, path string) (*model.Conversion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.ConvertSource(ctx, path, string(data))
}

// ConvertSource converts content that was read from path.
// path is used for adapter selection and for naming; it need not exist.
func (p *Pipeline) ConvertSource(ctx context.Context, path string, content string) (*model.Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	offset := p.config.Convert.Transpose
	if err := chordpro.ValidateOffset(offset); err != nil {
		return nil, err
	}

	key := p.cacheKey(path, content)
	if conv, ok := p.cached(key); ok {
		p.logger.Debug("cache hit", "source", path)
		return conv, nil
	}

	// 1. Locate the song
	song, err := p.registry.Extract(path, content)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	p.applyOverrides(song)

	// 2. Rewrite and assemble
	output, report := p.rewriter.Convert(song.Content, song.Title, song.Artist, offset)

	conv := &model.Conversion{
		Song:     song,
		Output:   output,
		Offset:   offset,
		Chords:   report.Chords,
		Unparsed: report.Unparsed,
		FileName: OutputName(song, p.config.Output.Extension),
	}

	for _, token := range report.Unparsed {
		p.logger.Warn("chord not transposed", "source", path, "token", token)
	}
	p.logger.Debug("converted",
		"source", path,
		"adapter", song.Adapter,
		"title", song.Title,
		"chords", report.Chords,
		"offset", offset,
	)

	p.store(key, conv)
	return conv, nil
}

// applyOverrides replaces title and artist with configured values
func (p *Pipeline) applyOverrides(song *model.Song) {
	if p.config.Convert.Title != "" {
		song.Title = p.config.Convert.Title
	}
	if p.config.Convert.Artist != "" {
		song.Artist = p.config.Convert.Artist
	}
}

func (p *Pipeline) cacheKey(path, content string) string {
	d := p.rewriter.Delimiters()
	return cache.Key(content, p.config.Convert.Transpose,
		path,
		p.config.Convert.Title,
		p.config.Convert.Artist,
		p.config.Output.Extension,
		d.ChordOpen, d.ChordClose, d.TabOpen, d.TabClose, d.TargetOpen, d.TargetClose,
	)
}

func (p *Pipeline) cached(key string) (*model.Conversion, bool) {
	data, found := p.cache.Get(key)
	if !found {
		return nil, false
	}
	var conv model.Conversion
	if err := json.Unmarshal(data, &conv); err != nil {
		_ = p.cache.Delete(key)
		return nil, false
	}
	conv.Cached = true
	return &conv, true
}

func (p *Pipeline) store(key string, conv *model.Conversion) {
	data, err := json.Marshal(conv)
	if err != nil {
		p.logger.Warn("cache store failed", "error", err)
		return
	}
	if err := p.cache.Set(key, data, 0); err != nil {
		p.logger.Warn("cache store failed", "error", err)
	}
}
