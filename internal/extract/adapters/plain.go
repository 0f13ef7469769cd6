package adapters

import (
	"path/filepath"
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// PlainAdapter is the fallback adapter: the whole input is the chord sheet
type PlainAdapter struct{}

// NewPlainAdapter creates a new plain adapter
func NewPlainAdapter() *PlainAdapter {
	return &PlainAdapter{}
}

// Name returns the adapter name
func (a *PlainAdapter) Name() string {
	return "plain"
}

// CanHandle always returns true (fallback adapter)
func (a *PlainAdapter) CanHandle(path string, content string) bool {
	return true
}

// Extract uses the content as is and derives a title from the file name
func (a *PlainAdapter) Extract(path string, content string) (*model.Song, error) {
	return &model.Song{
		Title:   titleFromPath(path),
		Content: content,
	}, nil
}

// titleFromPath turns "wish_you_were_here.txt" into "wish you were here"
func titleFromPath(path string) string {
	if path == "" || path == "-" {
		return ""
	}

	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	// De-slugify: replace underscores and hyphens with spaces
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")

	return strings.Join(strings.Fields(base), " ")
}
