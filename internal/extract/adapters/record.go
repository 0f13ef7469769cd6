package adapters

import (
	"path/filepath"
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/extract"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// RecordAdapter reads a page store that was saved as JSON
type RecordAdapter struct{}

// NewRecordAdapter creates a new record adapter
func NewRecordAdapter() *RecordAdapter {
	return &RecordAdapter{}
}

// Name returns the adapter name
func (a *RecordAdapter) Name() string {
	return "ugjson"
}

// CanHandle accepts .json files and content that starts with a JSON object
func (a *RecordAdapter) CanHandle(path string, content string) bool {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Extract parses the store JSON
func (a *RecordAdapter) Extract(path string, content string) (*model.Song, error) {
	rec, err := extract.ParseRecord(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	return &model.Song{
		Title:   rec.Title,
		Artist:  rec.Artist,
		Content: rec.Content,
	}, nil
}
