package adapters

import (
	"path/filepath"
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/extract"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
	"golang.org/x/net/html"
)

// PageAdapter extracts the song from a saved Ultimate-Guitar HTML page
type PageAdapter struct {
	BaseAdapter
}

// NewPageAdapter creates a new page adapter
func NewPageAdapter() *PageAdapter {
	return &PageAdapter{}
}

// Name returns the adapter name
func (a *PageAdapter) Name() string {
	return "ugpage"
}

// CanHandle accepts .html/.htm files and content that looks like markup
func (a *PageAdapter) CanHandle(path string, content string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// Extract finds the page store, either in the data-content attribute of the
// js-store element or assigned to window.UGAPP.store.page in a script
func (a *PageAdapter) Extract(path string, content string) (*model.Song, error) {
	doc, err := a.ParseHTML(content)
	if err != nil {
		return nil, err
	}

	for _, raw := range a.storeCandidates(doc) {
		rec, err := extract.ParseRecord(raw)
		if err != nil {
			if rec != nil {
				return nil, err
			}
			continue
		}
		return &model.Song{
			Title:   rec.Title,
			Artist:  rec.Artist,
			Content: rec.Content,
		}, nil
	}

	return nil, extract.ErrNoRecord
}

// storeCandidates returns every JSON blob on the page that may hold the
// store: the js-store attribute first, then script assignments in document order
func (a *PageAdapter) storeCandidates(doc *html.Node) []string {
	var candidates []string

	store := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && a.HasClass(n, "js-store")
	})
	if store != nil {
		if raw := a.GetAttribute(store, "data-content"); raw != "" {
			candidates = append(candidates, raw)
		}
	}

	scripts := a.FindAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script"
	})
	for _, script := range scripts {
		if raw, ok := extract.FindStoreAssignment(a.ExtractText(script)); ok {
			candidates = append(candidates, raw)
		}
	}

	return candidates
}
