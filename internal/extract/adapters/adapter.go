package adapters

import (
	"fmt"
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
	"golang.org/x/net/html"
)

// Adapter defines the interface for input-format specific extractors
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given file and content
	CanHandle(path string, content string) bool

	// Extract locates the song in the content
	Extract(path string, content string) (*model.Song, error)
}

// Registry manages input adapters
type Registry struct {
	adapters []Adapter
	fallback Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	// Register built-in adapters
	registry.Register(NewPageAdapter())
	registry.Register(NewRecordAdapter())

	// Set plain adapter as fallback
	registry.fallback = NewPlainAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the first adapter that can handle the input
func (r *Registry) FindAdapter(path string, content string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(path, content) {
			return adapter
		}
	}

	return r.fallback
}

// Extract runs the matching adapter and records its name on the song
func (r *Registry) Extract(path string, content string) (*model.Song, error) {
	adapter := r.FindAdapter(path, content)
	song, err := adapter.Extract(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s adapter: %w", adapter.Name(), err)
	}
	song.Source = path
	song.Adapter = adapter.Name()
	return song, nil
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// ParseHTML parses HTML string into a node tree
func (b *BaseAdapter) ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// ExtractText concatenates the raw text of a node's children.
// Script bodies are text nodes, so this also returns script source.
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(b.ExtractText(c))
	}
	return buf.String()
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}
