// Package extract locates the song record that Ultimate-Guitar embeds in its
// pages and reads title, artist and chord sheet out of it.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoRecord means the input holds no recognisable song record
	ErrNoRecord = errors.New("no song record found")
	// ErrNoContent means a record was found but it has no chord sheet
	ErrNoContent = errors.New("song record has no tab content")
)

// Record is the subset of the page store the converter needs
type Record struct {
	Title   string
	Artist  string
	Content string
}

// dataRoots are the paths where the page "data" object may sit, depending on
// whether the whole store, the page object or the data object was saved
var dataRoots = []string{"store.page.data", "page.data", "data", "@this"}

const (
	contentPath = "tab_view.wiki_tab.content"
	titlePath   = "tab.song_name"
	artistPath  = "tab.artist_name"
)

// storeAssignment matches the script statement that assigns the page store
var storeAssignment = regexp.MustCompile(`window\.UGAPP\.store\.page\s*=\s*`)

// ParseRecord reads a song record from the store JSON
func ParseRecord(raw string) (*Record, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNoRecord)
	}

	for _, root := range dataRoots {
		data := gjson.Get(raw, root)
		if !data.IsObject() {
			continue
		}

		tab := data.Get("tab")
		content := data.Get(contentPath)
		if !tab.Exists() && !content.Exists() {
			continue
		}

		rec := &Record{
			Title:   data.Get(titlePath).String(),
			Artist:  data.Get(artistPath).String(),
			Content: content.String(),
		}
		if strings.TrimSpace(rec.Content) == "" {
			return rec, ErrNoContent
		}
		return rec, nil
	}

	return nil, ErrNoRecord
}

// FindStoreAssignment extracts the JSON object assigned to
// window.UGAPP.store.page in script text
func FindStoreAssignment(script string) (string, bool) {
	loc := storeAssignment.FindStringIndex(script)
	if loc == nil {
		return "", false
	}
	return firstJSONValue(script[loc[1]:])
}

// firstJSONValue returns the JSON object at the start of s, ignoring whatever
// follows it (typically ";" and more script)
func firstJSONValue(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&raw); err != nil {
		return "", false
	}
	return string(raw), true
}
