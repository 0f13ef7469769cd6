package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// DefaultExtension is the Songbook Pro file extension
const DefaultExtension = ".pro"

// ErrExists is returned when the output file exists and overwriting is off
var ErrExists = errors.New("output file already exists")

// filenameReplacer maps characters that are unsafe in file names to '_'
var filenameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// OutputName builds the output file name for a song: the title with spaces
// replaced by underscores, or a slug of the source file name when the song
// has no title
func OutputName(song *model.Song, ext string) string {
	ext = NormalizeExtension(ext)

	name := strings.Trim(filenameReplacer.Replace(strings.TrimSpace(song.Title)), "._")
	if name == "" {
		base := filepath.Base(song.Source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		name = slug.Make(base)
	}
	if name == "" {
		name = "song"
	}

	return truncateName(name, maxNameLen) + ext
}

// NormalizeExtension returns ext with a leading dot, or DefaultExtension when empty
func NormalizeExtension(ext string) string {
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// maxNameLen caps output names in bytes
const maxNameLen = 100

// truncateName cuts name to at most max bytes without splitting a rune
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// WriteConversion writes the converted document into dir and returns the path
func WriteConversion(conv *model.Conversion, dir string, overwrite bool) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path = filepath.Join(dir, conv.FileName)
	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := os.WriteFile(path, []byte(conv.Output), 0644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}
