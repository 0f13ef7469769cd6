package chordpro

import (
	"fmt"
	"strings"
)

// MaxOffset bounds the semitone offset accepted from users
const MaxOffset = 11

// Assemble prepends the title and artist header lines and a blank line to body.
// Values are written as given; empty values still produce their lines.
func Assemble(title, artist, body string) string {
	var b strings.Builder
	b.Grow(len(title) + len(artist) + len(body) + 18)
	b.WriteString("title: ")
	b.WriteString(title)
	b.WriteString("\nartist: ")
	b.WriteString(artist)
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

// Convert rewrites raw Ultimate-Guitar markup, transposed by offset
// semitones, into a ChordPro document with a title/artist header
func Convert(raw, title, artist string, offset int) string {
	return Assemble(title, artist, Rewrite(raw, offset))
}

// Convert is the package-level Convert using the rewriter's delimiters,
// also returning the rewrite report
func (r *Rewriter) Convert(raw, title, artist string, offset int) (string, Report) {
	body, report := r.RewriteReport(raw, offset)
	return Assemble(title, artist, body), report
}

// ValidateOffset checks that a user-supplied transposition is within one octave
func ValidateOffset(offset int) error {
	if offset < -MaxOffset || offset > MaxOffset {
		return fmt.Errorf("transpose offset %d out of range [-%d, %d]", offset, MaxOffset, MaxOffset)
	}
	return nil
}
