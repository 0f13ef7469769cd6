package chordpro

import (
	"strings"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chord"
)

// Report summarizes what a rewrite did
type Report struct {
	Chords   int      // Chord spans found
	Tabs     int      // Tab delimiters stripped
	Unparsed []string // Chord tokens passed through unchanged, in document order
}

// Rewriter rewrites chord markup using a fixed set of delimiters.
// A Rewriter holds no mutable state and is safe for concurrent use.
type Rewriter struct {
	delims Delimiters
}

// NewRewriter creates a rewriter for the given delimiters
func NewRewriter(d Delimiters) *Rewriter {
	return &Rewriter{delims: d}
}

// Delimiters returns the delimiters the rewriter uses
func (r *Rewriter) Delimiters() Delimiters {
	return r.delims
}

// Rewrite converts source chord markup in doc to the target markup,
// transposing parsed chords by semitones
func (r *Rewriter) Rewrite(doc string, semitones int) string {
	out, _ := r.RewriteReport(doc, semitones)
	return out
}

// RewriteReport is Rewrite plus a summary of the chords it handled.
// Tokens that do not parse are written back unchanged inside the target
// delimiters.
func (r *Rewriter) RewriteReport(doc string, semitones int) (string, Report) {
	var (
		b      strings.Builder
		report Report
	)
	b.Grow(len(doc))

	for _, span := range Scan(doc, r.delims) {
		switch span.Kind {
		case KindChord:
			report.Chords++
			token, ok := rewriteChord(span.Inner, semitones)
			if !ok {
				report.Unparsed = append(report.Unparsed, span.Inner)
			}
			b.WriteString(r.delims.TargetOpen)
			b.WriteString(token)
			b.WriteString(r.delims.TargetClose)
		case KindTab:
			report.Tabs++
		default:
			b.WriteString(span.Text(doc))
		}
	}

	return b.String(), report
}

// rewriteChord transposes a single chord token. It reports false and returns
// the token as is when the token does not parse.
func rewriteChord(token string, semitones int) (string, bool) {
	sym, err := chord.Parse(token)
	if err != nil {
		return token, false
	}
	return sym.Transpose(semitones).String(), true
}

// Rewrite converts doc with the default delimiters
func Rewrite(doc string, semitones int) string {
	return NewRewriter(DefaultDelimiters()).Rewrite(doc, semitones)
}
