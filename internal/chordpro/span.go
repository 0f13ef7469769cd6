// Package chordpro rewrites Ultimate-Guitar chord markup into ChordPro text.
//
// A document is first partitioned into spans (Scan), then each span is
// rewritten independently and the results are concatenated in order.
package chordpro

import "strings"

// Delimiters configures the markup recognised in source text and written to
// the output. All matching is exact and case-sensitive.
type Delimiters struct {
	ChordOpen   string `yaml:"chord_open" mapstructure:"chord_open"`
	ChordClose  string `yaml:"chord_close" mapstructure:"chord_close"`
	TabOpen     string `yaml:"tab_open" mapstructure:"tab_open"`
	TabClose    string `yaml:"tab_close" mapstructure:"tab_close"`
	TargetOpen  string `yaml:"target_open" mapstructure:"target_open"`
	TargetClose string `yaml:"target_close" mapstructure:"target_close"`
}

// DefaultDelimiters returns the Ultimate-Guitar source tags and the ChordPro
// single-bracket target
func DefaultDelimiters() Delimiters {
	return Delimiters{
		ChordOpen:   "[ch]",
		ChordClose:  "[/ch]",
		TabOpen:     "[tab]",
		TabClose:    "[/tab]",
		TargetOpen:  "[",
		TargetClose: "]",
	}
}

// SpanKind classifies a span of the document
type SpanKind int

const (
	KindText  SpanKind = iota // Plain text, copied verbatim
	KindChord                 // Chord open tag, token, close tag
	KindTab                   // A single tab open or close tag
)

func (k SpanKind) String() string {
	switch k {
	case KindChord:
		return "chord"
	case KindTab:
		return "tab"
	default:
		return "text"
	}
}

// Span is a located piece of the document. Start and End are byte offsets.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Inner string // Chord token between the delimiters, chord spans only
}

// Text returns the source text the span covers
func (s Span) Text(doc string) string {
	return doc[s.Start:s.End]
}

// Scan partitions doc into spans in a single left-to-right pass.
// The spans are contiguous, non-overlapping and cover doc exactly.
// A chord open tag without a matching close tag (or with another open tag
// before its close) is plain text.
func Scan(doc string, d Delimiters) []Span {
	var spans []Span
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			spans = append(spans, Span{Kind: KindText, Start: textStart, End: end})
		}
	}

	// Next close and open tag at or after the current chord body.
	// -1 means there are no more; unknown until first needed.
	nextClose, nextOpen := unknownPos, unknownPos

	i := 0
	for i < len(doc) {
		switch {
		case hasTagAt(doc, i, d.ChordOpen):
			innerStart := i + len(d.ChordOpen)
			nextClose = advance(doc, nextClose, innerStart, d.ChordClose)
			nextOpen = advance(doc, nextOpen, innerStart, d.ChordOpen)
			closeAt := nextClose
			if closeAt < 0 || (nextOpen >= 0 && nextOpen+len(d.ChordOpen) <= closeAt) {
				i++
				continue
			}
			flushText(i)
			end := closeAt + len(d.ChordClose)
			spans = append(spans, Span{
				Kind:  KindChord,
				Start: i,
				End:   end,
				Inner: doc[innerStart:closeAt],
			})
			i = end
			textStart = end

		case hasTagAt(doc, i, d.TabOpen), hasTagAt(doc, i, d.TabClose):
			tag := d.TabOpen
			if !hasTagAt(doc, i, tag) {
				tag = d.TabClose
			}
			flushText(i)
			spans = append(spans, Span{Kind: KindTab, Start: i, End: i + len(tag)})
			i += len(tag)
			textStart = i

		default:
			i++
		}
	}
	flushText(len(doc))

	return spans
}

func hasTagAt(doc string, i int, tag string) bool {
	return tag != "" && strings.HasPrefix(doc[i:], tag)
}

const unknownPos = -2

// advance returns the first index of tag at or after from, reusing pos when
// it is still ahead of from. Once tag is known to be absent (-1) it stays absent.
func advance(doc string, pos, from int, tag string) int {
	if pos == -1 || pos >= from {
		return pos
	}
	return indexFrom(doc, from, tag)
}

// indexFrom returns the absolute index of tag in doc at or after from, or -1
func indexFrom(doc string, from int, tag string) int {
	if tag == "" {
		return -1
	}
	idx := strings.Index(doc[from:], tag)
	if idx < 0 {
		return -1
	}
	return from + idx
}
