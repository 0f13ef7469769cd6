package chord

import "strings"

// Quality classifies the chord type following the root
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualityMajor7
	QualityMinor7
	QualityDominant7
	QualitySus2
	QualitySus4
	QualityAdd9
	QualityAdd11
	QualityAdd13
	QualityHalfDiminished
	QualityPower
	QualityCustom // No quality token recognized; the suffix is kept verbatim
)

var qualityNames = map[Quality]string{
	QualityMajor:          "major",
	QualityMinor:          "minor",
	QualityDiminished:     "diminished",
	QualityAugmented:      "augmented",
	QualityMajor7:         "major7",
	QualityMinor7:         "minor7",
	QualityDominant7:      "dominant7",
	QualitySus2:           "sus2",
	QualitySus4:           "sus4",
	QualityAdd9:           "add9",
	QualityAdd11:          "add11",
	QualityAdd13:          "add13",
	QualityHalfDiminished: "half-diminished",
	QualityPower:          "power",
	QualityCustom:         "custom",
}

// canonicalTokens is the short form written for each quality when a symbol
// carries no literal quality text
var canonicalTokens = map[Quality]string{
	QualityMajor:          "",
	QualityMinor:          "m",
	QualityDiminished:     "dim",
	QualityAugmented:      "aug",
	QualityMajor7:         "maj7",
	QualityMinor7:         "m7",
	QualityDominant7:      "7",
	QualitySus2:           "sus2",
	QualitySus4:           "sus4",
	QualityAdd9:           "add9",
	QualityAdd11:          "add11",
	QualityAdd13:          "add13",
	QualityHalfDiminished: "m7b5",
	QualityPower:          "5",
	QualityCustom:         "",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "unknown"
}

// Token returns the canonical short token for the quality, e.g. "m7"
func (q Quality) Token() string {
	return canonicalTokens[q]
}

// Symbol is a parsed chord symbol such as "F#m7/A".
// Symbols are values; Transpose returns a new Symbol.
type Symbol struct {
	Root        PitchClass
	Quality     Quality
	QualityText string      // Quality token exactly as written, e.g. "min7"
	Extensions  []string    // Trailing tokens not covered by Quality, in order
	Bass        *PitchClass // Present for slash chords
	Original    string      // Source token the symbol was parsed from
}

// IsSlash reports whether the chord has an explicit bass note
func (s Symbol) IsSlash() bool {
	return s.Bass != nil
}

// Transpose returns a copy of s with root and bass shifted by semitones
func (s Symbol) Transpose(semitones int) Symbol {
	out := s
	out.Root = s.Root.Transpose(semitones)
	if s.IsSlash() {
		bass := s.Bass.Transpose(semitones)
		out.Bass = &bass
	}
	if len(s.Extensions) > 0 {
		out.Extensions = append([]string(nil), s.Extensions...)
	}
	return out
}

// String renders the symbol back to chord text
func (s Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.Root.Name())
	if s.QualityText != "" {
		b.WriteString(s.QualityText)
	} else {
		b.WriteString(s.Quality.Token())
	}
	for _, ext := range s.Extensions {
		b.WriteString(ext)
	}
	if s.IsSlash() {
		b.WriteByte('/')
		b.WriteString(s.Bass.Name())
	}
	return b.String()
}

// Render renders a symbol to chord text
func Render(s Symbol) string {
	return s.String()
}
