// Package chord parses, transposes and renders chord symbols such as "F#m7/A".
package chord

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnparseable is returned when a token does not start with a chord root
var ErrUnparseable = errors.New("unparseable chord symbol")

type qualityToken struct {
	token   string // Matched case-insensitively
	quality Quality
}

// qualityTable lists recognised quality tokens, longest first after init
var qualityTable = []qualityToken{
	{"maj", QualityMajor},
	{"maj7", QualityMajor7},
	{"ma7", QualityMajor7},
	{"δ", QualityMajor7},
	{"δ7", QualityMajor7},
	{"m", QualityMinor},
	{"mi", QualityMinor},
	{"min", QualityMinor},
	{"-", QualityMinor},
	{"m7", QualityMinor7},
	{"mi7", QualityMinor7},
	{"min7", QualityMinor7},
	{"-7", QualityMinor7},
	{"m7b5", QualityHalfDiminished},
	{"min7b5", QualityHalfDiminished},
	{"ø", QualityHalfDiminished},
	{"ø7", QualityHalfDiminished},
	{"dim", QualityDiminished},
	{"dim7", QualityDiminished},
	{"°", QualityDiminished},
	{"°7", QualityDiminished},
	{"aug", QualityAugmented},
	{"+", QualityAugmented},
	{"7", QualityDominant7},
	{"sus2", QualitySus2},
	{"sus4", QualitySus4},
	{"sus", QualitySus4},
	{"add9", QualityAdd9},
	{"add11", QualityAdd11},
	{"add13", QualityAdd13},
	{"5", QualityPower},
}

func init() {
	sort.SliceStable(qualityTable, func(i, j int) bool {
		return len(qualityTable[i].token) > len(qualityTable[j].token)
	})
}

// Parse parses a chord token.
// Text after the root that is not a known quality is kept verbatim, so any
// token starting with a note name parses. Tokens that do not start with a
// note name (A-G, case-sensitive) return ErrUnparseable.
func Parse(token string) (Symbol, error) {
	root, n := parseNote(token)
	if n == 0 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrUnparseable, token)
	}

	sym := Symbol{
		Root:     root,
		Quality:  QualityMajor,
		Original: token,
	}

	rest := token[n:]
	if bass, body, ok := splitBass(rest); ok {
		sym.Bass = &bass
		rest = body
	}

	if rest == "" {
		return sym, nil
	}

	if q, text, ok := matchQuality(rest); ok {
		sym.Quality = q
		sym.QualityText = text
		rest = rest[len(text):]
	} else {
		sym.Quality = QualityCustom
	}

	sym.Extensions = splitExtensions(rest)
	return sym, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(token string) Symbol {
	sym, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return sym
}

// splitBass detects a trailing "/note" and returns the bass and the text before it.
// A slash followed by anything other than exactly one note name is not a bass.
func splitBass(s string) (PitchClass, string, bool) {
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return PitchClass{}, s, false
	}
	tail := s[idx+1:]
	bass, n := parseNote(tail)
	if n == 0 || n != len(tail) {
		return PitchClass{}, s, false
	}
	return bass, s[:idx], true
}

// matchQuality finds the longest quality token at the start of s, ignoring case
func matchQuality(s string) (Quality, string, bool) {
	for _, qt := range qualityTable {
		if len(s) >= len(qt.token) && strings.EqualFold(s[:len(qt.token)], qt.token) {
			return qt.quality, s[:len(qt.token)], true
		}
	}
	return 0, "", false
}

// splitExtensions breaks the remaining text into parenthesised groups and the
// runs between them. Joining the result yields s.
func splitExtensions(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	start := 0
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			if depth == 0 && i > start {
				parts = append(parts, s[start:i])
				start = i
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
				if depth == 0 {
					parts = append(parts, s[start:i+1])
					start = i + 1
				}
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
