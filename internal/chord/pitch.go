package chord

// Spelling records which accidental a note was written with
type Spelling int

const (
	SpellingNone  Spelling = iota // Natural note or spelling not known
	SpellingSharp                 // Written with '#'
	SpellingFlat                  // Written with 'b'
)

func (s Spelling) String() string {
	switch s {
	case SpellingSharp:
		return "sharp"
	case SpellingFlat:
		return "flat"
	default:
		return "none"
	}
}

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	// letterValues maps natural note letters to their pitch class
	letterValues = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}
)

// PitchClass is one of the twelve note identities, independent of octave
type PitchClass struct {
	Value    int      // 0..11, C = 0
	Spelling Spelling // Accidental preference carried from the source text

	name string // Literal note name as parsed, empty once transposed
}

// NewPitchClass creates a pitch class, normalizing value into [0,11]
func NewPitchClass(value int, spelling Spelling) PitchClass {
	return PitchClass{Value: mod12(value), Spelling: spelling}
}

// IsBlackKey reports whether the pitch class needs an accidental
func (p PitchClass) IsBlackKey() bool {
	switch p.Value {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Name returns the note name, e.g. "F#" or "Bb"
func (p PitchClass) Name() string {
	if p.name != "" {
		return p.name
	}
	if p.Spelling == SpellingFlat {
		return flatNames[mod12(p.Value)]
	}
	return sharpNames[mod12(p.Value)]
}

func (p PitchClass) String() string {
	return p.Name()
}

// Transpose shifts the pitch class by semitones.
// A shift by a multiple of 12 returns p unchanged, including its spelling.
// Black keys keep the sharp/flat preference of p; white keys use the plain letter.
func (p PitchClass) Transpose(semitones int) PitchClass {
	if semitones%12 == 0 {
		return p
	}
	return PitchClass{
		Value:    mod12(p.Value + mod12(semitones)),
		Spelling: p.Spelling,
	}
}

// parseNote reads a note name (letter plus optional accidental) at the start of s.
// It returns the pitch class and the number of bytes consumed, or 0 when s does
// not start with a note.
func parseNote(s string) (PitchClass, int) {
	if s == "" {
		return PitchClass{}, 0
	}
	value, ok := letterValues[s[0]]
	if !ok {
		return PitchClass{}, 0
	}

	n := 1
	spelling := SpellingNone
	if len(s) > 1 {
		switch s[1] {
		case '#':
			value++
			spelling = SpellingSharp
			n = 2
		case 'b':
			value--
			spelling = SpellingFlat
			n = 2
		}
	}

	return PitchClass{Value: mod12(value), Spelling: spelling, name: s[:n]}, n
}

func mod12(v int) int {
	v %= 12
	if v < 0 {
		v += 12
	}
	return v
}
