// Package model holds the data types shared by the extract, pipeline and cli packages.
package model

// Song is a chord sheet located in an input file
type Song struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Content string `json:"content"` // Chord sheet in source markup
	Source  string `json:"source"`  // Path the song was read from
	Adapter string `json:"adapter"` // Name of the adapter that extracted it
}

// Conversion is the result of converting one Song
type Conversion struct {
	Song     *Song    `json:"song"`
	Output   string   `json:"output"` // ChordPro document
	Offset   int      `json:"offset"`
	Chords   int      `json:"chords"`
	Unparsed []string `json:"unparsed,omitempty"` // Chord tokens copied without transposing
	FileName string   `json:"file_name"`
	Cached   bool     `json:"cached"`
}
