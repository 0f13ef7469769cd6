package model

import (
	"runtime"
	"time"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chordpro"
)

// Config holds all settings for a conversion run
type Config struct {
	Convert     ConvertConfig       `yaml:"convert" mapstructure:"convert"`
	Markup      chordpro.Delimiters `yaml:"markup" mapstructure:"markup"`
	Output      OutputConfig        `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig   `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Log         LogConfig           `yaml:"log" mapstructure:"log"`
}

// ConvertConfig controls what happens to each song
type ConvertConfig struct {
	Transpose int    `yaml:"transpose" mapstructure:"transpose"` // Semitones, -11..11
	Title     string `yaml:"title,omitempty" mapstructure:"title"`   // Overrides the title found in the source
	Artist    string `yaml:"artist,omitempty" mapstructure:"artist"` // Overrides the artist found in the source
}

// OutputConfig controls where converted songs are written
type OutputConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	Extension string `yaml:"extension" mapstructure:"extension"`
	Overwrite bool   `yaml:"overwrite" mapstructure:"overwrite"`
}

// ConcurrencyConfig controls the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the in-memory conversion cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Transpose: 0,
		},
		Markup: chordpro.DefaultDelimiters(),
		Output: OutputConfig{
			Dir:       ".",
			Extension: ".pro",
			Overwrite: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
