package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// executeRoot runs the root command with args and returns its stdout.
// HOME points at a temp dir so no user config is picked up.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestTransposeToken(t *testing.T) {
	tests := []struct {
		token string
		by    int
		want  string
	}{
		{"G", 2, "A"},
		{"Am7", 3, "Cm7"},
		{"F#m7/A", 2, "G#m7/B"},
		{"Bb", 1, "B"},
		{"Eb", -1, "D"},
		{"N.C.", 5, "N.C."},
		{"C", 12, "C"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, transposeToken(tt.token, tt.by))
		})
	}
}

func TestTransposeCommand(t *testing.T) {
	out, err := executeRoot(t, "transpose", "G", "Am7", "x", "--by", "2")
	require.NoError(t, err)
	assert.Equal(t, "A\nBm7\nx\n", out)
}

func TestConvertCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sheet.txt")
	require.NoError(t, os.WriteFile(input, []byte("[ch]G[/ch] [ch]D/F#[/ch]\nlyric"), 0644))

	out, err := executeRoot(t, "convert", input, "--stdout", "-t", "2", "--title", "Song", "--artist", "Band")
	require.NoError(t, err)
	assert.Equal(t, "title: Song\nartist: Band\n\n[A] [E/G#]\nlyric", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "songbook "+Version+"\n", out)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addConvertFlags(cmd)
	cmd.Flags().Int("concurrency", 1, "")

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Convert.Transpose)
	assert.True(t, cfg.Cache.Enabled)

	require.NoError(t, cmd.Flags().Set("transpose", "-3"))
	require.NoError(t, cmd.Flags().Set("output-dir", "out"))
	require.NoError(t, cmd.Flags().Set("no-cache", "true"))
	require.NoError(t, cmd.Flags().Set("concurrency", "7"))

	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, -3, cfg.Convert.Transpose)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 7, cfg.Concurrency.Workers)
	assert.Equal(t, "[", cfg.Markup.TargetOpen)
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".songbook")

	path, err := writeDefaultConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, ".pro", cfg.Output.Extension)
	assert.Equal(t, "[ch]", cfg.Markup.ChordOpen)

	_, err = writeDefaultConfig(dir)
	assert.Error(t, err, "existing config must not be replaced")
}

func TestWatchable(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()

	write := func(name string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		return p
	}

	assert.True(t, watchable(write("song.html"), cfg))
	assert.True(t, watchable(write("song.json"), cfg))
	assert.False(t, watchable(write("song.pro"), cfg))
	assert.False(t, watchable(write(".song.html.swp"), cfg))
	assert.False(t, watchable(write("song.txt~"), cfg))
	assert.False(t, watchable(dir, cfg))
	assert.False(t, watchable(filepath.Join(dir, "missing.html"), cfg))

	cfg.Output.Extension = "pro"
	assert.False(t, watchable(filepath.Join(dir, "song.pro"), cfg), "extension without a dot")
	cfg.Output.Extension = ""
	assert.False(t, watchable(filepath.Join(dir, "song.pro"), cfg), "empty extension means .pro")
}

func writeSongList(t *testing.T, n int) (list, outDir string) {
	t.Helper()
	dir := t.TempDir()
	var lines []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("song%d.txt", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[ch]G[/ch] la"), 0644))
		lines = append(lines, name)
	}
	list = filepath.Join(dir, "songs.txt")
	require.NoError(t, os.WriteFile(list, []byte(strings.Join(lines, "\n")), 0644))
	return list, filepath.Join(dir, "out")
}

func TestBatchCommand(t *testing.T) {
	list, outDir := writeSongList(t, 3)

	_, err := executeRoot(t, "batch", list, "-o", outDir, "--timeout", "1m", "-t", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "song1.pro"))
	require.NoError(t, err)
	assert.Equal(t, "title: song1\nartist: \n\n[A] la", string(data))
}

func TestBatchCommand_TimeoutReportsEveryInput(t *testing.T) {
	list, outDir := writeSongList(t, 5)

	_, err := executeRoot(t, "batch", list, "-o", outDir, "--timeout", "1ns")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "5 of 5 songs not converted")
}
