package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chordpro"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/pipeline"
)

var toStdout bool

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file|->",
	Short: "Convert one Ultimate-Guitar song to ChordPro",
	Long: `Convert reads one song and writes a Songbook Pro .pro file:
- Saved Ultimate-Guitar pages (.html) are searched for the embedded song record
- Record JSON (.json) is read directly
- Anything else is treated as raw [ch]/[tab] markup
- Use "-" to read from stdin

Example:
  songbook convert wish-you-were-here.html
  songbook convert song.json --transpose -2 --output-dir ~/Songbook
  cat sheet.txt | songbook convert - --title "Hurt" --artist "Johnny Cash" --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	addConvertFlags(convertCmd)
	convertCmd.Flags().String("title", "", "override the song title")
	convertCmd.Flags().String("artist", "", "override the artist")
	convertCmd.Flags().BoolVar(&toStdout, "stdout", false, "print the document instead of writing a file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := chordpro.ValidateOffset(cfg.Convert.Transpose); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cfg)
	p := pipeline.NewPipeline(cfg, logger)

	var content []byte
	if input == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	conv, err := p.ConvertSource(ctx, input, string(content))
	if err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}

	if toStdout {
		_, err := io.WriteString(cmd.OutOrStdout(), conv.Output)
		return err
	}

	path, err := pipeline.WriteConversion(conv, cfg.Output.Dir, cfg.Output.Overwrite)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ %s → %s (%d chords", conv.Song.Title, path, conv.Chords)
	if len(conv.Unparsed) > 0 {
		fmt.Fprintf(os.Stderr, ", %d copied unchanged", len(conv.Unparsed))
	}
	fmt.Fprintf(os.Stderr, ")\n")

	return nil
}
