package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/chord"
)

var transposeBy int

// transposeCmd represents the transpose command
var transposeCmd = &cobra.Command{
	Use:   "transpose <chord>...",
	Short: "Transpose chord symbols",
	Long: `Transpose prints each chord symbol moved by the given number of semitones,
one per line. Symbols that cannot be read are printed unchanged.

Example:
  songbook transpose G Am7 F#m7/A --by 2
  songbook transpose -- Bb Eb --by -1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranspose,
}

func init() {
	rootCmd.AddCommand(transposeCmd)

	transposeCmd.Flags().IntVarP(&transposeBy, "by", "b", 0, "semitones to transpose (any integer)")
}

func runTranspose(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, token := range args {
		fmt.Fprintln(out, transposeToken(token, transposeBy))
	}
	return nil
}

// transposeToken transposes a single symbol, returning it unchanged when it
// does not parse
func transposeToken(token string, semitones int) string {
	sym, err := chord.Parse(token)
	if err != nil {
		return token
	}
	return sym.Transpose(semitones).String()
}
