package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiocutter",
	Short: "Trim and re-encode audio files as uncompressed WAV",
	Long: `audiocutter - decode an audio file into raw samples, cut a time
range out of it, apply optional gain/fade/normalization adjustments and
write the result as an uncompressed 16-bit PCM WAV file.

Supported input formats:
  - MP3 (.mp3)
  - FLAC (.flac, .fla)
  - Ogg Vorbis (.ogg, .oga)
  - WAV (.wav)

Commands:
  - trim: cut a single file and write a WAV
  - batch: cut several files with the same settings into a zip archive
  - info: show format, duration and an optional peak envelope`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
