package cmd

import (
	"archive/zip"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoe20230520/audiocutter/pkg/decoders"
	"github.com/zoe20230520/audiocutter/pkg/encoders"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_files...>",
	Short: "Cut several audio files with the same settings into a zip archive",
	Long: `Apply the same trim settings to several audio files and package
every resulting WAV into one zip archive. Each file's pipeline run is
independent; a failing input aborts the batch so partial archives are
never left behind silently.

Examples:
  # First 30 seconds of every take, zipped
  audiocutter batch take1.wav take2.flac take3.mp3 --end 30 --archive takes.zip

  # Normalized mono cuts
  audiocutter batch *.ogg --start 5 --end 0:35 --normalize --mono`,
	Args: cobra.MinimumNArgs(1),
	Run:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addEditFlags(batchCmd)
	batchCmd.Flags().String("archive", "out_trimmed.zip", "Output zip archive path")
}

func runBatch(cmd *cobra.Command, args []string) {
	opts, err := editOptionsFromFlags(cmd)
	if err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	archiveName, err := cmd.Flags().GetString("archive")
	if err != nil {
		slog.Error("Failed to get archive flag", "error", err)
		os.Exit(1)
	}

	out, err := os.Create(archiveName)
	if err != nil {
		slog.Error("Failed to create archive", "path", archiveName, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	slog.Info("Batch trim starting", "files", len(args), "archive", archiveName)

	for i, inFileName := range args {
		slog.Info("Processing file", "index", i+1, "total", len(args), "path", inFileName)

		buf, err := decoders.DecodeFile(inFileName)
		if err != nil {
			slog.Error("Failed to decode audio", "path", inFileName, "error", err)
			os.Exit(1)
		}

		trimmed, err := applyEdits(buf, opts)
		if err != nil {
			slog.Error("Failed to apply edits", "path", inFileName, "error", err)
			os.Exit(1)
		}

		encoded, err := encoders.EncodeWAV(trimmed)
		if err != nil {
			slog.Error("Failed to encode WAV", "path", inFileName, "error", err)
			os.Exit(1)
		}

		entry, err := zw.Create(trimmedName(inFileName))
		if err != nil {
			slog.Error("Failed to add archive entry", "path", inFileName, "error", err)
			os.Exit(1)
		}
		if _, err := entry.Write(encoded.Data); err != nil {
			slog.Error("Failed to write archive entry", "path", inFileName, "error", err)
			os.Exit(1)
		}
	}

	if err := zw.Close(); err != nil {
		slog.Error("Failed to finalize archive", "path", archiveName, "error", err)
		os.Exit(1)
	}

	slog.Info("Batch trim complete", "files", len(args), "archive", archiveName)
}

// trimmedName maps input.mp3 to input_trimmed.wav inside the archive.
func trimmedName(inFileName string) string {
	base := filepath.Base(inFileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_trimmed.wav"
}
