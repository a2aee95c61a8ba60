package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoe20230520/audiocutter/pkg/decoders"
	"github.com/zoe20230520/audiocutter/pkg/timecode"
)

var infoCmd = &cobra.Command{
	Use:   "info <input_file>",
	Short: "Show format and duration of an audio file",
	Long: `Decode an audio file and print its format and duration. With
--peaks N the command also emits a JSON array of N peak-envelope values
(max absolute sample per bucket across channels), which waveform display
front-ends consume directly.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Int("peaks", 0, "Emit a JSON peak envelope with this many buckets")
}

func runInfo(cmd *cobra.Command, args []string) {
	inFileName := args[0]

	peaks, err := cmd.Flags().GetInt("peaks")
	if err != nil {
		slog.Error("Failed to get peaks flag", "error", err)
		os.Exit(1)
	}

	decoder, err := decoders.NewDecoder(inFileName)
	if err != nil {
		slog.Error("Failed to create decoder", "error", err)
		os.Exit(1)
	}
	defer decoder.Close()

	rate, channels, bitsPerSample := decoder.GetFormat()

	buf, err := decoders.ReadAll(decoder)
	if err != nil {
		slog.Error("Failed to decode audio", "error", err)
		os.Exit(1)
	}

	fmt.Printf("File:         %s\n", inFileName)
	fmt.Printf("Sample rate:  %d Hz\n", rate)
	fmt.Printf("Channels:     %d\n", channels)
	fmt.Printf("Bit depth:    %d\n", bitsPerSample)
	fmt.Printf("Frames:       %d\n", buf.NumFrames())
	fmt.Printf("Duration:     %s\n", timecode.Format(buf.Duration()))

	if peaks > 0 {
		data, err := json.Marshal(buf.Peaks(peaks))
		if err != nil {
			slog.Error("Failed to encode peaks", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Peaks:        %s\n", data)
	}
}
