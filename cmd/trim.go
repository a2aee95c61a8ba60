package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoe20230520/audiocutter/pkg/audio"
	"github.com/zoe20230520/audiocutter/pkg/decoders"
	"github.com/zoe20230520/audiocutter/pkg/encoders"
	"github.com/zoe20230520/audiocutter/pkg/timecode"
)

var trimCmd = &cobra.Command{
	Use:   "trim <input_file>",
	Short: "Cut a time range out of an audio file and write it as WAV",
	Long: `Cut a time range out of an audio file and re-encode it as an
uncompressed 16-bit PCM WAV file. Start and end accept timecodes in
"HH:MM:SS", "MM:SS" or plain seconds form, fractional seconds allowed.

Examples:
  # Keep 00:15..01:30 of a song
  audiocutter trim song.mp3 --start 15 --end 01:30 --out chorus.wav

  # Trim with a short fade on both ends and normalize the result
  audiocutter trim take.flac --start 0:02.500 --end 0:47 \
      --fade-in 0.2 --fade-out 1.5 --normalize --out take_cut.wav

  # Mono 22.05 kHz preview cut
  audiocutter trim interview.ogg --end 30 --mono --new-samplerate 22050

Output Format:
  - WAV (16-bit PCM)`,
	Args: cobra.ExactArgs(1),
	Run:  runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)

	addEditFlags(trimCmd)
	trimCmd.Flags().String("out", "out_trimmed.wav", "Output WAV file path")
}

// editOptions carries the transform settings shared by trim and batch.
type editOptions struct {
	start     string
	end       string
	fadeIn    float64
	fadeOut   float64
	gain      float64
	normalize bool
	mono      bool
	newRate   int
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "0", "Range start timecode (HH:MM:SS, MM:SS or seconds)")
	cmd.Flags().String("end", "", "Range end timecode (default: end of file)")
	cmd.Flags().Float64("fade-in", 0, "Linear fade-in duration in seconds")
	cmd.Flags().Float64("fade-out", 0, "Linear fade-out duration in seconds")
	cmd.Flags().Float64("gain", 1.0, "Gain multiplier (guidance: 0..2)")
	cmd.Flags().Bool("normalize", false, "Peak-normalize to 95% full scale")
	cmd.Flags().Bool("mono", false, "Downmix output to mono (average channels)")
	cmd.Flags().Int("new-samplerate", 0, "Resample output to this rate in Hz (0 = keep)")
}

func editOptionsFromFlags(cmd *cobra.Command) (editOptions, error) {
	var opts editOptions
	var err error

	if opts.start, err = cmd.Flags().GetString("start"); err != nil {
		return opts, err
	}
	if opts.end, err = cmd.Flags().GetString("end"); err != nil {
		return opts, err
	}
	if opts.fadeIn, err = cmd.Flags().GetFloat64("fade-in"); err != nil {
		return opts, err
	}
	if opts.fadeOut, err = cmd.Flags().GetFloat64("fade-out"); err != nil {
		return opts, err
	}
	if opts.gain, err = cmd.Flags().GetFloat64("gain"); err != nil {
		return opts, err
	}
	if opts.normalize, err = cmd.Flags().GetBool("normalize"); err != nil {
		return opts, err
	}
	if opts.mono, err = cmd.Flags().GetBool("mono"); err != nil {
		return opts, err
	}
	if opts.newRate, err = cmd.Flags().GetInt("new-samplerate"); err != nil {
		return opts, err
	}

	if opts.newRate < 0 || opts.newRate > 384000 {
		return opts, fmt.Errorf("invalid sample rate %d (valid range 1-384000)", opts.newRate)
	}

	return opts, nil
}

// applyEdits runs the transform pipeline over a decoded buffer:
// slice, fade, gain, normalize, then the output-shaping downmix and
// resample steps.
func applyEdits(buf *audio.Buffer, opts editOptions) (*audio.Buffer, error) {
	startSec := timecode.Parse(opts.start)

	// Default end is half a sample past the last frame so the floor in
	// Slice lands exactly on the frame count regardless of float rounding.
	endSec := (float64(buf.NumFrames()) + 0.5) / float64(buf.SampleRate)
	if opts.end != "" {
		endSec = timecode.Parse(opts.end)
	}

	out, err := buf.Slice(audio.TimeRange{Start: startSec, End: endSec})
	if err != nil {
		return nil, fmt.Errorf("range %s..%s: %w", timecode.Format(startSec), timecode.Format(endSec), err)
	}

	if opts.fadeIn > 0 || opts.fadeOut > 0 {
		out.Fade(opts.fadeIn, opts.fadeOut)
	}

	if opts.gain != 1.0 {
		out.Gain(opts.gain)
	}

	if opts.normalize {
		out.Normalize()
	}

	if opts.mono {
		out.DownmixMono()
	}

	if opts.newRate > 0 && opts.newRate != out.SampleRate {
		out, err = out.Resample(opts.newRate)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func runTrim(cmd *cobra.Command, args []string) {
	inFileName := args[0]

	if _, err := os.Stat(inFileName); os.IsNotExist(err) {
		slog.Error("Input file not found", "path", inFileName)
		os.Exit(1)
	}

	opts, err := editOptionsFromFlags(cmd)
	if err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	outFileName, err := cmd.Flags().GetString("out")
	if err != nil {
		slog.Error("Failed to get out flag", "error", err)
		os.Exit(1)
	}

	decoder, err := decoders.NewDecoder(inFileName)
	if err != nil {
		slog.Error("Failed to create decoder", "error", err)
		os.Exit(1)
	}
	defer decoder.Close()

	inSampleRate, channels, bitsPerSample := decoder.GetFormat()

	slog.Info("Trim starting",
		"input_file", inFileName,
		"input_sample_rate", inSampleRate,
		"input_channels", channels,
		"input_bits_per_sample", bitsPerSample,
		"range_start", opts.start,
		"range_end", opts.end,
		"output_file", outFileName)

	slog.Info("Decoding audio data")
	buf, err := decoders.ReadAll(decoder)
	if err != nil {
		slog.Error("Failed to decode audio", "error", err)
		os.Exit(1)
	}

	slog.Info("Decoding complete",
		"input_frames", buf.NumFrames(),
		"input_duration", timecode.Format(buf.Duration()))

	out, err := applyEdits(buf, opts)
	if err != nil {
		slog.Error("Failed to apply edits", "error", err)
		os.Exit(1)
	}

	slog.Info("Writing output WAV file", "path", outFileName)
	if err := encoders.WriteWAVFile(outFileName, out); err != nil {
		slog.Error("Failed to write WAV file", "error", err)
		os.Exit(1)
	}

	slog.Info("Trim complete",
		"output_frames", out.NumFrames(),
		"output_sample_rate", out.SampleRate,
		"output_channels", out.NumChannels(),
		"output_duration", timecode.Format(out.Duration()))
}
