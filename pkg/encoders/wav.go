// Package encoders converts float sample buffers into self-contained
// uncompressed audio byte streams. WAV (RIFF, 16-bit PCM) is the only
// output container; lossy output is out of scope.
package encoders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	wavlib "github.com/youpy/go-wav"

	"github.com/zoe20230520/audiocutter/pkg/audio"
)

// MIMEWav is the declared media type of encoded output.
const MIMEWav = "audio/wav"

const outBits = 16

// ErrNoChannels indicates a malformed buffer handed to the encoder.
// Upstream invariants make this unreachable in the normal pipeline.
var ErrNoChannels = errors.New("encoders: buffer has no channels")

// EncodedAudio is an immutable encoded byte stream plus its media type.
type EncodedAudio struct {
	Data []byte
	MIME string
}

// EncodeWAV interleaves and quantizes the buffer to 16-bit PCM and wraps
// it in a standard 44-byte RIFF/WAVE header (little-endian throughout).
//
// Quantization is clamp to [-1, 1] then multiply-and-truncate: x32768
// for negative samples, x32767 for non-negative ones. The asymmetric
// truncating conversion is kept deliberately so output stays bit-exact
// with existing fixtures; do not change it to round-to-nearest.
func EncodeWAV(buf *audio.Buffer) (*EncodedAudio, error) {
	channels := buf.NumChannels()
	if channels == 0 {
		return nil, ErrNoChannels
	}

	frames := buf.NumFrames()

	// frame-major interleave, 2 bytes per sample
	pcm := make([]byte, frames*channels*2)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			s := quantize16(buf.Channels[ch][i])
			offset := (i*channels + ch) * 2
			pcm[offset] = byte(s)
			pcm[offset+1] = byte(s >> 8)
		}
	}

	var out bytes.Buffer

	writer := wavlib.NewWriter(&out, uint32(frames), uint16(channels), uint32(buf.SampleRate), outBits)
	if _, err := writer.Write(pcm); err != nil {
		return nil, fmt.Errorf("failed to write WAV data: %w", err)
	}

	return &EncodedAudio{
		Data: out.Bytes(),
		MIME: MIMEWav,
	}, nil
}

// WriteWAVFile encodes the buffer and writes it to fileName.
func WriteWAVFile(fileName string, buf *audio.Buffer) error {
	encoded, err := EncodeWAV(buf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(fileName, encoded.Data, 0644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	return nil
}

func quantize16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}

	if v < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}
