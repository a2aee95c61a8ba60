package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	soxr "github.com/zaf/resample"
)

// Resample converts the buffer to a new sample rate using the SoXR
// resampler on the float64 path, so no quantization happens before the
// final encode. The receiver is unchanged; a new buffer is returned.
// Same-rate calls return the receiver as-is.
func (b *Buffer) Resample(newRate int) (*Buffer, error) {
	if newRate == b.SampleRate {
		return b, nil
	}
	if newRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", newRate)
	}

	channels := b.NumChannels()
	frames := b.NumFrames()

	// soxr consumes interleaved frames.
	in := make([]byte, frames*channels*8)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			offset := (i*channels + ch) * 8
			binary.LittleEndian.PutUint64(in[offset:], math.Float64bits(b.Channels[ch][i]))
		}
	}

	var out bytes.Buffer

	resampler, err := soxr.New(&out, float64(b.SampleRate), float64(newRate), channels, soxr.F64, soxr.HighQ)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	if _, err := resampler.Write(in); err != nil {
		resampler.Close()
		return nil, fmt.Errorf("failed to resample: %w", err)
	}

	if err := resampler.Close(); err != nil {
		return nil, fmt.Errorf("failed to close resampler: %w", err)
	}

	data := out.Bytes()
	outFrames := len(data) / (channels * 8)

	result := NewBuffer(newRate, channels, outFrames)
	for i := 0; i < outFrames; i++ {
		for ch := 0; ch < channels; ch++ {
			offset := (i*channels + ch) * 8
			result.Channels[ch][i] = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
		}
	}

	return result, nil
}
