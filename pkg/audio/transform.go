package audio

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange indicates slice bounds outside the buffer or an
// inverted/empty range. The caller re-validates and retries; the
// pipeline never auto-clamps.
var ErrInvalidRange = errors.New("audio: invalid slice range")

// TimeRange selects [Start, End) in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// Slice returns a new buffer holding only the samples in [Start, End).
// Sample indices are floor(t * rate). The result shares no storage with
// the receiver, so later transforms on either buffer do not alias.
func (b *Buffer) Slice(r TimeRange) (*Buffer, error) {
	startIdx := int(math.Floor(r.Start * float64(b.SampleRate)))
	endIdx := int(math.Floor(r.End * float64(b.SampleRate)))

	frames := b.NumFrames()
	if startIdx < 0 || endIdx > frames || endIdx <= startIdx {
		return nil, fmt.Errorf("%w: [%d:%d) of %d frames", ErrInvalidRange, startIdx, endIdx, frames)
	}

	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float64, len(b.Channels)),
	}
	for ch := range b.Channels {
		out.Channels[ch] = make([]float64, endIdx-startIdx)
		copy(out.Channels[ch], b.Channels[ch][startIdx:endIdx])
	}

	return out, nil
}

// Fade applies linear amplitude ramps in place: a fade-in over the first
// floor(fadeIn*rate) samples and a fade-out over the last
// floor(fadeOut*rate) samples of every channel. A zero-length ramp is
// skipped. Overlapping ramps multiply, which is accepted behavior.
func (b *Buffer) Fade(fadeIn, fadeOut float64) *Buffer {
	frames := b.NumFrames()

	fadeInSamples := int(math.Floor(fadeIn * float64(b.SampleRate)))
	if fadeInSamples > frames {
		fadeInSamples = frames
	}
	if fadeInSamples > 0 {
		for _, ch := range b.Channels {
			for i := 0; i < fadeInSamples; i++ {
				ch[i] *= float64(i) / float64(fadeInSamples)
			}
		}
	}

	fadeOutSamples := int(math.Floor(fadeOut * float64(b.SampleRate)))
	if fadeOutSamples > frames {
		fadeOutSamples = frames
	}
	if fadeOutSamples > 0 {
		offset := frames - fadeOutSamples
		for _, ch := range b.Channels {
			for i := 0; i < fadeOutSamples; i++ {
				ch[offset+i] *= 1 - float64(i)/float64(fadeOutSamples)
			}
		}
	}

	return b
}

// Gain scales every sample in place. Values may leave [-1, 1]; clipping
// is deferred to the encoder's quantization step.
func (b *Buffer) Gain(gain float64) *Buffer {
	for _, ch := range b.Channels {
		for i := range ch {
			ch[i] *= gain
		}
	}

	return b
}

// Normalize scales the buffer so the peak reaches 95% of full scale,
// leaving headroom against clipping. Silent buffers and buffers already
// at or above full scale are returned unchanged: this is peak-raising
// only, never de-clipping.
func (b *Buffer) Normalize() *Buffer {
	var peak float64
	for _, ch := range b.Channels {
		for _, v := range ch {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}

	if peak == 0 || peak >= 1.0 {
		return b
	}

	return b.Gain(0.95 / peak)
}

// DownmixMono averages all channels into a single channel, in place on
// channel 0. No-op for mono buffers.
func (b *Buffer) DownmixMono() *Buffer {
	if len(b.Channels) <= 1 {
		return b
	}

	mono := b.Channels[0]
	n := float64(len(b.Channels))
	for i := range mono {
		sum := 0.0
		for _, ch := range b.Channels {
			sum += ch[i]
		}
		mono[i] = sum / n
	}
	b.Channels = b.Channels[:1]

	return b
}
