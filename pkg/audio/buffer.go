package audio

// Buffer holds decoded audio as independent per-channel sample slices.
// Sample values are nominally in [-1, 1] but are not clamped at rest;
// gain can push them outside that range and the encoder clamps on output.
//
// Ownership model: Slice allocates a fresh buffer, all other transforms
// (Fade, Gain, Normalize, DownmixMono) mutate the receiver in place and
// return it for chaining. SampleRate and the channel count never change
// for the lifetime of a buffer.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NewBuffer allocates a silent buffer with the given geometry.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   data,
	}
}

// NumChannels returns the number of channels.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// NumFrames returns the number of samples per channel.
func (b *Buffer) NumFrames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.NumFrames()) / float64(b.SampleRate)
}

// Clone returns a deep copy sharing no sample storage with the receiver.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float64, len(b.Channels)),
	}
	for ch := range b.Channels {
		out.Channels[ch] = make([]float64, len(b.Channels[ch]))
		copy(out.Channels[ch], b.Channels[ch])
	}

	return out
}

// Peaks reduces the buffer to a peak envelope of the given number of
// buckets, each holding the maximum absolute sample value across all
// channels in that bucket. Display collaborators consume this to draw a
// waveform without touching raw samples.
func (b *Buffer) Peaks(buckets int) []float64 {
	frames := b.NumFrames()
	if buckets <= 0 || frames == 0 {
		return nil
	}
	if buckets > frames {
		buckets = frames
	}

	peaks := make([]float64, buckets)
	for i := range peaks {
		start := i * frames / buckets
		end := (i + 1) * frames / buckets
		for _, ch := range b.Channels {
			for _, v := range ch[start:end] {
				if v < 0 {
					v = -v
				}
				if v > peaks[i] {
					peaks[i] = v
				}
			}
		}
	}

	return peaks
}
