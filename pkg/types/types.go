package types

import "io"

// AudioDecoder is the common interface for all format decoders (MP3,
// FLAC, Ogg Vorbis, WAV). All decoders produce interleaved little-endian
// PCM at their native bit depth so downstream conversion to float
// samples is uniform.
type AudioDecoder interface {
	// Open opens an audio file for decoding
	Open(fileName string) error

	// OpenReader starts decoding an in-memory or streamed byte source.
	// Open is a convenience wrapper over this for files on disk.
	OpenReader(r io.Reader) error

	// Close closes the decoder and releases resources
	Close() error

	// GetFormat returns the audio format information
	// Returns: sample rate (Hz), channels (1=mono, 2=stereo), bits per sample (8/16/24/32)
	GetFormat() (rate, channels, bitsPerSample int)

	// DecodeSamples decodes audio samples into the provided buffer
	// Parameters:
	//   samples: number of samples to decode (not bytes!)
	//   audio: buffer to write decoded audio data
	// Returns: number of samples actually decoded, error if decoding failed
	// Note: Buffer must be large enough: samples * channels * (bitsPerSample/8) bytes
	DecodeSamples(samples int, audio []byte) (int, error)
}
