package flac

import (
	"fmt"
	"io"
	"os"

	flaclib "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// Decoder wraps mewkiz/flac to provide FLAC decoding.
// Implements types.AudioDecoder.
type Decoder struct {
	file     *os.File
	stream   *flaclib.Stream
	rate     int
	channels int
	bps      int

	// current partially consumed frame
	pending *frame.Frame
	offset  int
}

// NewDecoder creates a new FLAC decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens and initializes a FLAC file for decoding
func (d *Decoder) Open(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open FLAC file: %w", err)
	}

	if err := d.OpenReader(file); err != nil {
		file.Close()
		return err
	}

	d.file = file

	return nil
}

// OpenReader starts decoding FLAC data from r
func (d *Decoder) OpenReader(r io.Reader) error {
	stream, err := flaclib.New(r)
	if err != nil {
		return fmt.Errorf("failed to create flac decoder: %w", err)
	}

	d.stream = stream
	d.rate = int(stream.Info.SampleRate)
	d.channels = int(stream.Info.NChannels)
	d.bps = int(stream.Info.BitsPerSample)

	return nil
}

// Close closes the underlying file, if any
func (d *Decoder) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// GetFormat returns the audio format (rate, channels, bits per sample)
func (d *Decoder) GetFormat() (rate, channels, bitsPerSample int) {
	return d.rate, d.channels, d.bps
}

// DecodeSamples decodes up to 'samples' audio samples as interleaved
// little-endian PCM at the stream's bit depth. FLAC frames rarely line
// up with the requested count, so a partially consumed frame is carried
// between calls. io.EOF signals the end of the stream.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.stream == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	bytesPerSample := d.bps / 8
	totalSamples := 0

	for totalSamples < samples {
		if d.pending == nil {
			f, err := d.stream.ParseNext()
			if err != nil {
				return totalSamples, err
			}
			d.pending = f
			d.offset = 0
		}

		blockSize := len(d.pending.Subframes[0].Samples)
		for d.offset < blockSize && totalSamples < samples {
			offset := totalSamples * d.channels * bytesPerSample
			if offset+d.channels*bytesPerSample > len(audio) {
				return totalSamples, nil
			}

			for ch := 0; ch < d.channels; ch++ {
				value := d.pending.Subframes[ch].Samples[d.offset]
				pos := offset + ch*bytesPerSample

				switch d.bps {
				case 8:
					audio[pos] = byte(value)
				case 16:
					audio[pos] = byte(value & 0xFF)
					audio[pos+1] = byte((value >> 8) & 0xFF)
				case 24:
					audio[pos] = byte(value & 0xFF)
					audio[pos+1] = byte((value >> 8) & 0xFF)
					audio[pos+2] = byte((value >> 16) & 0xFF)
				default:
					return totalSamples, fmt.Errorf("unsupported bits per sample: %d", d.bps)
				}
			}

			d.offset++
			totalSamples++
		}

		if d.offset >= blockSize {
			d.pending = nil
		}
	}

	return totalSamples, nil
}
