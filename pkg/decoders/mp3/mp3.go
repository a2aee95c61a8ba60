package mp3

import (
	"fmt"
	"io"
	"os"

	mp3lib "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits 16-bit stereo regardless of the source layout.
const (
	outChannels = 2
	outBits     = 16
)

// Decoder wraps go-mp3 to provide MP3 decoding.
// Implements types.AudioDecoder.
type Decoder struct {
	file    *os.File
	decoder *mp3lib.Decoder
	rate    int
}

// NewDecoder creates a new MP3 decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens an MP3 file for decoding
func (d *Decoder) Open(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}

	if err := d.OpenReader(file); err != nil {
		file.Close()
		return err
	}

	d.file = file

	return nil
}

// OpenReader starts decoding MP3 data from r
func (d *Decoder) OpenReader(r io.Reader) error {
	decoder, err := mp3lib.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	d.decoder = decoder
	d.rate = decoder.SampleRate()

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

// GetFormat returns the audio format (sample rate, channels, bits per sample)
func (d *Decoder) GetFormat() (rate, channels, bitsPerSample int) {
	return d.rate, outChannels, outBits
}

// DecodeSamples decodes up to 'samples' audio samples as interleaved
// 16-bit little-endian stereo PCM. Returns the number of samples decoded;
// io.EOF signals the end of the stream.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.decoder == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	bytesPerFrame := outChannels * outBits / 8

	want := samples * bytesPerFrame
	if want > len(audio) {
		want = len(audio) - len(audio)%bytesPerFrame
	}

	read := 0
	for read < want {
		n, err := d.decoder.Read(audio[read:want])
		read += n
		if err != nil {
			return read / bytesPerFrame, err
		}
		if n == 0 {
			break
		}
	}

	return read / bytesPerFrame, nil
}
