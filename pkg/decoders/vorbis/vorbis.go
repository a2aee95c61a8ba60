package vorbis

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// oggvorbis decodes to float32; samples are emitted as 16-bit PCM.
const outBits = 16

// Decoder wraps jfreymuth/oggvorbis to provide Ogg Vorbis decoding.
// Implements types.AudioDecoder.
type Decoder struct {
	file     *os.File
	reader   *oggvorbis.Reader
	rate     int
	channels int
}

// NewDecoder creates a new Ogg Vorbis decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens an Ogg Vorbis file for decoding
func (d *Decoder) Open(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open Ogg Vorbis file: %w", err)
	}

	if err := d.OpenReader(file); err != nil {
		file.Close()
		return err
	}

	d.file = file

	return nil
}

// OpenReader starts decoding Ogg Vorbis data from r
func (d *Decoder) OpenReader(r io.Reader) error {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create vorbis decoder: %w", err)
	}

	d.reader = reader
	d.rate = reader.SampleRate()
	d.channels = reader.Channels()

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
	return d.rate, d.channels, outBits
}

// DecodeSamples decodes up to 'samples' audio samples as interleaved
// 16-bit little-endian PCM. io.EOF signals the end of the stream.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.reader == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	want := samples * d.channels
	if max := len(audio) / 2; want > max {
		want = max - max%d.channels
	}

	floats := make([]float32, want)

	read := 0
	for read < want {
		n, err := d.reader.Read(floats[read:])
		read += n
		if err != nil {
			d.emit(floats[:read], audio)
			return read / d.channels, err
		}
		if n == 0 {
			break
		}
	}

	d.emit(floats[:read], audio)

	return read / d.channels, nil
}

func (d *Decoder) emit(floats []float32, audio []byte) {
	for i, v := range floats {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}

		s := int16(v * 32767)
		audio[i*2] = byte(s)
		audio[i*2+1] = byte(s >> 8)
	}
}
