package decoders

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/zoe20230520/audiocutter/pkg/audio"
	"github.com/zoe20230520/audiocutter/pkg/decoders/flac"
	"github.com/zoe20230520/audiocutter/pkg/decoders/mp3"
	"github.com/zoe20230520/audiocutter/pkg/decoders/vorbis"
	"github.com/zoe20230520/audiocutter/pkg/decoders/wav"
	"github.com/zoe20230520/audiocutter/pkg/types"
)

// ErrUnsupportedFormat indicates an input container/codec no decoder
// handles. Corrupt or truncated data in a supported format surfaces the
// codec library's error instead, wrapped with the input name.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

func decoderForExt(ext string) (types.AudioDecoder, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return mp3.NewDecoder(), nil
	case ".flac", ".fla":
		return flac.NewDecoder(), nil
	case ".ogg", ".oga":
		return vorbis.NewDecoder(), nil
	case ".wav":
		return wav.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: .mp3, .flac, .fla, .ogg, .oga, .wav)", ErrUnsupportedFormat, ext)
	}
}

// NewDecoder creates and opens the appropriate decoder based on file
// extension. Returns an opened decoder ready for use, or an error if the
// format is unsupported or the file cannot be opened.
func NewDecoder(fileName string) (types.AudioDecoder, error) {
	decoder, err := decoderForExt(filepath.Ext(fileName))
	if err != nil {
		return nil, err
	}

	if err := decoder.Open(fileName); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	return decoder, nil
}

// NewReaderDecoder creates and opens a decoder over an arbitrary byte
// stream. format is a file extension or bare format name ("mp3", ".ogg").
func NewReaderDecoder(r io.Reader, format string) (types.AudioDecoder, error) {
	if !strings.HasPrefix(format, ".") {
		format = "." + format
	}

	decoder, err := decoderForExt(format)
	if err != nil {
		return nil, err
	}

	if err := decoder.OpenReader(r); err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", format, err)
	}

	return decoder, nil
}

// ReadAll drains an opened decoder and converts the raw PCM bytes into a
// per-channel float buffer.
func ReadAll(decoder types.AudioDecoder) (*audio.Buffer, error) {
	rate, channels, bitsPerSample := decoder.GetFormat()

	data, err := readRaw(decoder, channels, bitsPerSample)
	if err != nil {
		return nil, err
	}

	return audio.FromPCMBytes(data, rate, channels, bitsPerSample)
}

// readRaw reads all PCM data from the decoder into memory
func readRaw(decoder types.AudioDecoder, channels, bitsPerSample int) ([]byte, error) {
	const bufferSamples = 4096
	bytesPerSample := bitsPerSample / 8
	bufferSize := bufferSamples * channels * bytesPerSample

	buffer := make([]byte, bufferSize)
	audioData := make([]byte, 0, bufferSize*10)

	for {
		samplesRead, err := decoder.DecodeSamples(bufferSamples, buffer)
		if samplesRead > 0 {
			bytesRead := samplesRead * channels * bytesPerSample
			audioData = append(audioData, buffer[:bytesRead]...)
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("decode error: %w", err)
		}

		if samplesRead == 0 {
			break
		}
	}

	return audioData, nil
}

// DecodeFile decodes a whole audio file into a float buffer.
func DecodeFile(fileName string) (*audio.Buffer, error) {
	decoder, err := NewDecoder(fileName)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return ReadAll(decoder)
}

// DecodeReader decodes a whole byte stream of the given format into a
// float buffer.
func DecodeReader(r io.Reader, format string) (*audio.Buffer, error) {
	decoder, err := NewReaderDecoder(r, format)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return ReadAll(decoder)
}
