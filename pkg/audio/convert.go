package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errUnsupportedBitDepth = errors.New("audio: unsupported bit depth")

// FromPCMBytes deinterleaves raw little-endian PCM data into a float
// buffer, scaling integer samples to [-1, 1). 8-bit input is unsigned,
// 16/24/32-bit input is signed, matching the WAV PCM conventions.
func FromPCMBytes(data []byte, sampleRate, channels, bitsPerSample int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("audio: invalid channel count %d", channels)
	}

	bytesPerSample := bitsPerSample / 8
	switch bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", errUnsupportedBitDepth, bitsPerSample)
	}

	frames := len(data) / (channels * bytesPerSample)
	buf := NewBuffer(sampleRate, channels, frames)

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			offset := (i*channels + ch) * bytesPerSample

			var v float64
			switch bitsPerSample {
			case 8:
				v = (float64(data[offset]) - 128) / 128.0
			case 16:
				s := int16(binary.LittleEndian.Uint16(data[offset:]))
				v = float64(s) / 32768.0
			case 24:
				s := int32(data[offset]) | int32(data[offset+1])<<8 | int32(data[offset+2])<<16
				if s&0x800000 != 0 {
					s |= ^0xFFFFFF // sign extend
				}
				v = float64(s) / 8388608.0
			case 32:
				s := int32(binary.LittleEndian.Uint32(data[offset:]))
				v = float64(s) / 2147483648.0
			}

			buf.Channels[ch][i] = v
		}
	}

	return buf, nil
}
