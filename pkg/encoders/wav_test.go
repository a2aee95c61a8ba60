package encoders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/zoe20230520/audiocutter/pkg/audio"
)

func sineBuffer(rate, channels, frames int) *audio.Buffer {
	buf := audio.NewBuffer(rate, channels, frames)
	for ch := range buf.Channels {
		for i := range buf.Channels[ch] {
			buf.Channels[ch][i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
		}
	}
	return buf
}

func TestEncodeWAVHeader(t *testing.T) {
	buf := sineBuffer(44100, 2, 100)

	encoded, err := EncodeWAV(buf)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if encoded.MIME != MIMEWav {
		t.Errorf("MIME: got %q, want %q", encoded.MIME, MIMEWav)
	}

	data := encoded.Data
	wantLen := 44 + 100*2*2
	if len(data) != wantLen {
		t.Fatalf("output size: got %d, want %d", len(data), wantLen)
	}

	if !bytes.Equal(data[0:4], []byte("RIFF")) {
		t.Errorf("missing RIFF tag: %q", data[0:4])
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(wantLen-8) {
		t.Errorf("riff size: got %d, want %d", got, wantLen-8)
	}
	if !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Errorf("missing WAVE tag: %q", data[8:12])
	}
	if !bytes.Equal(data[12:16], []byte("fmt ")) {
		t.Errorf("missing fmt tag: %q", data[12:16])
	}
	if got := binary.LittleEndian.Uint32(data[16:20]); got != 16 {
		t.Errorf("fmt chunk size: got %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		t.Errorf("format code: got %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channels: got %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 44100 {
		t.Errorf("sample rate: got %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 44100*2*2 {
		t.Errorf("byte rate: got %d, want %d", got, 44100*2*2)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 4 {
		t.Errorf("block align: got %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bit depth: got %d, want 16", got)
	}
	if !bytes.Equal(data[36:40], []byte("data")) {
		t.Errorf("missing data tag: %q", data[36:40])
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(100*2*2) {
		t.Errorf("data size: got %d, want %d", got, 100*2*2)
	}
}

func TestEncodeWAVInterleaving(t *testing.T) {
	buf := audio.NewBuffer(8000, 2, 2)
	buf.Channels[0] = []float64{0.5, -1.0}
	buf.Channels[1] = []float64{-0.5, 1.0}

	encoded, err := EncodeWAV(buf)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	payload := encoded.Data[44:]
	want := []int16{16383, -16384, -32768, 32767} // L0 R0 L1 R1
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(payload[i*2:]))
		if got != w {
			t.Errorf("interleaved sample %d: got %d, want %d", i, got, w)
		}
	}
}

func TestQuantize16(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1.0, 32767},
		{-1.0, -32768},
		{0.5, 16383},   // 16383.5 truncated toward zero
		{-0.5, -16384},
		{2.0, 32767},   // clamped
		{-2.0, -32768}, // clamped
		{0.0001, 3},    // 3.2767 truncated
	}

	for _, tt := range tests {
		if got := quantize16(tt.in); got != tt.want {
			t.Errorf("quantize16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodeWAVNoChannels(t *testing.T) {
	_, err := EncodeWAV(&audio.Buffer{SampleRate: 44100})
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("error: got %v, want ErrNoChannels", err)
	}
}

func TestFullRangeSliceEncodesIdentically(t *testing.T) {
	buf := sineBuffer(8000, 2, 800)

	sliced, err := buf.Slice(audio.TimeRange{Start: 0, End: buf.Duration()})
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	whole, err := EncodeWAV(buf)
	if err != nil {
		t.Fatalf("EncodeWAV(whole) failed: %v", err)
	}
	part, err := EncodeWAV(sliced)
	if err != nil {
		t.Fatalf("EncodeWAV(sliced) failed: %v", err)
	}

	if !bytes.Equal(whole.Data, part.Data) {
		t.Error("full-range slice does not encode bit-identically to the original")
	}
}
