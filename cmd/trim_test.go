package cmd

import (
	"errors"
	"math"
	"testing"

	"github.com/zoe20230520/audiocutter/pkg/audio"
)

func testBuffer(rate, channels, frames int) *audio.Buffer {
	buf := audio.NewBuffer(rate, channels, frames)
	for ch := range buf.Channels {
		for i := range buf.Channels[ch] {
			buf.Channels[ch][i] = 0.4
		}
	}
	return buf
}

func TestApplyEditsDefaultsKeepWholeFile(t *testing.T) {
	buf := testBuffer(1000, 2, 1000)

	out, err := applyEdits(buf, editOptions{start: "0", gain: 1.0})
	if err != nil {
		t.Fatalf("applyEdits failed: %v", err)
	}

	if out.NumFrames() != 1000 {
		t.Errorf("NumFrames: got %d, want 1000", out.NumFrames())
	}
	if out.Channels[0][500] != 0.4 {
		t.Errorf("sample changed: got %v, want 0.4", out.Channels[0][500])
	}
}

func TestApplyEditsRangeAndGain(t *testing.T) {
	buf := testBuffer(1000, 1, 2000) // 2 seconds

	out, err := applyEdits(buf, editOptions{start: "0.5", end: "00:01.500", gain: 2.0})
	if err != nil {
		t.Fatalf("applyEdits failed: %v", err)
	}

	if out.NumFrames() != 1000 {
		t.Errorf("NumFrames: got %d, want 1000", out.NumFrames())
	}
	if math.Abs(out.Channels[0][0]-0.8) > 1e-12 {
		t.Errorf("gained sample: got %v, want 0.8", out.Channels[0][0])
	}
	// original untouched by slice-based pipeline
	if buf.Channels[0][0] != 0.4 {
		t.Errorf("input buffer mutated: got %v", buf.Channels[0][0])
	}
}

func TestApplyEditsNormalizeAndMono(t *testing.T) {
	buf := testBuffer(1000, 2, 100)

	out, err := applyEdits(buf, editOptions{start: "0", gain: 1.0, normalize: true, mono: true})
	if err != nil {
		t.Fatalf("applyEdits failed: %v", err)
	}

	if out.NumChannels() != 1 {
		t.Fatalf("NumChannels: got %d, want 1", out.NumChannels())
	}
	if math.Abs(out.Channels[0][0]-0.95) > 1e-12 {
		t.Errorf("normalized sample: got %v, want 0.95", out.Channels[0][0])
	}
}

func TestApplyEditsInvalidRange(t *testing.T) {
	buf := testBuffer(1000, 1, 1000)

	// malformed end parses leniently to 0, making the range empty
	_, err := applyEdits(buf, editOptions{start: "0", end: "not-a-time", gain: 1.0})
	if !errors.Is(err, audio.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange", err)
	}

	_, err = applyEdits(buf, editOptions{start: "0", end: "5:00", gain: 1.0})
	if !errors.Is(err, audio.ErrInvalidRange) {
		t.Errorf("past-end error = %v, want ErrInvalidRange", err)
	}
}

func TestTrimmedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"song.mp3", "song_trimmed.wav"},
		{"/tmp/take.flac", "take_trimmed.wav"},
		{"noext", "noext_trimmed.wav"},
	}

	for _, tt := range tests {
		if got := trimmedName(tt.in); got != tt.want {
			t.Errorf("trimmedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
