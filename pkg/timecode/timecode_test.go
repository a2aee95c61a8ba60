package timecode

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "hours minutes seconds", text: "01:02:03.500", want: 3723.5},
		{name: "minutes seconds", text: "02:03.500", want: 123.5},
		{name: "seconds only", text: "5.25", want: 5.25},
		{name: "integer seconds", text: "90", want: 90},
		{name: "zero", text: "0", want: 0},
		{name: "malformed text", text: "not-a-time", want: 0},
		{name: "malformed part", text: "01:xx:03", want: 0},
		{name: "empty", text: "", want: 0},
		{name: "too many parts", text: "1:2:3:4", want: 0},
		{name: "surrounding spaces", text: " 01 : 30 ", want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "minutes and millis", seconds: 125.4, want: "02:05.400"},
		{name: "zero", seconds: 0, want: "00:00.000"},
		{name: "sub-second", seconds: 0.5, want: "00:00.500"},
		{name: "no hour rollover", seconds: 3725, want: "62:05.000"},
		{name: "whole minute", seconds: 60, want: "01:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.seconds)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 1.5, 59.999, 125.4, 600} {
		if got := Parse(Format(seconds)); math.Abs(got-seconds) > 1e-3 {
			t.Errorf("Parse(Format(%v)) = %v", seconds, got)
		}
	}
}
