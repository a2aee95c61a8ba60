// Package timecode converts between human-editable time strings and
// floating-point seconds, used to drive trim boundaries.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts "HH:MM:SS", "MM:SS" or "SS" (fractional seconds
// allowed in any part) into seconds. Malformed input degrades to 0
// rather than failing: trim fields are free-form text and an unreadable
// value means "start of file" by policy.
func Parse(text string) float64 {
	parts := strings.Split(text, ":")

	var weights []float64
	switch len(parts) {
	case 3:
		weights = []float64{3600, 60, 1}
	case 2:
		weights = []float64{60, 1}
	case 1:
		weights = []float64{1}
	default:
		return 0
	}

	total := 0.0
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0
		}
		total += v * weights[i]
	}

	return total
}

// Format renders seconds as "MM:SS.mmm" with zero-padded minutes and
// millisecond precision. Minutes do not roll over into hours, so
// 3725.0 formats as "62:05.000".
func Format(seconds float64) string {
	minutes := int(seconds / 60)
	remainder := seconds - float64(minutes)*60

	return fmt.Sprintf("%02d:%06.3f", minutes, remainder)
}
