package speech

import "strings"

// Segment splits text on the cue marker, case-insensitively, and returns the
// trimmed non-empty pieces in order.
func Segment(text string) []string {
	var segments []string
	for _, part := range cuePattern.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
