// Package timecode converts between frame counts and HH:MM:SS:FF strings at a
// fixed 25 fps. Drop-frame timecode is not supported.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FPS is the fixed frame rate used for all conversions.
	FPS = 25

	// Placeholder is displayed when no position is known.
	Placeholder = "--:--:--:--"

	// Zero is the formatted zero position.
	Zero = "00:00:00:00"
)

// Parse returns the total frame count for tc. Semicolons are accepted as
// separators. Anything other than four non-negative integer fields, including
// the placeholder, yields 0.
func Parse(tc string) int {
	tc = strings.TrimSpace(tc)
	if tc == "" || tc == Placeholder {
		return 0
	}
	parts := strings.Split(strings.ReplaceAll(tc, ";", ":"), ":")
	if len(parts) != 4 {
		return 0
	}

	var fields [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		fields[i] = n
	}
	h, m, s, f := fields[0], fields[1], fields[2], fields[3]
	return (h*3600+m*60+s)*FPS + f
}

// Format renders frames as a zero padded HH:MM:SS:FF string. Negative input
// is clamped to zero.
func Format(frames int) string {
	if frames < 0 {
		frames = 0
	}
	f := frames % FPS
	totalSeconds := frames / FPS
	s := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	m := totalMinutes % 60
	h := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h, m, s, f)
}

// RemainingFrames returns duration-(current-start) formatted; overshoot
// floors at Zero.
func RemainingFrames(current, start, duration int) string {
	elapsed := current - start
	return Format(duration - elapsed)
}

// Remaining is RemainingFrames over timecode strings.
func Remaining(current, start, duration string) string {
	return RemainingFrames(Parse(current), Parse(start), Parse(duration))
}
