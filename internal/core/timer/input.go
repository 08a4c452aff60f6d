package timer

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	maxInputLength = 2
	maxMinutes     = 99
	maxSeconds     = 59
	tickStepMillis = int64(1000)
)

// FilterInput keeps ASCII digits and truncates to two characters.
func FilterInput(text string) string {
	var builder strings.Builder
	for _, char := range text {
		if builder.Len() == maxInputLength {
			break
		}
		if char >= '0' && char <= '9' {
			builder.WriteRune(char)
		}
	}
	return builder.String()
}

// TotalMillis converts the two input fields to a countdown length.
// Unparseable fields count as zero, seconds clamp to 0..59 and minutes to 0..99.
func TotalMillis(minutes, seconds string) int64 {
	mins := clamp(parseField(minutes), 0, maxMinutes)
	secs := clampSeconds(parseField(seconds))
	return int64(mins*60+secs) * 1000
}

// FormatMillis renders a duration in milliseconds as MM:SS.
func FormatMillis(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	total := millis / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func normalizeSeconds(seconds string) string {
	return fmt.Sprintf("%02d", clampSeconds(parseField(seconds)))
}

func parseField(text string) int {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return value
}

func clampSeconds(seconds int) int {
	return clamp(seconds, 0, maxSeconds)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
