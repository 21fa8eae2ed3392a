package timer

import (
	"fmt"
	"time"
)

// FormatElapsed formats a duration as HH:MM:SS for the timer display.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatElapsedMS formats a millisecond count as HH:MM:SS.
func FormatElapsedMS(ms int64) string {
	return FormatElapsed(time.Duration(ms) * time.Millisecond)
}
