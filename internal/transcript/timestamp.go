package transcript

import (
	"fmt"
	"math"
)

// TimestampStyle selects the separator between seconds and milliseconds.
type TimestampStyle int

const (
	// StyleSRT renders HH:MM:SS,mmm.
	StyleSRT TimestampStyle = iota
	// StyleVTT renders HH:MM:SS.mmm.
	StyleVTT
)

// FormatTimestamp renders seconds as a subtitle cue timestamp. Every field is
// truncated, never rounded, and hours are not capped.
func FormatTimestamp(seconds float64, style TimestampStyle) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(floorMod(seconds, 3600) / 60))
	secs := int(math.Floor(floorMod(seconds, 60)))
	millis := int(floorMod(seconds, 1) * 1000)

	sep := ','
	if style == StyleVTT {
		sep = '.'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// floorMod returns a modulo b with the sign of b.
func floorMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
