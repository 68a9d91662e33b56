package timeline

import "fmt"

// TimeUs is a signed timestamp or duration in microseconds.
// It is the sole time unit of the document model; seconds only appear at
// the boundary to external collaborators (prober, player).
type TimeUs int64

// ZeroTime is the timeline origin.
const ZeroTime TimeUs = 0

// Millisecond and Second express common spans in microseconds.
const (
	Millisecond TimeUs = 1_000
	Second      TimeUs = 1_000_000
)

// FromSeconds converts fractional seconds to microseconds, truncating
// sub-microsecond precision.
func FromSeconds(s float64) TimeUs {
	return TimeUs(s * 1_000_000)
}

// Seconds converts t to fractional seconds.
func (t TimeUs) Seconds() float64 {
	return float64(t) / 1_000_000
}

// Abs returns the absolute value of t.
func (t TimeUs) Abs() TimeUs {
	if t < 0 {
		return -t
	}
	return t
}

// String formats t as [-]HH:MM:SS.mmm.
func (t TimeUs) String() string {
	totalMs := t.Abs() / 1_000
	ms := totalMs % 1_000
	totalSecs := totalMs / 1_000
	secs := totalSecs % 60
	totalMins := totalSecs / 60
	mins := totalMins % 60
	hours := totalMins / 60
	if t < 0 {
		return fmt.Sprintf("-%02d:%02d:%02d.%03d", hours, mins, secs, ms)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, mins, secs, ms)
}
