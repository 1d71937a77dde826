package browser

import "time"

// Epoch identifies a vendor timestamp encoding. Both known encodings are
// integer microsecond counts; they differ only in origin.
type Epoch int

const (
	// EpochWindows is microseconds since 1601-01-01 UTC, used by the
	// Chromium family (Chrome, Edge).
	EpochWindows Epoch = iota
	// EpochUnix is microseconds since 1970-01-01 UTC, used by Firefox.
	EpochUnix
)

// windowsToUnixMicros is the offset between the 1601-01-01 and 1970-01-01
// epochs in microseconds (11644473600 seconds).
const windowsToUnixMicros int64 = 11644473600 * 1000000

// Time converts an encoded timestamp to a canonical time.Time. Conversion is
// exact integer arithmetic; no rounding can shift a record across a day
// boundary.
func (e Epoch) Time(encoded int64) time.Time {
	if e == EpochWindows {
		return time.UnixMicro(encoded - windowsToUnixMicros)
	}
	return time.UnixMicro(encoded)
}

// DayBounds returns the half-open encoded range [lo, hi) covering the full
// local calendar day containing day.
func (e Epoch) DayBounds(day time.Time) (lo, hi int64) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	lo = start.UnixMicro()
	hi = end.UnixMicro()
	if e == EpochWindows {
		lo += windowsToUnixMicros
		hi += windowsToUnixMicros
	}
	return lo, hi
}
