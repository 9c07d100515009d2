package utils

import "time"

// -----------------------------------------------------------------------------

// Constants for the synthetic timeline.
// The epoch is a fixed placeholder instant, not wall-clock "now", so a run is
// fully reproducible given a fixed random stream. 2018-01-01 is both a Monday
// and the first of a month, which keeps weekly and monthly buckets aligned
// from the very first bar.
const (
	MinutesPerDay  = 1440
	MinutesPerYear = 525600.0
	SecondsPerDay  = 86400
)

// SyntheticEpoch is the start instant of every generated series (UTC).
var SyntheticEpoch = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------------------

// MinuteTimestamp returns the epoch-seconds timestamp of the i-th minute on
// the synthetic timeline.
func MinuteTimestamp(i int) int64 {
	return SyntheticEpoch.Unix() + int64(i)*60
}
