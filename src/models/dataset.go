package models

// -----------------------------------------------------------------------------
// Resolutions
// -----------------------------------------------------------------------------

// Resolution labels one of the supported candle granularities.
type Resolution string

const (
	Res1m  Resolution = "1m"
	Res5m  Resolution = "5m"
	Res15m Resolution = "15m"
	Res1h  Resolution = "1h"
	Res4h  Resolution = "4h"
	Res1d  Resolution = "1d"
	Res1w  Resolution = "1w"
	Res1M  Resolution = "1M"
)

// AllResolutions lists every resolution in ascending bucket size.
// The first entry is the base resolution everything else is derived from.
var AllResolutions = []Resolution{Res1m, Res5m, Res15m, Res1h, Res4h, Res1d, Res1w, Res1M}

// -----------------------------------------------------------------------------

// IsSubDaily reports whether the resolution is finer than one day.
// Sub-daily series are charted against epoch seconds, daily and coarser
// against calendar-date strings.
func (r Resolution) IsSubDaily() bool {
	switch r {
	case Res1m, Res5m, Res15m, Res1h, Res4h:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// MDataset maps each resolution to its series. Built once per generation
// run and treated as read-only after validation.
type MDataset map[Resolution]MSeries
