package generator

import (
	"time"

	"chart-challenge/src/helpers"
	"chart-challenge/src/models"
)

// -----------------------------------------------------------------------------

// AggregateSeries partitions the base minute series into contiguous buckets
// aligned to the resolution's calendar boundary and reduces each bucket to
// one bar: open of the first member, max high, min low, close of the last
// member, stamped with the aligned bucket start.
//
// The base series covers exactly whole days from an epoch aligned to a week
// and month start, so every bucket is clamped to the valid range by
// construction: no partial leading bucket can exist and a trailing weekly or
// monthly bucket simply aggregates fewer minutes while still ending on the
// base series' final close.
func AggregateSeries(base models.MSeries, res models.Resolution) (models.MSeries, error) {
	if len(base) == 0 {
		return nil, helpers.NewDataGenerationError("cannot aggregate %s: base series is empty", res)
	}

	// Identity at the base resolution.
	if res == models.Res1m {
		out := make(models.MSeries, len(base))
		copy(out, base)
		return out, nil
	}

	var out models.MSeries
	var cur models.MBar
	curStart := int64(-1)

	for _, b := range base {
		start := bucketStart(b.Timestamp, res)

		if start != curStart {
			if curStart >= 0 {
				out = append(out, cur)
			}
			curStart = start
			cur = models.MBar{
				Timestamp: start,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
			}
			continue
		}

		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
	}
	out = append(out, cur)

	return out, nil
}

// -----------------------------------------------------------------------------

// bucketStart returns the aligned start (epoch seconds) of the bucket
// containing ts. Fixed-width resolutions round down on the timestamp
// directly; the Unix epoch is midnight UTC, so the modulo lands on calendar
// minute/hour/day starts. Weekly and monthly buckets need real calendar
// arithmetic.
func bucketStart(ts int64, res models.Resolution) int64 {
	switch res {
	case models.Res5m:
		return ts - ts%(5*60)
	case models.Res15m:
		return ts - ts%(15*60)
	case models.Res1h:
		return ts - ts%3600
	case models.Res4h:
		return ts - ts%(4*3600)
	case models.Res1d:
		return ts - ts%86400
	case models.Res1w:
		t := time.Unix(ts, 0).UTC()
		// ISO week: Monday is day 0.
		offset := (int(t.Weekday()) + 6) % 7
		monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
		return monday.Unix()
	case models.Res1M:
		t := time.Unix(ts, 0).UTC()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Unix()
	}
	return ts
}
