package models

// -----------------------------------------------------------------------------

// MBar is one OHLC candle. Timestamp is seconds since the Unix epoch,
// placed on the synthetic timeline (see utils.SyntheticEpoch).
type MBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// -----------------------------------------------------------------------------

// MSeries is an ordered sequence of bars, strictly increasing by timestamp.
type MSeries []MBar

// -----------------------------------------------------------------------------

// First returns the chronologically first bar.
func (s MSeries) First() (MBar, bool) {
	if len(s) == 0 {
		return MBar{}, false
	}
	return s[0], true
}

// -----------------------------------------------------------------------------

// Last returns the chronologically last bar.
func (s MSeries) Last() (MBar, bool) {
	if len(s) == 0 {
		return MBar{}, false
	}
	return s[len(s)-1], true
}

// -----------------------------------------------------------------------------

// Before returns the prefix of the series strictly before cutoff.
// The receiver is not copied; callers treat the result as read-only.
func (s MSeries) Before(cutoff int64) MSeries {
	for i, b := range s {
		if b.Timestamp >= cutoff {
			return s[:i]
		}
	}
	return s
}
