package round

import (
	"time"

	"chart-challenge/src/models"
)

// -----------------------------------------------------------------------------
// Chart payload shaping
// -----------------------------------------------------------------------------

// ChartSeries converts a series into the shape the charting library
// consumes: daily and coarser bars carry a calendar-date string, sub-daily
// bars carry epoch seconds.
func ChartSeries(res models.Resolution, s models.MSeries) []models.MChartBar {
	out := make([]models.MChartBar, len(s))
	for i, b := range s {
		var ts interface{}
		if res.IsSubDaily() {
			ts = b.Timestamp
		} else {
			ts = time.Unix(b.Timestamp, 0).UTC().Format("2006-01-02")
		}
		out[i] = models.MChartBar{
			Time:  ts,
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// visibleCharts returns, per resolution, the bars strictly before cutoff.
func visibleCharts(ds models.MDataset, cutoff int64) map[models.Resolution][]models.MChartBar {
	charts := make(map[models.Resolution][]models.MChartBar, len(ds))
	for _, res := range models.AllResolutions {
		charts[res] = ChartSeries(res, ds[res].Before(cutoff))
	}
	return charts
}

// -----------------------------------------------------------------------------

// hiddenCharts returns, per resolution, the bars at or after cutoff: the
// "future" revealed once the round is answered.
func hiddenCharts(ds models.MDataset, cutoff int64) map[models.Resolution][]models.MChartBar {
	charts := make(map[models.Resolution][]models.MChartBar, len(ds))
	for _, res := range models.AllResolutions {
		s := ds[res]
		visible := len(s.Before(cutoff))
		charts[res] = ChartSeries(res, s[visible:])
	}
	return charts
}
