package generator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-challenge/src/helpers"
	"chart-challenge/src/models"
	"chart-challenge/src/utils"
)

// minuteSeries builds a continuous flat-bar minute series from closing
// prices, the same shape the simulator emits.
func minuteSeries(closes ...float64) models.MSeries {
	series := make(models.MSeries, len(closes))
	open := closes[0]
	for i, c := range closes {
		if i > 0 {
			open = closes[i-1]
		}
		b := models.MBar{Timestamp: utils.MinuteTimestamp(i), Open: open, High: c, Low: c, Close: c}
		if open > b.High {
			b.High = open
		}
		if open < b.Low {
			b.Low = open
		}
		series[i] = b
	}
	return series
}

// -----------------------------------------------------------------------------

func TestAggregateSeriesHandBuiltFiveMinute(t *testing.T) {
	base := minuteSeries(100, 102, 101, 105, 103, 104, 99, 98, 102, 106)

	out, err := AggregateSeries(base, models.Res5m)
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, utils.SyntheticEpoch.Unix(), first.Timestamp)
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 105.0, first.High)
	assert.Equal(t, 100.0, first.Low)
	assert.Equal(t, 103.0, first.Close)

	second := out[1]
	assert.Equal(t, utils.SyntheticEpoch.Unix()+300, second.Timestamp)
	assert.Equal(t, 103.0, second.Open)
	assert.Equal(t, 106.0, second.High)
	assert.Equal(t, 98.0, second.Low)
	assert.Equal(t, 106.0, second.Close)
}

// -----------------------------------------------------------------------------

func TestAggregateSeriesIdentityAtBase(t *testing.T) {
	base := minuteSeries(10, 11, 12)

	out, err := AggregateSeries(base, models.Res1m)
	require.NoError(t, err)
	assert.Equal(t, base, out)

	// Identity is a copy, not an alias.
	out[0].Close = 999
	assert.Equal(t, 10.0, base[0].Close)
}

// -----------------------------------------------------------------------------

func TestAggregateSeriesEmptyBase(t *testing.T) {
	_, err := AggregateSeries(nil, models.Res1d)

	var genErr *helpers.DataGenerationError
	require.True(t, errors.As(err, &genErr), "expected DataGenerationError, got %v", err)
}

// -----------------------------------------------------------------------------

func TestAggregateSeriesDailyCount(t *testing.T) {
	base, err := SimulateMinutePath(testConfig(), NewSeededSource(8))
	require.NoError(t, err)

	daily, err := AggregateSeries(base, models.Res1d)
	require.NoError(t, err)
	require.Len(t, daily, 5)

	for i, b := range daily {
		assert.Equal(t, utils.SyntheticEpoch.Unix()+int64(i)*utils.SecondsPerDay, b.Timestamp)
	}
}

// -----------------------------------------------------------------------------

func TestAggregateSeriesLastCloseMatchesBase(t *testing.T) {
	base, err := SimulateMinutePath(testConfig(), NewSeededSource(9))
	require.NoError(t, err)
	finalClose := base[len(base)-1].Close

	for _, res := range models.AllResolutions {
		s, err := AggregateSeries(base, res)
		require.NoError(t, err)
		assert.Equal(t, finalClose, s[len(s)-1].Close, "resolution %s", res)
	}
}

// -----------------------------------------------------------------------------

func TestBucketStartCalendarBoundaries(t *testing.T) {
	// 2018-01-10 is a Wednesday.
	wednesday := time.Date(2018, time.January, 10, 13, 47, 0, 0, time.UTC)

	cases := []struct {
		res      models.Resolution
		expected time.Time
	}{
		{models.Res5m, time.Date(2018, 1, 10, 13, 45, 0, 0, time.UTC)},
		{models.Res15m, time.Date(2018, 1, 10, 13, 45, 0, 0, time.UTC)},
		{models.Res1h, time.Date(2018, 1, 10, 13, 0, 0, 0, time.UTC)},
		{models.Res4h, time.Date(2018, 1, 10, 12, 0, 0, 0, time.UTC)},
		{models.Res1d, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)},
		{models.Res1w, time.Date(2018, 1, 8, 0, 0, 0, 0, time.UTC)},
		{models.Res1M, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(string(tc.res), func(t *testing.T) {
			assert.Equal(t, tc.expected.Unix(), bucketStart(wednesday.Unix(), tc.res))
		})
	}
}

// -----------------------------------------------------------------------------

func TestBucketStartWeekSpansMonthEdge(t *testing.T) {
	// 2018-02-03 is a Saturday; its ISO week starts Monday 2018-01-29 while
	// its month starts 2018-02-01.
	saturday := time.Date(2018, time.February, 3, 9, 0, 0, 0, time.UTC)

	assert.Equal(t,
		time.Date(2018, time.January, 29, 0, 0, 0, 0, time.UTC).Unix(),
		bucketStart(saturday.Unix(), models.Res1w))
	assert.Equal(t,
		time.Date(2018, time.February, 1, 0, 0, 0, 0, time.UTC).Unix(),
		bucketStart(saturday.Unix(), models.Res1M))
}
