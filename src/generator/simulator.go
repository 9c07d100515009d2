package generator

import (
	"math"

	"chart-challenge/src/helpers"
	"chart-challenge/src/models"
	"chart-challenge/src/utils"
)

// -----------------------------------------------------------------------------

const (
	// priceTick emulates realistic price granularity: every simulated price
	// is rounded to 2 decimal places.
	priceTick = 0.01
)

// -----------------------------------------------------------------------------

// ValidateGenerationConfig rejects invalid inputs before any simulation
// work (and before any random draw) happens.
func ValidateGenerationConfig(cfg models.MGenerationConfig) error {
	if cfg.DaysNeeded <= 0 {
		return helpers.NewConfigurationError("days_needed must be positive, got %d", cfg.DaysNeeded)
	}
	if cfg.StartPrice <= 0 {
		return helpers.NewConfigurationError("start_price must be positive, got %g", cfg.StartPrice)
	}
	if cfg.Volatility < 0 {
		return helpers.NewConfigurationError("volatility cannot be negative, got %g", cfg.Volatility)
	}
	return nil
}

// -----------------------------------------------------------------------------

// SimulateMinutePath produces the base one-minute series of length
// days_needed x 1440 following Geometric Brownian Motion:
//
//	S[i] = S[i-1] * exp((mu_min - sigma_min^2/2) + sigma_min * Z)
//
// with annualized volatility scaled by sqrt(minutes-per-year) and drift
// scaled linearly. Each minute bar is flat (O=H=L=C equal to the simulated
// price); the open-continuity pass afterwards forces bar[0].open to the
// exact start price and every later open to the previous close, so the base
// path is gap-free. OHLC spread emerges only through aggregation.
func SimulateMinutePath(cfg models.MGenerationConfig, src UniformSource) (models.MSeries, error) {
	if err := ValidateGenerationConfig(cfg); err != nil {
		return nil, err
	}

	n := cfg.DaysNeeded * utils.MinutesPerDay

	// Per-minute parameters: square-root-of-time scaling for volatility,
	// linear scaling for drift.
	sigmaMin := cfg.Volatility / math.Sqrt(utils.MinutesPerYear)
	muMin := cfg.Drift / utils.MinutesPerYear
	driftTerm := muMin - 0.5*sigmaMin*sigmaMin

	series := make(models.MSeries, n)

	price := cfg.StartPrice
	for i := 0; i < n; i++ {
		if i > 0 {
			z := normFloat64(src)
			price = roundToTick(price * math.Exp(driftTerm+sigmaMin*z))
			if price < priceTick {
				// Tick rounding can collapse very small prices to zero;
				// clamp at one tick to keep every price positive.
				price = priceTick
			}
		}

		series[i] = models.MBar{
			Timestamp: utils.MinuteTimestamp(i),
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
		}
	}

	applyOpenContinuity(series, cfg.StartPrice)

	return series, nil
}

// -----------------------------------------------------------------------------

// applyOpenContinuity forces the first open to the exact configured start
// price and every subsequent open to the previous close, widening wicks
// where the forced open falls outside them.
func applyOpenContinuity(series models.MSeries, startPrice float64) {
	series[0].Open = startPrice
	coverOpen(&series[0])

	for i := 1; i < len(series); i++ {
		series[i].Open = series[i-1].Close
		coverOpen(&series[i])
	}
}

// -----------------------------------------------------------------------------

func coverOpen(b *models.MBar) {
	if b.Open > b.High {
		b.High = b.Open
	}
	if b.Open < b.Low {
		b.Low = b.Open
	}
}

// -----------------------------------------------------------------------------

func roundToTick(v float64) float64 {
	return math.Round(v*100) / 100
}
