package models

// -----------------------------------------------------------------------------

// MGenerationConfig are the inputs of one generation run. Volatility and
// drift are annualized; both are scaled down to per-minute values by the
// simulator.
type MGenerationConfig struct {
	DaysNeeded int     `yaml:"days_needed" json:"days_needed"`
	StartPrice float64 `yaml:"start_price" json:"start_price"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
	Drift      float64 `yaml:"drift" json:"drift"`
}
