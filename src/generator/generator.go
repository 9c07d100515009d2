package generator

import (
	"chart-challenge/src/models"
)

// -----------------------------------------------------------------------------

// Generate is the full pipeline: configuration in, validated
// multi-resolution dataset out. It is a pure function of the configuration
// and the random source; there is no partial result, either every
// resolution is built and validated or an error is returned.
func Generate(cfg models.MGenerationConfig, src UniformSource) (models.MDataset, error) {
	base, err := SimulateMinutePath(cfg, src)
	if err != nil {
		return nil, err
	}

	ds := make(models.MDataset, len(models.AllResolutions))
	for _, res := range models.AllResolutions {
		s, err := AggregateSeries(base, res)
		if err != nil {
			return nil, err
		}
		ds[res] = s
	}

	if err := ValidateDataset(ds); err != nil {
		return nil, err
	}

	return ds, nil
}

// -----------------------------------------------------------------------------

// GenerateWithSeed runs Generate on a deterministic source. Two calls with
// the same configuration and seed produce identical datasets.
func GenerateWithSeed(cfg models.MGenerationConfig, seed int64) (models.MDataset, error) {
	return Generate(cfg, NewSeededSource(seed))
}
