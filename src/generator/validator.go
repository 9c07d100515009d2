package generator

import (
	"fmt"
	"math"
	"strings"

	"chart-challenge/src/helpers"
	"chart-challenge/src/models"
)

// -----------------------------------------------------------------------------

// openTolerance is the maximum relative deviation allowed between the first
// open of any resolution and the base resolution's first open.
const openTolerance = 1e-4

// -----------------------------------------------------------------------------

// ValidateDataset is the final gate before a dataset is handed to callers.
// It checks that every resolution is present and non-empty, that no price is
// NaN or infinite, and that all resolutions agree on the first open (within
// tolerance) and on the last close (exactly). A dataset that fails here is
// discarded whole; callers regenerate with a fresh random stream instead of
// patching values.
func ValidateDataset(ds models.MDataset) error {
	for _, res := range models.AllResolutions {
		s, ok := ds[res]
		if !ok || len(s) == 0 {
			return helpers.NewDataGenerationError("no data available for resolution %s", res)
		}
		for _, b := range s {
			if !finite(b.Open) || !finite(b.High) || !finite(b.Low) || !finite(b.Close) {
				return helpers.NewDataGenerationError(
					"non-numeric price in resolution %s at timestamp %d", res, b.Timestamp)
			}
		}
	}

	base := ds[models.Res1m]
	refOpen := base[0].Open
	refClose := base[len(base)-1].Close

	var badOpens []string
	var badCloses []string

	for _, res := range models.AllResolutions {
		s := ds[res]

		open := s[0].Open
		if math.Abs(open-refOpen)/refOpen > openTolerance {
			badOpens = append(badOpens, fmt.Sprintf("%s=%v", res, open))
		}

		if close := s[len(s)-1].Close; close != refClose {
			badCloses = append(badCloses, fmt.Sprintf("%s=%v", res, close))
		}
	}

	if len(badOpens) > 0 {
		return helpers.NewPriceValidationError(
			"first-bar open mismatch across resolutions (base=%v): %s",
			refOpen, strings.Join(badOpens, ", "))
	}
	if len(badCloses) > 0 {
		return helpers.NewPriceValidationError(
			"last-bar close mismatch across resolutions (base=%v): %s",
			refClose, strings.Join(badCloses, ", "))
	}

	return nil
}

// -----------------------------------------------------------------------------

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
