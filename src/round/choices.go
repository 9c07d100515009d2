package round

import (
	"math"

	"github.com/dustin/go-humanize"

	"chart-challenge/src/generator"
)

// -----------------------------------------------------------------------------

// decoyAttemptsPerChoice caps random decoy draws before falling back to
// tick-stepped values; low prices offer few distinct cent values inside the
// band.
const decoyAttemptsPerChoice = 50

// -----------------------------------------------------------------------------

// FormatPrice renders a price with exactly 2 decimal places and thousands
// separators, e.g. 1234.5 -> "1,234.50".
func FormatPrice(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// -----------------------------------------------------------------------------

// BuildChoices returns count formatted price strings: the true final close
// plus distinct decoys drawn within +/-bandPct percent of it, shuffled.
// The second return value is the index of the correct choice.
func BuildChoices(answer float64, count int, bandPct float64, src generator.UniformSource) ([]string, int) {
	correct := FormatPrice(answer)
	choices := []string{correct}
	seen := map[string]struct{}{correct: {}}

	attempts := 0
	for len(choices) < count && attempts < count*decoyAttemptsPerChoice {
		attempts++

		f := (src.Float64()*2 - 1) * bandPct / 100
		decoy := math.Round(answer*(1+f)*100) / 100
		if decoy <= 0 {
			continue
		}

		s := FormatPrice(decoy)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		choices = append(choices, s)
	}

	// Fallback: step away one tick at a time until full.
	for tick := 0.01; len(choices) < count; tick += 0.01 {
		s := FormatPrice(answer + tick)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		choices = append(choices, s)
	}

	shuffle(choices, src)

	for i, s := range choices {
		if s == correct {
			return choices, i
		}
	}
	return choices, 0 // unreachable: correct is always a member
}

// -----------------------------------------------------------------------------

// shuffle is a Fisher-Yates pass driven by the injected source.
func shuffle(s []string, src generator.UniformSource) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		s[i], s[j] = s[j], s[i]
	}
}
