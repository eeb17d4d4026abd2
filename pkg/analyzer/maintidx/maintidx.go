// Package maintidx computes the maintainability index, a composite 0-100
// score from Halstead volume, cyclomatic complexity, and lines of code.
package maintidx

import "math"

// Rank is a letter grade for a maintainability index.
type Rank string

const (
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
	RankF Rank = "F"
)

// Index computes the maintainability index. A unit with no lines is
// maximally maintainable by convention. Arithmetic failures (NaN or Inf
// anywhere in the formula) degrade to 0 rather than propagating; inputs
// are validated non-negative upstream, so a failure here indicates a bug
// being masked, not a user error.
func Index(volume float64, complexity, loc int) int {
	if loc <= 0 {
		return 100
	}

	raw := 171.0 -
		5.2*math.Log(math.Max(1, volume)) -
		0.23*float64(complexity) -
		16.2*math.Log(math.Max(1, float64(loc)))

	normalized := raw * 100.0 / 171.0
	if math.IsNaN(normalized) || math.IsInf(normalized, 0) {
		return 0
	}

	if normalized < 0 {
		normalized = 0
	}
	if normalized > 100 {
		normalized = 100
	}

	return int(normalized)
}

// RankOf maps a maintainability index to a letter grade.
func RankOf(mi int) Rank {
	switch {
	case mi >= 85:
		return RankA
	case mi >= 65:
		return RankB
	case mi >= 45:
		return RankC
	case mi >= 25:
		return RankD
	default:
		return RankF
	}
}
