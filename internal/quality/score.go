// Package quality computes per-file quality scores from structural
// metrics and anti-pattern findings.
package quality

import (
	"math"

	"stacklens/internal/arch"
)

// Inputs are the per-file metrics the score is derived from.
// AvgComplexity is optional; zero means no complexity estimate was
// available and no complexity penalty applies.
type Inputs struct {
	Loc           int        `json:"loc"`
	Methods       int        `json:"methods"`
	Annotations   int        `json:"annotations"`
	AvgComplexity float64    `json:"avgComplexity"`
	Layer         arch.Layer `json:"layer"`
	AntiPattern   string     `json:"antiPattern"` // "clean" when none detected
}

// MaxScore is the score of a file with no penalties.
const MaxScore = 10.0

// Score computes a quality score in [0, 10], rounded to two decimals.
//
// Penalties, in order: file size, cyclomatic complexity, method count
// (god class), missing layering, annotation overload, and any detected
// anti-pattern. The score is clamped at zero.
func Score(in Inputs) float64 {
	score := MaxScore

	switch {
	case in.Loc > 500:
		score -= 2.5
	case in.Loc > 300:
		score -= 1.5
	case in.Loc > 150:
		score -= 0.8
	}

	switch {
	case in.AvgComplexity > 15:
		score -= 3.0
	case in.AvgComplexity > 10:
		score -= 2.0
	case in.AvgComplexity > 7:
		score -= 1.0
	}

	switch {
	case in.Methods > 30:
		score -= 2.5
	case in.Methods > 20:
		score -= 1.5
	}

	if in.Layer == arch.LayerOther {
		score -= 1.2
	}

	if in.Annotations > 25 {
		score -= 1.0
	}

	if in.AntiPattern != "" && in.AntiPattern != "clean" {
		score -= 2.8
	}

	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}
