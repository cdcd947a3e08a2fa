package optimizer

import (
	"strings"
)

// Fixed heuristic deltas for the improvement score.
const (
	scoreAddedLimit      = 20
	scoreFewerWildcards  = 15
	scoreInToExists      = 10
	scoreSimplified      = 5
	scoreCountRewrite    = 5
	improvementScoreCap  = 100
	cartesianWarningMark = "-- WARNING"
)

// improvementScore estimates how much the rewrite helped, as a value in
// [0, 100]. It is exactly 0 when the text is unchanged and grows
// monotonically with each distinct heuristic trigger.
func improvementScore(original, optimized string) float64 {
	if original == optimized {
		return 0.0
	}

	origUpper := strings.ToUpper(original)
	optUpper := strings.ToUpper(optimized)

	score := 0.0

	if strings.Contains(optUpper, "LIMIT") && !strings.Contains(origUpper, "LIMIT") {
		score += scoreAddedLimit
	}

	if strings.Count(optimized, "*") < strings.Count(original, "*") {
		score += scoreFewerWildcards
	}

	if strings.Contains(optUpper, "EXISTS") && !strings.Contains(origUpper, "EXISTS") &&
		strings.Contains(origUpper, "IN") {
		score += scoreInToExists
	}

	if !strings.Contains(optimized, cartesianWarningMark) && len(optimized) < len(original) {
		score += scoreSimplified
	}

	if strings.Contains(optimized, "COUNT(1)") && strings.Contains(original, "COUNT(*)") {
		score += scoreCountRewrite
	}

	if score > improvementScoreCap {
		return improvementScoreCap
	}
	return score
}
