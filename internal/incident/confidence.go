package incident

import "strings"

// Confidence scoring weights. The score signals how much textual
// evidence backed the classification; it is not a probability.
const (
	confidenceBase    = 0.5
	longDescBonus     = 0.2 // description > 100 chars
	veryLongDescBonus = 0.1 // description > 300 chars, cumulative
	perTermBonus      = 0.1
	maxTermBonus      = 0.3
	confidenceCeiling = 1.0
	longDescThreshold = 100
	veryLongThreshold = 300
)

// technicalTerms is the fixed vocabulary counted toward the term bonus.
var technicalTerms = []string{"error", "exception", "timeout", "failure", "crash", "bug", "issue"}

// ConfidenceScore computes the evidence score for a report. The result
// is always in [0.5, 1.0]: the base is the floor and the ceiling clamps
// the cumulative bonuses.
func ConfidenceScore(title, description string) float64 {
	score := confidenceBase

	if len(description) > longDescThreshold {
		score += longDescBonus
	}
	if len(description) > veryLongThreshold {
		score += veryLongDescBonus
	}

	text := strings.ToLower(title + " " + description)
	termBonus := 0.0
	for _, term := range technicalTerms {
		if strings.Contains(text, term) {
			termBonus += perTermBonus
		}
	}
	if termBonus > maxTermBonus {
		termBonus = maxTermBonus
	}
	score += termBonus

	if score > confidenceCeiling {
		score = confidenceCeiling
	}
	return score
}
