package engine

import "adaptive-quiz/internal/domain"

// NextDifficulty computes the target tier for a player's next round from
// their last round score. A perfect round escalates: Easy moves to Medium,
// any other tier moves to Hard (Hard stays at the ceiling). Scoring at or
// below half the round forces Medium regardless of the current tier. Anything
// in between keeps the current tier.
//
// The half-score branch deliberately does not step Hard down through Medium
// to Easy; the ladder recenters on Medium instead. Pure and total.
func NextDifficulty(current domain.Difficulty, lastScore, roundSize int) domain.Difficulty {
	switch {
	case lastScore == roundSize:
		if current == domain.Easy {
			return domain.Medium
		}
		return domain.Hard
	case lastScore <= roundSize/2:
		return domain.Medium
	default:
		return current
	}
}
