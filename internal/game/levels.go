package game

import "anagram-quiz-service/internal/domain"

// LevelThreshold returns the correct-answer streak that completes tier.
func LevelThreshold(tier domain.Tier) (int, bool) {
	n, ok := levelThresholds[tier]
	return n, ok
}

// LevelComplete reports whether streak finishes tier and there is a tier to move on to.
// Expert is terminal, so it never completes.
func LevelComplete(tier domain.Tier, streak int) bool {
	threshold, ok := LevelThreshold(tier)
	if !ok || streak < threshold {
		return false
	}
	_, hasNext := tier.Next()
	return hasNext
}
