package game

import "anagram-quiz-service/internal/domain"

const (
	// MaxRepeatResamples caps the redraws spent avoiding the previous answer.
	MaxRepeatResamples = 100

	// DefaultPenalty is deducted from the score on an incorrect guess.
	DefaultPenalty = 10

	// MessageCorrect and MessageIncorrect are the player-facing verdict texts.
	MessageCorrect   = "Correct! Well done!"
	MessageIncorrect = "Incorrect! Try again."
)

// defaultAwards are the points for a correct answer per tier.
var defaultAwards = map[domain.Tier]int{
	domain.TierEasy:   10,
	domain.TierMedium: 15,
	domain.TierHard:   20,
	domain.TierExpert: 30,
	domain.TierAll:    5,
}

// levelThresholds is the streak of correct answers that completes each level.
var levelThresholds = map[domain.Tier]int{
	domain.TierEasy:   10,
	domain.TierMedium: 10,
	domain.TierHard:   7,
	domain.TierExpert: 5,
}
