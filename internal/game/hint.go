package game

import (
	"anagram-quiz-service/internal/domain"
)

// Reveal extends the round's hint by one leading letter of the answer.
// maxHints <= 0 means unlimited. The round itself is not modified.
func Reveal(round domain.Round, hintsUsed, maxHints int) (domain.HintResult, error) {
	if !round.Tier.HintsAllowed() {
		return domain.HintResult{}, domain.ErrHintIneligible
	}
	answer := []rune(round.Answer)
	shown := len([]rune(round.Hint))
	if shown >= len(answer) || (maxHints > 0 && hintsUsed >= maxHints) {
		return domain.HintResult{}, domain.ErrHintExhausted
	}

	used := hintsUsed + 1
	remaining := -1
	if maxHints > 0 {
		remaining = maxHints - used
	}
	return domain.HintResult{
		Hint:           string(answer[:shown+1]),
		HintsUsed:      used,
		HintsRemaining: remaining,
	}, nil
}
