package game

import "anagram-quiz-service/internal/domain"

// Scoring holds the point policy. The zero value falls back to the defaults.
type Scoring struct {
	Awards  map[domain.Tier]int
	Penalty int
}

func DefaultScoring() Scoring {
	awards := make(map[domain.Tier]int, len(defaultAwards))
	for t, p := range defaultAwards {
		awards[t] = p
	}
	return Scoring{Awards: awards, Penalty: DefaultPenalty}
}

// Award returns the points for a correct answer on tier.
func (s Scoring) Award(tier domain.Tier) int {
	if p, ok := s.Awards[tier]; ok {
		return p
	}
	return defaultAwards[tier]
}

func (s Scoring) penalty() int {
	if s.Penalty > 0 {
		return s.Penalty
	}
	return DefaultPenalty
}

// Evaluate compares guess to the round's answer ignoring case and surrounding whitespace.
// An empty guess is simply incorrect.
func (s Scoring) Evaluate(guess string, round domain.Round) domain.Verdict {
	if Matches(guess, round.Answer) {
		return domain.Verdict{Correct: true, Points: s.Award(round.Tier)}
	}
	return domain.Verdict{Correct: false, Points: s.penalty()}
}

// Matches reports an exact match after trimming and upper-casing both sides.
func Matches(guess, answer string) bool {
	g := canonical(guess)
	return g != "" && g == canonical(answer)
}

// Apply returns score adjusted by v, never below zero.
func Apply(score int, v domain.Verdict) int {
	if v.Correct {
		return score + v.Points
	}
	if score -= v.Points; score < 0 {
		return 0
	}
	return score
}

// Message is the player-facing text for a verdict.
func Message(v domain.Verdict) string {
	if v.Correct {
		return MessageCorrect
	}
	return MessageIncorrect
}
