package domain

import (
	"fmt"
	"strings"
)

// Tier selects the word pool and the points awarded for a correct answer.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
	TierExpert Tier = "expert"
	// TierAll draws from every other tier.
	TierAll Tier = "all"
)

// LevelTiers is the fixed progression order. TierAll is not part of it.
var LevelTiers = []Tier{TierEasy, TierMedium, TierHard, TierExpert}

// Tiers lists every selectable tier.
func Tiers() []Tier {
	return append(append([]Tier{}, LevelTiers...), TierAll)
}

// ParseTier resolves a tier name case-insensitively.
func ParseTier(raw string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, raw)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	switch t {
	case TierEasy, TierMedium, TierHard, TierExpert, TierAll:
		return true
	}
	return false
}

// HintsAllowed reports whether players may request hints on this tier.
func (t Tier) HintsAllowed() bool {
	return t == TierHard || t == TierExpert
}

// Next returns the tier following t in the level progression.
func (t Tier) Next() (Tier, bool) {
	for i, lt := range LevelTiers {
		if lt == t && i+1 < len(LevelTiers) {
			return LevelTiers[i+1], true
		}
	}
	return "", false
}

// Round is a single scrambled-word challenge.
type Round struct {
	Tier      Tier
	Answer    string // upper-case canonical form
	Scrambled string
	Hint      string // revealed prefix of Answer
}

// Verdict is the outcome of evaluating a guess. Points is the award when Correct
// and the penalty otherwise.
type Verdict struct {
	Correct bool `json:"correct"`
	Points  int  `json:"points"`
}

// SessionStatus is the coarse state of a game session.
type SessionStatus string

const (
	StatusNotStarted    SessionStatus = "not_started"
	StatusInRound       SessionStatus = "in_round"
	StatusLevelComplete SessionStatus = "level_complete"
	StatusOver          SessionStatus = "over"
)

// SessionState is the client-facing snapshot of a session. It never carries the live answer.
type SessionState struct {
	SessionID          string        `json:"sessionId"`
	Status             SessionStatus `json:"status"`
	Tier               Tier          `json:"tier"`
	Score              int           `json:"score"`
	Scrambled          string        `json:"scrambled"`
	Hint               string        `json:"hint"`
	HintsUsed          int           `json:"hintsUsed"`
	HintsAllowed       bool          `json:"hintsAllowed"`
	ConsecutiveCorrect int           `json:"consecutiveCorrect"`
	RemainingSeconds   int           `json:"remainingSeconds"`
	Timed              bool          `json:"timed"`
}

// GuessResult summarizes a submitted guess.
type GuessResult struct {
	Verdict       Verdict      `json:"verdict"`
	Score         int          `json:"score"`
	Message       string       `json:"message"`
	Answer        string       `json:"answer,omitempty"` // set when the round advanced
	LevelComplete bool         `json:"levelComplete"`
	State         SessionState `json:"state"`
}

// HintResult is the outcome of a successful hint request. HintsRemaining is -1 when unlimited.
type HintResult struct {
	Hint           string `json:"hint"`
	HintsUsed      int    `json:"hintsUsed"`
	HintsRemaining int    `json:"hintsRemaining"`
}

// LeaderboardEntry is a saved score.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Leaderboard is ordered by score, highest first.
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}
