package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session has not been initialized.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionNotStarted is returned when a player acts before starting the game.
	ErrSessionNotStarted = errors.New("game session not started")
	// ErrSessionOver indicates the countdown expired and the session must be restarted.
	ErrSessionOver = errors.New("game session is over")
	// ErrLevelComplete is returned for guesses made while a level advance is pending.
	ErrLevelComplete = errors.New("level complete, advance to continue")
	// ErrNoNextLevel indicates an advance was requested without a completed level.
	ErrNoNextLevel = errors.New("no level to advance to")
	// ErrUnknownTier indicates a tier name outside the catalog.
	ErrUnknownTier = errors.New("unknown tier")
	// ErrEmptyPool indicates a tier has no words configured.
	ErrEmptyPool = errors.New("word pool is empty")
	// ErrInvalidWord indicates a catalog word with characters other than letters and spaces.
	ErrInvalidWord = errors.New("invalid catalog word")
	// ErrHintIneligible is returned when hints are requested on a tier that does not allow them.
	ErrHintIneligible = errors.New("hints are not available for this tier")
	// ErrHintExhausted is returned when no further letters may be revealed.
	ErrHintExhausted = errors.New("no hints left")
	// ErrEmptyName indicates a leaderboard entry without a display name.
	ErrEmptyName = errors.New("leaderboard name is empty")
)
