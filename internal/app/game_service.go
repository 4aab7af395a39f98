package app

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/domain"
	"github.com/rs/zerolog/log"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string, create func(id string) *Session) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// GameService contains the game use cases across many independent sessions.
type GameService struct {
	sessions    SessionRepository
	rounds      RoundSource
	leaderboard *LeaderboardService
	opts        Options
}

func NewGameService(store SessionRepository, rounds RoundSource, board *LeaderboardService, opts Options) *GameService {
	return &GameService{sessions: store, rounds: rounds, leaderboard: board, opts: opts}
}

// Options returns the session policy the service was built with.
func (s *GameService) Options() Options { return s.opts }

// Start (re)starts a session on tier, creating it when needed. An empty tier selects the initial one.
func (s *GameService) Start(_ context.Context, sessionID string, tier domain.Tier) (domain.SessionState, error) {
	if tier != "" && !tier.Valid() {
		return domain.SessionState{}, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	session := s.sessions.GetOrCreate(sessionID, func(id string) *Session {
		return NewSession(id, s.rounds, s.opts)
	})
	state, err := session.start(tier)
	if err != nil {
		return domain.SessionState{}, err
	}
	log.Debug().Str("session", sessionID).Str("tier", string(state.Tier)).Msg("session started")
	return state, nil
}

// SubmitGuess scores guess against the current round.
func (s *GameService) SubmitGuess(_ context.Context, sessionID, guess string) (domain.GuessResult, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.GuessResult{}, err
	}
	result, err := session.submit(guess)
	if err != nil {
		return domain.GuessResult{}, err
	}
	if result.LevelComplete {
		log.Info().Str("session", sessionID).Str("tier", string(result.State.Tier)).Msg("level complete")
	}
	return result, nil
}

// RequestHint reveals one more letter of the current answer.
func (s *GameService) RequestHint(_ context.Context, sessionID string) (domain.HintResult, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.HintResult{}, err
	}
	res, _, err := session.hint()
	return res, err
}

// Skip moves on to a new word without changing the score.
func (s *GameService) Skip(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	return session.skip()
}

// ChangeTier switches the session to tier with a fresh round.
func (s *GameService) ChangeTier(_ context.Context, sessionID string, tier domain.Tier) (domain.SessionState, error) {
	if !tier.Valid() {
		return domain.SessionState{}, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	session, err := s.get(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	return session.changeTier(tier)
}

// AdvanceLevel moves a session that completed its level to the next tier.
func (s *GameService) AdvanceLevel(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	return session.advance()
}

// State returns the current snapshot of a session.
func (s *GameService) State(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	return session.State(), nil
}

// Subscribe returns a channel that receives session snapshots, including countdown ticks.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe(_ context.Context, sessionID string) (<-chan domain.SessionState, func(), error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// SaveScore records the session's current score under name.
func (s *GameService) SaveScore(ctx context.Context, sessionID, name string) (domain.Leaderboard, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	if session.State().Status == domain.StatusNotStarted {
		return domain.Leaderboard{}, domain.ErrSessionNotStarted
	}
	return s.leaderboard.Record(ctx, name, session.Score())
}

// Leaderboard returns the saved scores.
func (s *GameService) Leaderboard(ctx context.Context) domain.Leaderboard {
	return s.leaderboard.Load(ctx)
}

// End stops the session's countdown, releases subscribers and forgets the session.
func (s *GameService) End(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.close()
	s.sessions.Delete(sessionID)
	log.Debug().Str("session", sessionID).Msg("session ended")
}

func (s *GameService) get(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
