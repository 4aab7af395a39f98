package app

import (
	"context"
	"sync"
	"time"

	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/game"
)

// RoundSource generates rounds; *game.Generator is the production implementation.
type RoundSource interface {
	Next(tier domain.Tier, previousAnswer string) (domain.Round, error)
}

// Options configures session behaviour.
type Options struct {
	InitialTier domain.Tier
	// MaxHints is the per-round hint budget; 0 means unlimited.
	MaxHints int
	// AdvanceOnWrong replaces the round after an incorrect guess too.
	AdvanceOnWrong bool
	// ResetStreakOnWrong clears the consecutive-correct count on an incorrect guess.
	ResetStreakOnWrong bool
	LevelsEnabled      bool
	// TimerSeconds is the per-round countdown; 0 disables it.
	TimerSeconds int
	TickInterval time.Duration
	Scoring      game.Scoring
}

func DefaultOptions() Options {
	return Options{
		InitialTier:        domain.TierEasy,
		AdvanceOnWrong:     true,
		ResetStreakOnWrong: true,
		LevelsEnabled:      true,
		TickInterval:       time.Second,
		Scoring:            game.DefaultScoring(),
	}
}

// Session is one player's game. All state changes happen under mu because the
// countdown goroutine and the transport act on it concurrently.
type Session struct {
	id     string
	opts   Options
	rounds RoundSource

	mu                 sync.Mutex
	status             domain.SessionStatus
	tier               domain.Tier
	score              int
	round              domain.Round
	consecutiveCorrect int
	hintsUsed          int

	remaining int
	timerGen  uint64
	stopTimer context.CancelFunc

	closed      bool
	subscribers map[chan domain.SessionState]struct{}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, rounds RoundSource, opts Options) *Session {
	if opts.InitialTier == "" {
		opts.InitialTier = domain.TierEasy
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	return &Session{
		id:          id,
		opts:        opts,
		rounds:      rounds,
		status:      domain.StatusNotStarted,
		tier:        opts.InitialTier,
		subscribers: make(map[chan domain.SessionState]struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// State returns a snapshot of the session.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) start(tier domain.Tier) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tier == "" {
		tier = s.opts.InitialTier
	}
	if err := s.nextRoundLocked(tier); err != nil {
		return domain.SessionState{}, err
	}
	s.tier = tier
	s.score = 0
	s.consecutiveCorrect = 0
	s.status = domain.StatusInRound
	return s.broadcastLocked(), nil
}

func (s *Session) submit(guess string) (domain.GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playableLocked(); err != nil {
		return domain.GuessResult{}, err
	}

	verdict := s.opts.Scoring.Evaluate(guess, s.round)
	streak := s.consecutiveCorrect
	switch {
	case verdict.Correct:
		streak++
	case s.opts.ResetStreakOnWrong:
		streak = 0
	}
	levelDone := verdict.Correct && s.opts.LevelsEnabled && game.LevelComplete(s.tier, streak)
	advance := !levelDone && (verdict.Correct || s.opts.AdvanceOnWrong)

	resolved := s.round.Answer
	if advance {
		if err := s.nextRoundLocked(s.tier); err != nil {
			return domain.GuessResult{}, err
		}
	}

	s.score = game.Apply(s.score, verdict)
	s.consecutiveCorrect = streak
	if levelDone {
		s.status = domain.StatusLevelComplete
		s.stopTimerLocked()
	}

	result := domain.GuessResult{
		Verdict:       verdict,
		Score:         s.score,
		Message:       game.Message(verdict),
		LevelComplete: levelDone,
	}
	if verdict.Correct || advance {
		result.Answer = resolved
	}
	result.State = s.broadcastLocked()
	return result, nil
}

func (s *Session) hint() (domain.HintResult, domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playableLocked(); err != nil {
		return domain.HintResult{}, domain.SessionState{}, err
	}
	res, err := game.Reveal(s.round, s.hintsUsed, s.opts.MaxHints)
	if err != nil {
		return domain.HintResult{}, domain.SessionState{}, err
	}
	s.round.Hint = res.Hint
	s.hintsUsed = res.HintsUsed
	return res, s.broadcastLocked(), nil
}

func (s *Session) skip() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playableLocked(); err != nil {
		return domain.SessionState{}, err
	}
	if err := s.nextRoundLocked(s.tier); err != nil {
		return domain.SessionState{}, err
	}
	return s.broadcastLocked(), nil
}

func (s *Session) changeTier(tier domain.Tier) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case domain.StatusNotStarted:
		return domain.SessionState{}, domain.ErrSessionNotStarted
	case domain.StatusOver:
		return domain.SessionState{}, domain.ErrSessionOver
	}
	if err := s.nextRoundLocked(tier); err != nil {
		return domain.SessionState{}, err
	}
	s.tier = tier
	s.consecutiveCorrect = 0
	s.status = domain.StatusInRound
	return s.broadcastLocked(), nil
}

func (s *Session) advance() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case domain.StatusNotStarted:
		return domain.SessionState{}, domain.ErrSessionNotStarted
	case domain.StatusOver:
		return domain.SessionState{}, domain.ErrSessionOver
	case domain.StatusInRound:
		return domain.SessionState{}, domain.ErrNoNextLevel
	}
	next, ok := s.tier.Next()
	if !ok {
		return domain.SessionState{}, domain.ErrNoNextLevel
	}
	if err := s.nextRoundLocked(next); err != nil {
		return domain.SessionState{}, err
	}
	s.tier = next
	s.consecutiveCorrect = 0
	s.status = domain.StatusInRound
	return s.broadcastLocked(), nil
}

func (s *Session) playableLocked() error {
	switch s.status {
	case domain.StatusNotStarted:
		return domain.ErrSessionNotStarted
	case domain.StatusOver:
		return domain.ErrSessionOver
	case domain.StatusLevelComplete:
		return domain.ErrLevelComplete
	}
	return nil
}

// nextRoundLocked replaces the round wholesale and restarts the countdown.
// Nothing is changed when generation fails.
func (s *Session) nextRoundLocked(tier domain.Tier) error {
	round, err := s.rounds.Next(tier, s.round.Answer)
	if err != nil {
		return err
	}
	s.round = round
	s.hintsUsed = 0
	s.restartTimerLocked()
	return nil
}

func (s *Session) restartTimerLocked() {
	s.stopTimerLocked()
	if s.opts.TimerSeconds <= 0 || s.closed {
		return
	}
	s.remaining = s.opts.TimerSeconds
	gen := s.timerGen
	ctx, cancel := context.WithCancel(context.Background())
	s.stopTimer = cancel

	interval := s.opts.TickInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !s.tick(gen) {
					return
				}
			}
		}
	}()
}

// stopTimerLocked cancels the running countdown; bumping the generation turns any
// tick already in flight into a no-op.
func (s *Session) stopTimerLocked() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	s.timerGen++
}

// tick decrements the countdown of generation gen. It reports whether the timer should keep running.
func (s *Session) tick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timerGen || s.status != domain.StatusInRound || s.closed {
		return false
	}
	s.remaining--
	if s.remaining > 0 {
		s.broadcastLocked()
		return true
	}
	s.remaining = 0
	s.status = domain.StatusOver
	s.stopTimerLocked()
	s.broadcastLocked()
	return false
}

func (s *Session) subscribe() (<-chan domain.SessionState, func()) {
	ch := make(chan domain.SessionState, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// close stops the countdown and releases every subscriber.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcastLocked() domain.SessionState {
	state := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- state:
		default:
			// slow reader: drop the oldest snapshot so the latest always lands
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
	return state
}

func (s *Session) snapshotLocked() domain.SessionState {
	state := domain.SessionState{
		SessionID:          s.id,
		Status:             s.status,
		Tier:               s.tier,
		Score:              s.score,
		HintsUsed:          s.hintsUsed,
		HintsAllowed:       s.tier.HintsAllowed(),
		ConsecutiveCorrect: s.consecutiveCorrect,
		Timed:              s.opts.TimerSeconds > 0,
	}
	if s.status == domain.StatusInRound {
		state.Scrambled = s.round.Scrambled
		state.Hint = s.round.Hint
		state.RemainingSeconds = s.remaining
	}
	return state
}
