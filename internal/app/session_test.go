package app

import (
	"testing"
	"time"

	"anagram-quiz-service/internal/domain"
)

type fixedRounds struct{ n int }

func (f *fixedRounds) Next(tier domain.Tier, _ string) (domain.Round, error) {
	f.n++
	words := []string{"PERU", "CHAD", "CUBA"}
	w := words[f.n%len(words)]
	return domain.Round{Tier: tier, Answer: w, Scrambled: w[1:] + w[:1]}, nil
}

// newTimedSession returns a session whose countdown goroutine never fires on its
// own, so tests drive tick by hand.
func newTimedSession(seconds int) *Session {
	opts := DefaultOptions()
	opts.TimerSeconds = seconds
	opts.TickInterval = time.Hour
	return NewSession("s1", &fixedRounds{}, opts)
}

func TestTickCountsDownAndEndsSession(t *testing.T) {
	s := newTimedSession(2)
	if _, err := s.start(domain.TierEasy); err != nil {
		t.Fatalf("start: %v", err)
	}
	gen := s.timerGen

	if !s.tick(gen) {
		t.Fatalf("first tick should keep the timer running")
	}
	if got := s.State().RemainingSeconds; got != 1 {
		t.Fatalf("expected 1 second left, got %d", got)
	}
	if s.tick(gen) {
		t.Fatalf("last tick should stop the timer")
	}
	state := s.State()
	if state.Status != domain.StatusOver || state.Scrambled != "" {
		t.Fatalf("expected session over with hidden round, got %+v", state)
	}
	if _, err := s.skip(); err != domain.ErrSessionOver {
		t.Fatalf("expected session over, got %v", err)
	}
	s.close()
}

func TestStaleTickIsIgnored(t *testing.T) {
	s := newTimedSession(5)
	if _, err := s.start(domain.TierEasy); err != nil {
		t.Fatalf("start: %v", err)
	}
	stale := s.timerGen
	if !s.tick(stale) {
		t.Fatalf("tick should run")
	}

	if _, err := s.skip(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if s.tick(stale) {
		t.Fatalf("tick from a replaced round must be a no-op")
	}
	if got := s.State().RemainingSeconds; got != 5 {
		t.Fatalf("new round should have a full countdown, got %d", got)
	}
	s.close()
}

func TestUntimedSessionHasNoCountdown(t *testing.T) {
	s := NewSession("s1", &fixedRounds{}, DefaultOptions())
	state, err := s.start("")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Timed || state.RemainingSeconds != 0 || s.stopTimer != nil {
		t.Fatalf("expected no countdown, got %+v", state)
	}
}

func TestClosedSessionRejectsSubscribers(t *testing.T) {
	s := NewSession("s1", &fixedRounds{}, DefaultOptions())
	s.close()
	ch, cancel := s.subscribe()
	defer cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
}

func TestNotStartedSessionRejectsPlay(t *testing.T) {
	s := NewSession("s1", &fixedRounds{}, DefaultOptions())
	if _, err := s.submit("peru"); err != domain.ErrSessionNotStarted {
		t.Fatalf("expected not started, got %v", err)
	}
	if _, _, err := s.hint(); err != domain.ErrSessionNotStarted {
		t.Fatalf("expected not started, got %v", err)
	}
	if _, err := s.changeTier(domain.TierHard); err != domain.ErrSessionNotStarted {
		t.Fatalf("expected not started, got %v", err)
	}
}
