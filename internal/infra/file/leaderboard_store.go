// Package file persists the leaderboard blob on local disk for the terminal client.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// LeaderboardStore keeps the blob in a single JSON file. Writes go through a
// temp file and rename so a crash never leaves a half-written board.
type LeaderboardStore struct {
	path string
	mu   sync.Mutex
}

func NewLeaderboardStore(path string) *LeaderboardStore {
	return &LeaderboardStore{path: path}
}

func (s *LeaderboardStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *LeaderboardStore) Update(_ context.Context, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readLocked()
	if err != nil {
		// unreadable file: start from an empty board rather than failing the save
		current = nil
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.writeLocked(next)
}

func (s *LeaderboardStore) readLocked() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return data, nil
}

func (s *LeaderboardStore) writeLocked(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".leaderboard-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close leaderboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace leaderboard: %w", err)
	}
	return nil
}
