package memory

import (
	"context"
	"errors"
	"testing"
)

func TestLeaderboardStoreUpdate(t *testing.T) {
	store := NewLeaderboardStore()
	ctx := context.Background()

	blob, err := store.Load(ctx)
	if err != nil || blob != nil {
		t.Fatalf("expected empty store, got %q (%v)", blob, err)
	}

	if err := store.Update(ctx, func(current []byte) ([]byte, error) {
		if len(current) != 0 {
			t.Fatalf("expected no current blob, got %q", current)
		}
		return []byte(`[{"name":"a","score":1}]`), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	failure := errors.New("boom")
	if err := store.Update(ctx, func([]byte) ([]byte, error) { return nil, failure }); !errors.Is(err, failure) {
		t.Fatalf("expected update error, got %v", err)
	}

	blob, _ = store.Load(ctx)
	if string(blob) != `[{"name":"a","score":1}]` {
		t.Fatalf("failed update must not change the blob, got %q", blob)
	}
}
