package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"anagram-quiz-service/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestLeaderboardStoreRecordsBlob(t *testing.T) {
	mr, client := newClient(t)
	board := app.NewLeaderboardService(NewLeaderboardStore(client, ""), 5)
	ctx := context.Background()

	for i, score := range []int{50, 90, 10, 70, 30, 60} {
		if _, err := board.Record(ctx, fmt.Sprintf("p%d", i), score); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	lb := board.Load(ctx)
	want := []int{90, 70, 60, 50, 30}
	if len(lb.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), lb.Entries)
	}
	for i, w := range want {
		if lb.Entries[i].Score != w {
			t.Fatalf("expected scores %v, got %+v", want, lb.Entries)
		}
	}

	raw, err := mr.Get(DefaultLeaderboardKey)
	if err != nil {
		t.Fatalf("expected blob under default key: %v", err)
	}
	if raw[0] != '[' {
		t.Fatalf("expected JSON array blob, got %s", raw)
	}
}

func TestLeaderboardStoreCorruptBlobIsEmpty(t *testing.T) {
	mr, client := newClient(t)
	if err := mr.Set("custom:board", "{{{"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	board := app.NewLeaderboardService(NewLeaderboardStore(client, "custom:board"), 5)

	if lb := board.Load(context.Background()); len(lb.Entries) != 0 {
		t.Fatalf("expected empty board for corrupt blob, got %+v", lb.Entries)
	}
	lb, err := board.Record(context.Background(), "Ana", 20)
	if err != nil {
		t.Fatalf("record over corrupt blob: %v", err)
	}
	if len(lb.Entries) != 1 || lb.Entries[0].Name != "Ana" {
		t.Fatalf("expected fresh board with Ana, got %+v", lb.Entries)
	}
}

func TestLeaderboardStoreConcurrentRecords(t *testing.T) {
	_, client := newClient(t)
	board := app.NewLeaderboardService(NewLeaderboardStore(client, ""), 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := board.Record(ctx, fmt.Sprintf("p%d", i), i*10); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent record: %v", err)
	}

	if got := len(board.Load(ctx).Entries); got != 5 {
		t.Fatalf("expected all 5 entries to survive concurrent writes, got %d", got)
	}
}
