package redis

import (
	"testing"
	"time"

	"anagram-quiz-service/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	_ = store.GetOrCreate("s-1", func(id string) *app.Session {
		return app.NewSession(id, nil, app.DefaultOptions())
	})
	if !mr.Exists("anagram:session:s-1") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("anagram:session:s-1"); ttl != time.Minute {
		t.Fatalf("expected marker ttl of a minute, got %v", ttl)
	}

	store.Delete("s-1")
	if mr.Exists("anagram:session:s-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreRefreshesMarkerOnActivity(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	_ = store.GetOrCreate("s-1", func(id string) *app.Session {
		return app.NewSession(id, nil, app.DefaultOptions())
	})

	for i := 0; i < 3; i++ {
		mr.FastForward(40 * time.Second)
		if _, ok := store.Get("s-1"); !ok {
			t.Fatalf("expected live session")
		}
	}
	if !mr.Exists("anagram:session:s-1") {
		t.Fatalf("marker of an active session expired")
	}
	if ttl := mr.TTL("anagram:session:s-1"); ttl != time.Minute {
		t.Fatalf("expected refreshed ttl of a minute, got %v", ttl)
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("unexpected session")
	}
	if mr.Exists("anagram:session:missing") {
		t.Fatalf("lookup of an unknown session must not create a marker")
	}
}
