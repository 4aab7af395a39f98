package migrations

import (
	"context"
	"testing"
)

func TestSeedRowsCoverEveryLevelTier(t *testing.T) {
	rows, err := seedRows(context.Background())
	if err != nil {
		t.Fatalf("seed rows: %v", err)
	}
	next := map[string]int{}
	for _, r := range rows {
		if r.Position != next[r.Tier] {
			t.Fatalf("tier %s: expected position %d, got %d", r.Tier, next[r.Tier], r.Position)
		}
		next[r.Tier]++
	}
	for _, tier := range []string{"easy", "medium", "hard", "expert"} {
		if next[tier] == 0 {
			t.Fatalf("expected seed rows for %s", tier)
		}
	}
	if _, ok := next["all"]; ok {
		t.Fatalf("derived tier must not be seeded")
	}
}

func TestMigrationsRegistered(t *testing.T) {
	if got := len(Migrations.Sorted()); got != 2 {
		t.Fatalf("expected 2 migrations, got %d", got)
	}
}
