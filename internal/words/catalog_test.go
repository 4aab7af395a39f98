package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"anagram-quiz-service/internal/domain"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	catalog, err := Load(context.Background(), Embedded())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	for _, tier := range domain.Tiers() {
		if len(catalog.WordsFor(tier)) == 0 {
			t.Fatalf("expected words for %s", tier)
		}
	}
	easy := catalog.WordsFor(domain.TierEasy)
	if easy[0] != "USA" {
		t.Fatalf("expected catalog order preserved, got %q first", easy[0])
	}
	counts := catalog.Counts()
	sum := 0
	for _, tier := range domain.LevelTiers {
		sum += counts[tier]
	}
	if counts[domain.TierAll] != sum {
		t.Fatalf("expected all tier to hold %d words, got %d", sum, counts[domain.TierAll])
	}
}

func TestLoadRejectsEmptyTier(t *testing.T) {
	loader := NewStaticLoader(map[domain.Tier][]string{
		domain.TierEasy:   {"Peru"},
		domain.TierMedium: {"Kenya"},
		domain.TierHard:   {"  "},
		domain.TierExpert: {"Belarus"},
	})
	_, err := Load(context.Background(), loader)
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Fatalf("expected empty pool error, got %v", err)
	}
}

func TestLoadRejectsMissingTier(t *testing.T) {
	loader := NewStaticLoader(map[domain.Tier][]string{
		domain.TierEasy: {"Peru"},
	})
	if _, err := Load(context.Background(), loader); !errors.Is(err, domain.ErrEmptyPool) {
		t.Fatalf("expected empty pool error, got %v", err)
	}
}

func TestNewRejectsNonLetters(t *testing.T) {
	_, err := New(map[domain.Tier][]string{
		domain.TierEasy:   {"Peru"},
		domain.TierMedium: {"Kenya2"},
		domain.TierHard:   {"Latvia"},
		domain.TierExpert: {"Belarus"},
	})
	if !errors.Is(err, domain.ErrInvalidWord) {
		t.Fatalf("expected invalid word error, got %v", err)
	}
}

func TestNewNormalizesWhitespaceAndDedupesAll(t *testing.T) {
	catalog, err := New(map[domain.Tier][]string{
		domain.TierEasy:   {"  Sri   Lanka ", "Peru"},
		domain.TierMedium: {"peru"},
		domain.TierHard:   {"Latvia"},
		domain.TierExpert: {"Belarus"},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := catalog.WordsFor(domain.TierEasy)[0]; got != "Sri Lanka" {
		t.Fatalf("expected normalized word, got %q", got)
	}
	if got := len(catalog.WordsFor(domain.TierAll)); got != 4 {
		t.Fatalf("expected 4 distinct words in all tier, got %d", got)
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("easy: [Peru, Chad]\nmedium: [Kenya]\nhard: [Latvia]\nexpert: [Belarus]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader, err := FileLoader(path)
	if err != nil {
		t.Fatalf("file loader: %v", err)
	}
	catalog, err := Load(context.Background(), loader)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := catalog.WordsFor(domain.TierEasy); len(got) != 2 || got[1] != "Chad" {
		t.Fatalf("unexpected easy words %v", got)
	}
}

func TestFileLoaderRejectsUnknownTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("legendary: [Peru]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := FileLoader(path); !errors.Is(err, domain.ErrUnknownTier) {
		t.Fatalf("expected unknown tier error, got %v", err)
	}
}
