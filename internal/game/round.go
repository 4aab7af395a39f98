package game

import (
	"fmt"
	"strings"
	"sync"

	"anagram-quiz-service/internal/domain"
)

// Catalog provides the word pool of a tier.
type Catalog interface {
	WordsFor(tier domain.Tier) []string
}

// Generator produces rounds. It is safe for concurrent use.
type Generator struct {
	catalog Catalog

	mu  sync.Mutex
	rng Source
}

// NewGenerator builds a generator; a nil rng gets a time-seeded source.
func NewGenerator(catalog Catalog, rng Source) *Generator {
	if rng == nil {
		rng = NewSource()
	}
	return &Generator{catalog: catalog, rng: rng}
}

// Next picks a word for tier, avoiding previousAnswer when the pool allows it, and scrambles it.
func (g *Generator) Next(tier domain.Tier, previousAnswer string) (domain.Round, error) {
	if !tier.Valid() {
		return domain.Round{}, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	pool := g.catalog.WordsFor(tier)
	if len(pool) == 0 {
		return domain.Round{}, fmt.Errorf("%s: %w", tier, domain.ErrEmptyPool)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	previous := canonical(previousAnswer)
	answer := canonical(pool[g.rng.Intn(len(pool))])
	if previous != "" && distinctCount(pool) > 1 {
		for i := 0; i < MaxRepeatResamples && answer == previous; i++ {
			answer = canonical(pool[g.rng.Intn(len(pool))])
		}
	}

	return domain.Round{
		Tier:      tier,
		Answer:    answer,
		Scrambled: Shuffle(g.rng, answer),
	}, nil
}

func canonical(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func distinctCount(pool []string) int {
	seen := make(map[string]struct{}, len(pool))
	for _, w := range pool {
		seen[canonical(w)] = struct{}{}
	}
	return len(seen)
}
