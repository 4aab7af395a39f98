// Package words holds the tiered country-name catalog the rounds are drawn from.
package words

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"anagram-quiz-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Loader fetches the ordered word list of one tier from a backing store.
type Loader interface {
	LoadWords(ctx context.Context, tier domain.Tier) ([]string, error)
}

// Catalog is an immutable tier -> words mapping. Build it with Load or New.
type Catalog struct {
	tiers map[domain.Tier][]string
}

// Load reads every level tier through loader, validates the lists and derives TierAll.
// Any empty or malformed tier is a configuration error.
func Load(ctx context.Context, loader Loader) (*Catalog, error) {
	lists := make([][]string, len(domain.LevelTiers))
	g, ctx := errgroup.WithContext(ctx)
	for i, tier := range domain.LevelTiers {
		i, tier := i, tier
		g.Go(func() error {
			list, err := loader.LoadWords(ctx, tier)
			if err != nil {
				return fmt.Errorf("load %s words: %w", tier, err)
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := make(map[domain.Tier][]string, len(lists))
	for i, tier := range domain.LevelTiers {
		raw[tier] = lists[i]
	}
	return New(raw)
}

// New validates raw and returns a catalog. TierAll entries in raw are ignored.
func New(raw map[domain.Tier][]string) (*Catalog, error) {
	c := &Catalog{tiers: make(map[domain.Tier][]string, len(domain.LevelTiers)+1)}
	seen := make(map[string]struct{})
	var all []string
	for _, tier := range domain.LevelTiers {
		list, err := normalize(raw[tier])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tier, err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: %w", tier, domain.ErrEmptyPool)
		}
		c.tiers[tier] = list
		for _, w := range list {
			key := strings.ToUpper(w)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, w)
		}
	}
	c.tiers[domain.TierAll] = all
	return c, nil
}

// WordsFor returns a copy of the tier's ordered word list.
func (c *Catalog) WordsFor(tier domain.Tier) []string {
	return append([]string(nil), c.tiers[tier]...)
}

// Counts reports the pool size per tier.
func (c *Catalog) Counts() map[domain.Tier]int {
	out := make(map[domain.Tier]int, len(c.tiers))
	for t, list := range c.tiers {
		out[t] = len(list)
	}
	return out
}

// normalize collapses inner whitespace and rejects anything but letters and spaces.
func normalize(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.Join(strings.Fields(w), " ")
		if w == "" {
			continue
		}
		for _, r := range w {
			if r != ' ' && !unicode.IsLetter(r) {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidWord, w)
			}
		}
		out = append(out, w)
	}
	return out, nil
}
