package words

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"anagram-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// StaticLoader serves word lists from an in-memory map (embedded defaults, files, tests).
type StaticLoader struct {
	tiers map[domain.Tier][]string
}

func NewStaticLoader(tiers map[domain.Tier][]string) *StaticLoader {
	return &StaticLoader{tiers: tiers}
}

func (l *StaticLoader) LoadWords(_ context.Context, tier domain.Tier) ([]string, error) {
	if list, ok := l.tiers[tier]; ok {
		return list, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrEmptyPool, tier)
}

// Embedded returns a loader over the built-in country catalog.
func Embedded() *StaticLoader {
	l, err := parseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return l
}

// FileLoader reads a YAML catalog shaped like {tier: [word, ...]}.
func FileLoader(path string) (*StaticLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return l, nil
}

func parseCatalog(data []byte) (*StaticLoader, error) {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	tiers := make(map[domain.Tier][]string, len(raw))
	for name, list := range raw {
		tier, err := domain.ParseTier(name)
		if err != nil {
			return nil, err
		}
		tiers[tier] = list
	}
	return NewStaticLoader(tiers), nil
}
