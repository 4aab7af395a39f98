package cli

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/config"
	"anagram-quiz-service/internal/domain"
	pgloader "anagram-quiz-service/internal/infra/postgres"
	"anagram-quiz-service/internal/words"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
)

// loadCatalog reads the word pools from Postgres when a pool is given, otherwise
// from the configured YAML file or the built-in list.
func loadCatalog(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (*words.Catalog, error) {
	var loader words.Loader
	source := "embedded"
	switch {
	case pool != nil:
		loader = pgloader.NewWordLoader(pool)
		source = "postgres"
	case cfg.Game.WordsFile != "":
		fl, err := words.FileLoader(cfg.Game.WordsFile)
		if err != nil {
			return nil, err
		}
		loader = fl
		source = cfg.Game.WordsFile
	default:
		loader = words.Embedded()
	}

	catalog, err := words.Load(ctx, loader)
	if err != nil {
		return nil, fmt.Errorf("word catalog (%s): %w", source, err)
	}
	counts := catalog.Counts()
	log.Info().
		Str("source", source).
		Int("easy", counts[domain.TierEasy]).
		Int("medium", counts[domain.TierMedium]).
		Int("hard", counts[domain.TierHard]).
		Int("expert", counts[domain.TierExpert]).
		Msg("word catalog loaded")
	return catalog, nil
}

// gameOptions maps the config file onto session options.
func gameOptions(cfg config.Config) (app.Options, error) {
	opts := app.DefaultOptions()
	tier, err := domain.ParseTier(cfg.Game.InitialTier)
	if err != nil {
		return opts, err
	}
	opts.InitialTier = tier
	opts.MaxHints = cfg.Game.MaxHints
	opts.AdvanceOnWrong = cfg.Game.AdvanceOnWrong
	opts.ResetStreakOnWrong = cfg.Game.ResetStreakOnWrong
	opts.LevelsEnabled = cfg.Game.Levels
	opts.TimerSeconds = cfg.Game.TimerSeconds

	for name, points := range cfg.Scoring.Awards {
		t, err := domain.ParseTier(name)
		if err != nil {
			return opts, fmt.Errorf("scoring.awards: %w", err)
		}
		opts.Scoring.Awards[t] = points
	}
	if cfg.Scoring.Penalty > 0 {
		opts.Scoring.Penalty = cfg.Scoring.Penalty
	}
	return opts, nil
}
