package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"anagram-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Game        Game        `yaml:"game"`
	Scoring     Scoring     `yaml:"scoring"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
}

// Game holds the session policy knobs.
type Game struct {
	InitialTier        string `yaml:"initial_tier"`
	MaxHints           int    `yaml:"max_hints"` // 0 = unlimited
	AdvanceOnWrong     bool   `yaml:"advance_on_wrong"`
	ResetStreakOnWrong bool   `yaml:"reset_streak_on_wrong"`
	Levels             bool   `yaml:"levels"`
	TimerSeconds       int    `yaml:"timer_seconds"` // 0 = untimed
	WordsFile          string `yaml:"words_file"`
}

// Scoring overrides the default point table; zero values keep the defaults.
type Scoring struct {
	Awards  map[string]int `yaml:"awards"`
	Penalty int            `yaml:"penalty"`
}

type Leaderboard struct {
	Capacity int    `yaml:"capacity"`
	RedisKey string `yaml:"redis_key"`
	File     string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Log.Level = "info"
	cfg.Game = Game{
		InitialTier:        string(domain.TierEasy),
		AdvanceOnWrong:     true,
		ResetStreakOnWrong: true,
		Levels:             true,
	}
	cfg.Scoring.Penalty = 10
	cfg.Leaderboard = Leaderboard{
		Capacity: 5,
		RedisKey: "anagram:leaderboard",
		File:     "leaderboard.json",
	}
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if _, err := domain.ParseTier(c.Game.InitialTier); err != nil {
		return fmt.Errorf("game.initial_tier: %w", err)
	}
	if c.Game.MaxHints < 0 {
		return fmt.Errorf("game.max_hints must not be negative")
	}
	if c.Game.TimerSeconds < 0 {
		return fmt.Errorf("game.timer_seconds must not be negative")
	}
	if c.Leaderboard.Capacity <= 0 {
		return fmt.Errorf("leaderboard.capacity must be positive")
	}
	for name, points := range c.Scoring.Awards {
		if _, err := domain.ParseTier(name); err != nil {
			return fmt.Errorf("scoring.awards: %w", err)
		}
		if points <= 0 {
			return fmt.Errorf("scoring.awards.%s must be positive", name)
		}
	}
	if c.Scoring.Penalty < 0 {
		return fmt.Errorf("scoring.penalty must not be negative")
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
