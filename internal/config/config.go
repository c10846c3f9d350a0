// Package config provides YAML-based game configuration loading and
// difficulty presets for TileBlast.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/behaviour"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
)

var (
	// ErrNoTileTypes is returned when the palette is empty.
	ErrNoTileTypes = errors.New("config: no tile types configured")
	// ErrInvalidBoard is returned for non-positive board dimensions.
	ErrInvalidBoard = errors.New("config: board dimensions must be positive")
)

// TileBlastConfig contains all configuration for a TileBlast session.
type TileBlastConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Tiles    TilesConfig    `yaml:"tiles"`
	Effects  EffectsConfig  `yaml:"effects"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Progress ProgressConfig `yaml:"progress"`
	Shuffle  ShuffleConfig  `yaml:"shuffle"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TileType is one entry of the palette.
type TileType struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// TilesConfig defines the palette tiles are generated from.
type TilesConfig struct {
	Types []TileType `yaml:"types"`
}

// EffectsConfig defines cascade timing.
type EffectsConfig struct {
	BaseDelayMS int `yaml:"base_delay_ms"` // Delay per cell of distance between detonations
}

// SpawnConfig defines the match sizes that leave a special tile behind.
type SpawnConfig struct {
	Thresholds behaviour.Thresholds `yaml:"thresholds"`
}

// ProgressConfig defines the win and loss conditions.
type ProgressConfig struct {
	MovesLimit  int `yaml:"moves_limit"`  // 0 = unlimited
	ScoreTarget int `yaml:"score_target"` // 0 = no target
}

// ShuffleConfig defines deadlock recovery.
type ShuffleConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// Validate checks the config for values a session cannot start with.
func (c TileBlastConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoard, c.Board.Width, c.Board.Height)
	}
	if len(c.Tiles.Types) == 0 {
		return ErrNoTileTypes
	}
	seen := make(map[string]bool, len(c.Tiles.Types))
	for _, t := range c.Tiles.Types {
		if t.Name == "" {
			return errors.New("config: tile type with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("config: duplicate tile type %q", t.Name)
		}
		seen[t.Name] = true
		if _, ok := core.ParseColor(t.Color); !ok {
			return fmt.Errorf("config: tile type %q: unknown color %q", t.Name, t.Color)
		}
	}
	if c.Effects.BaseDelayMS < 0 {
		return fmt.Errorf("config: negative base_delay_ms %d", c.Effects.BaseDelayMS)
	}
	if c.Progress.MovesLimit < 0 || c.Progress.ScoreTarget < 0 {
		return errors.New("config: moves_limit and score_target must not be negative")
	}
	if err := c.Spawn.Thresholds.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TypeNames returns the palette tags in config order.
func (c TileBlastConfig) TypeNames() []string {
	names := make([]string, len(c.Tiles.Types))
	for i, t := range c.Tiles.Types {
		names[i] = t.Name
	}
	return names
}

// Colors maps each palette tag to its screen colour.
func (c TileBlastConfig) Colors() map[string]core.Color {
	colors := make(map[string]core.Color, len(c.Tiles.Types))
	for _, t := range c.Tiles.Types {
		colors[t.Name], _ = core.ParseColor(t.Color)
	}
	return colors
}

// Session converts the file config into a session config.
func (c TileBlastConfig) Session() session.Config {
	return session.Config{
		Width:           c.Board.Width,
		Height:          c.Board.Height,
		Types:           c.TypeNames(),
		BaseDelay:       time.Duration(c.Effects.BaseDelayMS) * time.Millisecond,
		Thresholds:      c.Spawn.Thresholds,
		MovesLimit:      c.Progress.MovesLimit,
		ScoreTarget:     c.Progress.ScoreTarget,
		ShuffleAttempts: c.Shuffle.MaxAttempts,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// paletteSize is how many palette entries each preset plays with.
// Fewer types means bigger groups.
var paletteSize = map[DifficultyPreset]int{
	DifficultyEasy:   3,
	DifficultyNormal: 4,
}

// ApplyTileBlastPreset modifies the config based on a difficulty preset.
func ApplyTileBlastPreset(cfg *TileBlastConfig, preset DifficultyPreset) {
	if n, ok := paletteSize[preset]; ok && len(cfg.Tiles.Types) > n {
		cfg.Tiles.Types = cfg.Tiles.Types[:n]
	}

	switch preset {
	case DifficultyEasy:
		if cfg.Progress.MovesLimit > 0 {
			cfg.Progress.MovesLimit += 10
		}
	case DifficultyHard:
		if cfg.Progress.MovesLimit > 0 {
			cfg.Progress.MovesLimit = max(cfg.Progress.MovesLimit-5, 5)
		}
		if cfg.Progress.ScoreTarget > 0 {
			cfg.Progress.ScoreTarget += cfg.Progress.ScoreTarget / 2
		}
	}
}

// ApplyEndless removes the move limit and score target.
func ApplyEndless(cfg *TileBlastConfig) {
	cfg.Progress.MovesLimit = 0
	cfg.Progress.ScoreTarget = 0
}
