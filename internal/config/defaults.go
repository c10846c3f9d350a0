package config

import (
	_ "embed"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/behaviour"
)

//go:embed defaults/tileblast.yaml
var defaultTileBlastYAML []byte

// DefaultTileBlastConfig returns the default TileBlast configuration.
// It matches defaults/tileblast.yaml.
func DefaultTileBlastConfig() TileBlastConfig {
	return TileBlastConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 7,
		},
		Tiles: TilesConfig{
			Types: []TileType{
				{Name: "red", Color: "red"},
				{Name: "green", Color: "green"},
				{Name: "blue", Color: "blue"},
				{Name: "yellow", Color: "yellow"},
				{Name: "purple", Color: "magenta"},
			},
		},
		Effects: EffectsConfig{
			BaseDelayMS: 100,
		},
		Spawn: SpawnConfig{
			Thresholds: behaviour.DefaultThresholds(),
		},
		Progress: ProgressConfig{
			MovesLimit:  20,
			ScoreTarget: 100,
		},
		Shuffle: ShuffleConfig{
			MaxAttempts: 5,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultTileBlastYAML
}
