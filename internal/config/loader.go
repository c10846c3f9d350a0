package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in each search directory.
const FileName = "tileblast.yaml"

// LoadTileBlast loads TileBlast configuration.
// Search order: customPath -> ~/.tileblast/configs/tileblast.yaml ->
// ./configs/tileblast.yaml -> embedded default -> hardcoded default.
// Keys missing from a file keep their default values.
func LoadTileBlast(customPath string) (TileBlastConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (TileBlastConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTileBlastConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTileBlastYAML)
	if err != nil {
		return DefaultTileBlastConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (TileBlastConfig, error) {
	cfg := DefaultTileBlastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultTileBlastConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tileblast", "configs", filename)
}
