package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every game config.
type validator interface {
	Validate()
}

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadBlocks loads Block-Stack configuration.
// Search order: customPath -> ~/.arcade/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
func LoadBlocks(customPath string) (BlocksConfig, error) {
	return load("blocks", customPath, defaultBlocksYAML, DefaultBlocksConfig)
}

// LoadMatch loads Memory Match configuration.
// Search order: customPath -> ~/.arcade/configs/match.yaml -> ./configs/match.yaml -> embedded default
func LoadMatch(customPath string) (MatchConfig, error) {
	return load("match", customPath, defaultMatchYAML, DefaultMatchConfig)
}

// LoadPuzzle loads Sliding Puzzle configuration.
// Search order: customPath -> ~/.arcade/configs/puzzle.yaml -> ./configs/puzzle.yaml -> embedded default
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	return load("puzzle", customPath, defaultPuzzleYAML, DefaultPuzzleConfig)
}

// load decodes the first readable config on top of the hard-coded defaults,
// so partial files only override what they mention.
func load[T any, PT interface {
	*T
	validator
}](id, customPath string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		PT(&cfg).Validate()
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(id + ".yaml"),
		filepath.Join("configs", id+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			PT(&cfg).Validate()
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	PT(&cfg).Validate()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
