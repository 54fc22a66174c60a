package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/arcade.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Load reads the runtime configuration.
// Search order: customPath -> ~/.arcade/arcade.{yaml,toml} -> ./configs/arcade.{yaml,toml} -> embedded default
// Fields missing from the file keep their default values.
func Load(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	var candidates []string
	if dir := userConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "arcade.yaml"), filepath.Join(dir, "arcade.toml"))
	}
	candidates = append(candidates, filepath.Join("configs", "arcade.yaml"), filepath.Join("configs", "arcade.toml"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			return cfg, "", err
		}
		return cfg, path, nil
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Parse(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data into cfg. ext selects the format: ".toml" for TOML,
// anything else for YAML.
func Parse(data []byte, ext string, cfg *Config) error {
	if !strings.EqualFold(ext, ".toml") {
		return yaml.Unmarshal(data, cfg)
	}

	// Catalogs in the file replace the defaults rather than extend them.
	var catalogs struct {
		Displays []Unit `toml:"displays"`
		Games    []Unit `toml:"games"`
	}
	if err := toml.Unmarshal(data, &catalogs); err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if catalogs.Displays != nil {
		cfg.Displays = catalogs.Displays
	}
	if catalogs.Games != nil {
		cfg.Games = catalogs.Games
	}
	return nil
}

// userConfigDir returns ~/.arcade, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
