package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the rules file at path. An empty path or a missing file yields
// an empty configuration.
func Load(path string) (*RulesConfig, error) {
	config := &RulesConfig{}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Rules file not found, using flags and defaults", "path", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	config.Lists.normalize()

	slog.Info("Loaded rules file", "path", path,
		"categories", len(config.Lists.AllowCategories),
		"keywords", len(config.Lists.DenyKeywords),
		"brands", len(config.Lists.AllowBrands))

	return config, nil
}
