// Package config loads and validates the checker configuration from
// .bonousus.yml or .bonousus.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultYAMLFile = ".bonousus.yml"
	defaultTOMLFile = ".bonousus.toml"
)

// Config is the top-level configuration.
type Config struct {
	// Requires is an optional semver constraint on the checker version,
	// e.g. ">= 0.2.0". Violations are fatal at load time.
	Requires string      `yaml:"requires" toml:"requires"`
	Style    StyleConfig `yaml:"style" toml:"style"`
}

// Load reads configuration from a YAML or TOML file. If path is empty it
// tries the default files in order. Returns defaults if none exist.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range []string{defaultYAMLFile, defaultTOMLFile} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Style: DefaultStyleConfig(),
	}
}
