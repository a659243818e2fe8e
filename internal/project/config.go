// Package project loads per-project settings from bulloak.toml.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the file looked up from the working directory upward.
const ConfigFileName = "bulloak.toml"

// Config holds the per-project defaults. Flags always win over the file.
type Config struct {
	Scaffold ScaffoldConfig `toml:"scaffold"`
	Check    CheckConfig    `toml:"check"`
}

// ScaffoldConfig configures `bulloak scaffold`.
type ScaffoldConfig struct {
	// SolidityVersion goes into the emitted pragma line.
	SolidityVersion string `toml:"solidity_version"`
	// SkipModifiers emits every function without modifiers.
	SkipModifiers bool `toml:"skip_modifiers"`
}

// CheckConfig configures `bulloak check`.
type CheckConfig struct {
	// SkipModifiers ignores missing modifier definitions.
	SkipModifiers bool `toml:"skip_modifiers"`
	// NoCache disables the clean-pair disk cache.
	NoCache bool `toml:"no_cache"`
}

// Load searches startDir and its ancestors for a config file and decodes
// the first one found. No file at all is not an error: the zero Config is
// returned and every default applies.
func Load(startDir string) (Config, error) {
	path, err := find(startDir)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
