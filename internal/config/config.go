// Package config loads editor configuration from a YAML file. All
// fields have working defaults; a missing config file is not an error.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/forgecut/forgecut/internal/history"
	"github.com/forgecut/forgecut/internal/persist"
	"github.com/forgecut/forgecut/internal/timeline"
)

// DefaultFileName is where Load looks inside the config directory.
const DefaultFileName = "forgecut.yaml"

// Config holds user-tunable editor settings.
type Config struct {
	// UndoDepth bounds the undo stack.
	UndoDepth int `yaml:"undo_depth" validate:"gt=0,lte=10000"`

	// SnapThresholdMs is the snap distance in milliseconds.
	SnapThresholdMs int `yaml:"snap_threshold_ms" validate:"gte=0,lte=60000"`

	// Autosave controls background snapshot saves.
	Autosave AutosaveConfig `yaml:"autosave"`

	// CatalogPath is the SQLite project catalog location. Empty
	// disables the catalog.
	CatalogPath string `yaml:"catalog_path"`

	// FFProbeBinary overrides the ffprobe executable.
	FFProbeBinary string `yaml:"ffprobe_binary"`
}

// AutosaveConfig controls autosave retention and cadence.
type AutosaveConfig struct {
	// Dir is the autosave directory. Empty disables autosave.
	Dir string `yaml:"dir"`

	// Keep is how many autosaves survive pruning.
	Keep int `yaml:"keep" validate:"gt=0,lte=1000"`

	// IntervalSeconds is the autosave cadence.
	IntervalSeconds int `yaml:"interval_seconds" validate:"gt=0,lte=86400"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		UndoDepth:       history.DefaultMaxEntries,
		SnapThresholdMs: 250,
		Autosave: AutosaveConfig{
			Keep:            persist.DefaultAutosaveKeep,
			IntervalSeconds: 30,
		},
	}
}

// SnapThreshold converts the configured millisecond threshold to the
// time domain.
func (c Config) SnapThreshold() timeline.TimeUs {
	return timeline.TimeUs(c.SnapThresholdMs) * timeline.Millisecond
}

// Load reads a config file, layering it over defaults. A missing file
// returns the defaults; a malformed or out-of-range file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// Strict decoding catches typoed keys instead of silently
	// ignoring them.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath resolves the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "forgecut", DefaultFileName), nil
}
