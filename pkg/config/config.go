// Package config loads tromp.toml project settings.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/vic/tromp/pkg/diagram"
	"github.com/vic/tromp/pkg/reduce"
)

// FileName is the name searched for by Find.
const FileName = "tromp.toml"

// Config mirrors tromp.toml.
type Config struct {
	Reduce  ReduceConfig  `toml:"reduce"`
	Layout  LayoutConfig  `toml:"layout"`
	Prelude PreludeConfig `toml:"prelude"`
}

type ReduceConfig struct {
	// Strategy is "normal" or "applicative".
	Strategy string `toml:"strategy,omitempty"`
	MaxSteps int    `toml:"max_steps,omitempty"`
}

type LayoutConfig struct {
	Unit float64 `toml:"unit,omitempty"`
	// LinkStyle is "leftmost" or "nearest-deepest".
	LinkStyle string `toml:"link_style,omitempty"`
	ShowNames bool   `toml:"show_names,omitempty"`
}

type PreludeConfig struct {
	// Enabled expands the standard combinators in every input.
	Enabled bool `toml:"enabled,omitempty"`
	// Defines adds or overrides definitions, name -> lambda source.
	Defines map[string]string `toml:"defines,omitempty"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Reduce: ReduceConfig{
			Strategy: reduce.Normal.String(),
			MaxSteps: reduce.DefaultMaxSteps,
		},
		Layout: LayoutConfig{
			Unit:      diagram.DefaultOptions().Unit,
			LinkStyle: diagram.Leftmost.String(),
		},
	}
}

// Load decodes the file at path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Find searches for tromp.toml starting from dir and walking up to parent
// directories, stopping at a .git boundary. It returns ("", nil, nil) when
// there is none.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// ApplyEnv overrides settings from TROMP_STRATEGY, TROMP_MAX_STEPS and
// TROMP_LINK_STYLE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TROMP_STRATEGY"); v != "" {
		c.Reduce.Strategy = v
	}
	if v := os.Getenv("TROMP_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "TROMP_MAX_STEPS")
		}
		c.Reduce.MaxSteps = n
	}
	if v := os.Getenv("TROMP_LINK_STYLE"); v != "" {
		c.Layout.LinkStyle = v
	}
	return c.Validate()
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := reduce.ParseStrategy(c.Reduce.Strategy); err != nil {
		return err
	}
	if _, err := diagram.ParseLinkStyle(c.Layout.LinkStyle); err != nil {
		return err
	}
	if c.Reduce.MaxSteps < 0 {
		return errors.Errorf("max_steps must not be negative, got %d", c.Reduce.MaxSteps)
	}
	if c.Layout.Unit < 0 {
		return errors.Errorf("unit must not be negative, got %g", c.Layout.Unit)
	}
	return nil
}

// ReduceOptions converts the reduce section.
func (c *Config) ReduceOptions() reduce.Options {
	strategy, _ := reduce.ParseStrategy(c.Reduce.Strategy)
	return reduce.Options{Strategy: strategy, MaxSteps: c.Reduce.MaxSteps}
}

// LayoutOptions converts the layout section.
func (c *Config) LayoutOptions() diagram.Options {
	style, _ := diagram.ParseLinkStyle(c.Layout.LinkStyle)
	return diagram.Options{Unit: c.Layout.Unit, LinkStyle: style, ShowNames: c.Layout.ShowNames}
}
