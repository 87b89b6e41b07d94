// Package config loads floatpad.toml, the plugin's defaults for newly
// created floating windows.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/vito/floatpad/pkg/geom"
	"github.com/vito/floatpad/pkg/pad"
)

// Config is a parsed floatpad.toml.
type Config struct {
	// Notify enables the informational notice printed when a pad is
	// explicitly removed.
	Notify bool `toml:"notify"`

	Float FloatDefaults `toml:"float"`
}

// FloatDefaults controls the placement of newly created floats.
type FloatDefaults struct {
	// WidthRatio and HeightRatio size new floats as a fraction of the
	// editor grid. Values are clamped to [0.1, 1.0].
	WidthRatio  float64 `toml:"width_ratio"`
	HeightRatio float64 `toml:"height_ratio"`

	// Position is a named placement: center, topleft, topright, botleft,
	// or botright.
	Position string `toml:"position"`

	// Border is a named border style: single, double, rounded, or none.
	Border string `toml:"border"`

	ZIndex int `toml:"zindex"`
}

// Default returns the configuration used when no floatpad.toml is found.
func Default() *Config {
	return &Config{
		Notify: true,
		Float: FloatDefaults{
			WidthRatio:  0.6,
			HeightRatio: 0.6,
			Position:    "center",
			Border:      "single",
			ZIndex:      50,
		},
	}
}

// Load reads a floatpad.toml file. Missing keys keep their defaults;
// out-of-range values are clamped rather than rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

// Find searches for a floatpad.toml starting from dir and walking up to
// parent directories, stopping at a .git boundary. Returns the path and
// parsed config, or ("", Default(), nil) when none is found.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "floatpad.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", Default(), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", Default(), nil
		}
		dir = parent
	}
}

func (c *Config) clamp() {
	c.Float.WidthRatio = geom.Clamp(c.Float.WidthRatio, 0.1, 1.0)
	c.Float.HeightRatio = geom.Clamp(c.Float.HeightRatio, 0.1, 1.0)
	if !slices.Contains(pad.Placements(), c.Float.Position) {
		c.Float.Position = "center"
	}
	if c.Float.ZIndex < 1 {
		c.Float.ZIndex = 50
	}
}

// FloatConfig computes the float configuration for a new pad on a
// cols x rows editor grid.
func (c *Config) FloatConfig(cols, rows int) pad.FloatConfig {
	w := geom.Clamp(int(float64(cols)*c.Float.WidthRatio), 1, cols)
	h := geom.Clamp(int(float64(rows)*c.Float.HeightRatio), 1, max(1, rows-2))

	cfg := pad.FloatConfig{
		Relative: "editor",
		Width:    w,
		Height:   h,
		ZIndex:   c.Float.ZIndex,
		Style:    "minimal",
		Border:   pad.BorderChars(c.Float.Border),
	}
	cfg.Row, cfg.Col = pad.Placement(c.Float.Position, cols, rows, w, h)
	return cfg
}
