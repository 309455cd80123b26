// Package config provides YAML-based configuration loading for the
// terminal front end: tile theme, extra key bindings, storage and logging.
// Grid size and win tile are fixed by the engine and are not configurable.
package config

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full application configuration.
type Config struct {
	Theme   ThemeConfig         `yaml:"theme"`
	Keys    map[string][]string `yaml:"keys"`
	Storage StorageConfig       `yaml:"storage"`
	Log     LogConfig           `yaml:"log"`
}

// ThemeConfig maps tile values to palette colors.
type ThemeConfig struct {
	Tiles    map[int]string `yaml:"tiles"`    // Tile value -> palette color name
	Fallback string         `yaml:"fallback"` // Color for tiles not listed
	Border   string         `yaml:"border"`   // Grid lines
	Accent   string         `yaml:"accent"`   // Title and status messages
}

// StorageConfig controls the score history database.
type StorageConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Validate checks color names, action names and tile values.
func (c Config) Validate() error {
	for value, name := range c.Theme.Tiles {
		if value < 2 || bits.OnesCount(uint(value)) != 1 {
			return fmt.Errorf("%w: tile %d is not a power of two", ErrInvalidConfig, value)
		}
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: tile %d: unknown color %q", ErrInvalidConfig, value, name)
		}
	}

	for field, name := range map[string]string{
		"fallback": c.Theme.Fallback,
		"border":   c.Theme.Border,
		"accent":   c.Theme.Accent,
	} {
		if name == "" {
			continue
		}
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: theme.%s: unknown color %q", ErrInvalidConfig, field, name)
		}
	}

	for name := range c.Keys {
		if _, ok := core.ParseAction(name); !ok {
			return fmt.Errorf("%w: keys: unknown action %q", ErrInvalidConfig, name)
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: unknown level %q", ErrInvalidConfig, c.Log.Level)
	}

	return nil
}

// TileColor returns the palette color for a tile value.
func (t ThemeConfig) TileColor(value int) core.Color {
	if name, ok := t.Tiles[value]; ok {
		if c, ok := core.ParseColor(name); ok {
			return c
		}
	}
	c, _ := core.ParseColor(t.Fallback)
	return c
}

// BorderColor returns the palette color for grid lines.
func (t ThemeConfig) BorderColor() core.Color {
	c, _ := core.ParseColor(t.Border)
	return c
}

// AccentColor returns the palette color for titles and messages.
func (t ThemeConfig) AccentColor() core.Color {
	c, _ := core.ParseColor(t.Accent)
	return c
}

// ExtraKeys returns configured key names per action, sorted by action.
// Unknown action names are skipped; Validate reports them.
func (c Config) ExtraKeys() map[core.Action][]string {
	out := make(map[core.Action][]string, len(c.Keys))
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a, ok := core.ParseAction(name)
		if !ok {
			continue
		}
		out[a] = append(out[a], c.Keys[name]...)
	}
	return out
}
