package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors the embedded
// defaults/t2048.yaml and is used if that file fails to parse.
func DefaultConfig() Config {
	return Config{
		Theme: ThemeConfig{
			Tiles: map[int]string{
				2:    "white",
				4:    "bright-white",
				8:    "yellow",
				16:   "orange",
				32:   "bright-red",
				64:   "red",
				128:  "bright-yellow",
				256:  "bright-green",
				512:  "green",
				1024: "bright-cyan",
				2048: "bright-magenta",
			},
			Fallback: "magenta",
			Border:   "gray",
			Accent:   "bright-yellow",
		},
		Keys: map[string][]string{},
		Storage: StorageConfig{
			Path: "~/.t2048/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
	}
}
