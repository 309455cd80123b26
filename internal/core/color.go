package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette colors available to themes.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright-red",
	ColorBrightGreen:   "bright-green",
	ColorBrightYellow:  "bright-yellow",
	ColorBrightBlue:    "bright-blue",
	ColorBrightMagenta: "bright-magenta",
	ColorBrightCyan:    "bright-cyan",
	ColorBrightWhite:   "bright-white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
}

// String returns the palette name used in theme files.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor looks up a palette color by name. Matching ignores case
// and accepts "_" in place of "-".
func ParseColor(name string) (Color, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}
