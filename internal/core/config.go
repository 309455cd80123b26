package core

// RuntimeConfig is handed to the front end at startup.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for tile spawns; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
