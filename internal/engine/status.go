package engine

// Status is the game lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusWin     Status = "win"
	StatusLose    Status = "lose"
)

// Terminal reports whether the status ends an episode.
func (s Status) Terminal() bool {
	return s == StatusWin || s == StatusLose
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
