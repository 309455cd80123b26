package core

import "strings"

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, A, H
	ActionRight             // Right arrow, D, L
	ActionUp                // Up arrow, W, K
	ActionDown              // Down arrow, S, J
	ActionStart             // Enter - first game only
	ActionRestart           // R - new game at any time
	ActionQuit              // Q, Ctrl+C
	ActionScreenshot        // Ctrl+S - dump the board as text
	ActionHelp              // ? - toggle full help
)

// Actions lists every bindable action.
var Actions = []Action{
	ActionLeft,
	ActionRight,
	ActionUp,
	ActionDown,
	ActionStart,
	ActionRestart,
	ActionQuit,
	ActionScreenshot,
	ActionHelp,
}

// String returns the lowercase name used in config files.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionStart:
		return "start"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	case ActionScreenshot:
		return "screenshot"
	case ActionHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsMove reports whether the action is one of the four directions.
func (a Action) IsMove() bool {
	return a >= ActionLeft && a <= ActionDown
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
