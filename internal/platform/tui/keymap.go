package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// KeyMap defines the key bindings for the game screen.
// It translates Bubble Tea key messages to core actions.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Start      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns default key bindings: arrows, WASD and vim keys for moves.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d/l", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// binding returns the binding for an action, or nil.
func (k *KeyMap) binding(a core.Action) *key.Binding {
	switch a {
	case core.ActionLeft:
		return &k.Left
	case core.ActionRight:
		return &k.Right
	case core.ActionUp:
		return &k.Up
	case core.ActionDown:
		return &k.Down
	case core.ActionStart:
		return &k.Start
	case core.ActionRestart:
		return &k.Restart
	case core.ActionQuit:
		return &k.Quit
	case core.ActionScreenshot:
		return &k.Screenshot
	case core.ActionHelp:
		return &k.Help
	}
	return nil
}

// WithExtra returns a copy with extra key names appended per action.
func (k KeyMap) WithExtra(extra map[core.Action][]string) KeyMap {
	for a, keys := range extra {
		b := k.binding(a)
		if b == nil || len(keys) == 0 {
			continue
		}
		b.SetKeys(append(append([]string(nil), b.Keys()...), keys...)...)
	}
	return k
}

// Action maps a key message to an action. Quit is checked first so it
// cannot be shadowed by a configured key; disabled bindings never match.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit
	}
	for _, a := range core.Actions {
		if b := k.binding(a); b != nil && key.Matches(msg, *b) {
			return a
		}
	}
	return core.ActionNone
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Start, k.Restart, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Restart, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// actionDirection maps a move action to an engine direction.
func actionDirection(a core.Action) (engine.Direction, bool) {
	switch a {
	case core.ActionLeft:
		return engine.Left, true
	case core.ActionRight:
		return engine.Right, true
	case core.ActionUp:
		return engine.Up, true
	case core.ActionDown:
		return engine.Down, true
	}
	return 0, false
}
