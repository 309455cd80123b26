// Package tui is the Bubble Tea front end for the 2048 engine.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// helpRows is the space kept below the screen buffer for the help bar.
const helpRows = 3

// Status messages, one per display mode. Playing shows none.
const (
	msgPrompt = "Press enter to start"
	msgWin    = "You win! r: new game"
	msgLose   = "Game over! r: retry"
)

// ResultStore records finished games. *storage.Store satisfies it.
type ResultStore interface {
	SaveResult(r storage.GameResult) (storage.GameResult, error)
	HighScore() (int, error)
}

// Options configures a Model. Zero values are usable.
type Options struct {
	Store         ResultStore // nil disables score history
	Logger        *log.Logger
	Tracer        trace.Tracer
	Theme         config.ThemeConfig
	Keys          KeyMap
	ScreenshotDir string // Defaults to ~/.t2048/screenshots
}

// Model is the Bubble Tea model for one 2048 session.
type Model struct {
	game    *engine.Game
	screen  *core.Screen
	store   ResultStore
	logger  *log.Logger
	tracer  trace.Tracer
	theme   config.ThemeConfig
	keys    KeyMap
	help    help.Model
	shotDir string

	best     int
	started  bool // Start has been used; the start binding is then disabled
	saved    bool // Result recorded for the current episode
	quitting bool
}

// NewModel creates a model around game. The game is not started.
func NewModel(game *engine.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer("tui")
	}
	if opts.Theme.Tiles == nil {
		opts.Theme = config.DefaultConfig().Theme
	}
	if opts.Keys.Quit.Keys() == nil {
		opts.Keys = DefaultKeyMap()
	}

	m := Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		store:   opts.Store,
		logger:  opts.Logger,
		tracer:  opts.Tracer,
		theme:   opts.Theme,
		keys:    opts.Keys,
		help:    help.New(),
		shotDir: opts.ScreenshotDir,
	}
	m.help.Width = cfg.ScreenW

	if m.store != nil {
		best, err := m.store.HighScore()
		if err != nil {
			m.logger.Warn("could not load high score", "error", err)
		}
		m.best = best
	}

	return m
}

// Init implements tea.Model. The game waits for the start key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionStart:
		if !m.started {
			m.startGame("start")
		}

	case core.ActionRestart:
		m.startGame("restart")

	default:
		if dir, ok := actionDirection(action); ok {
			m.move(dir)
		}
	}

	return m, nil
}

// startGame begins a fresh episode and retires the start binding.
func (m *Model) startGame(reason string) {
	_, span := m.tracer.Start(context.Background(), "game.start",
		trace.WithAttributes(attribute.String("reason", reason)))
	defer span.End()

	m.game.Start()
	m.started = true
	m.saved = false
	m.keys.Start.SetEnabled(false)

	m.logger.Info("game started", "reason", reason)
}

// move applies one move and records the result if the game just ended.
func (m *Model) move(dir engine.Direction) {
	_, span := m.tracer.Start(context.Background(), "game.move",
		trace.WithAttributes(attribute.String("direction", dir.String())))
	defer span.End()

	moved := m.game.Move(dir)
	span.SetAttributes(
		attribute.Bool("moved", moved),
		attribute.Int("score", m.game.Score()),
		attribute.String("status", m.game.Status().String()),
	)

	if moved && m.game.Status().Terminal() {
		m.finish()
	}
}

// finish saves the result once per episode. Storage errors are logged only.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true

	score := m.game.Score()
	m.best = max(m.best, score)
	m.logger.Info("game finished",
		"score", score, "status", m.game.Status(), "moves", m.game.Moves())

	if m.store == nil {
		return
	}
	_, err := m.store.SaveResult(storage.GameResult{
		Score:   score,
		MaxTile: engine.MaxTile(m.game.State()),
		Status:  m.game.Status().String(),
		Moves:   m.game.Moves(),
	})
	if err != nil {
		m.logger.Warn("could not save result", "error", err)
	}
}

// message returns the status line for the current state.
func (m Model) message() string {
	switch m.game.Status() {
	case engine.StatusWin:
		return msgWin
	case engine.StatusLose:
		return msgLose
	case engine.StatusIdle:
		if !m.started {
			return msgPrompt
		}
	}
	return ""
}

// render draws the current frame into the screen buffer.
func (m Model) render() {
	drawScreen(m.screen, view{
		grid:    m.game.State(),
		score:   m.game.Score(),
		best:    m.best,
		message: m.message(),
	}, m.theme)
}

// saveScreenshot writes the board as plain text and returns the path.
func (m Model) saveScreenshot() (string, error) {
	m.render()

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".t2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	name := fmt.Sprintf("t2048_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the wrapped engine.
func (m Model) Game() *engine.Game {
	return m.game
}

// Best returns the best score known to the session.
func (m Model) Best() int {
	return m.best
}

// Run starts the Bubble Tea program for one session.
func Run(game *engine.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
