package tui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

type fakeStore struct {
	results []storage.GameResult
	high    int
	err     error
}

func (f *fakeStore) SaveResult(r storage.GameResult) (storage.GameResult, error) {
	if f.err != nil {
		return storage.GameResult{}, f.err
	}
	f.results = append(f.results, r)
	return r, nil
}

func (f *fakeStore) HighScore() (int, error) {
	return f.high, nil
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func newTestModel(game *engine.Game, opts Options) Model {
	if opts.Tracer == nil {
		opts.Tracer = telemetry.NoopTracer()
	}
	return NewModel(game, core.DefaultConfig(), opts)
}

func TestModelStartsIdleWithPrompt(t *testing.T) {
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{})

	if m.Game().Status() != engine.StatusIdle {
		t.Errorf("status = %s, want idle", m.Game().Status())
	}
	if m.message() != msgPrompt {
		t.Errorf("message = %q, want %q", m.message(), msgPrompt)
	}
	if !strings.Contains(m.View(), msgPrompt) {
		t.Error("View should show the start prompt")
	}
	if m.Init() != nil {
		t.Error("Init should not schedule commands")
	}
}

func TestStartKeyOnlyWorksOnce(t *testing.T) {
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{})

	m = press(t, m, keyEnter)
	if m.Game().Status() != engine.StatusPlaying {
		t.Fatalf("status after enter = %s, want playing", m.Game().Status())
	}
	if engine.Count(m.Game().State()) != 2 {
		t.Errorf("tiles after start = %d, want 2", engine.Count(m.Game().State()))
	}
	if m.keys.Start.Enabled() {
		t.Error("start binding should be disabled after first start")
	}
	if m.message() != "" {
		t.Errorf("message while playing = %q, want hidden", m.message())
	}

	before := m.Game().State()
	m = press(t, m, keyEnter)
	if m.Game().State() != before {
		t.Error("second enter should not restart the game")
	}
}

func TestRestartKey(t *testing.T) {
	grid := engine.Grid{{1024, 1024, 0, 0}}
	m := newTestModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), Options{})

	m = press(t, m, keyLeft)
	if m.Game().Status() != engine.StatusWin {
		t.Fatalf("status = %s, want win", m.Game().Status())
	}

	m = press(t, m, keyRune("r"))
	if m.Game().Status() != engine.StatusPlaying {
		t.Errorf("status after restart = %s, want playing", m.Game().Status())
	}
	if m.Game().Score() != 0 {
		t.Errorf("score after restart = %d, want 0", m.Game().Score())
	}
	if m.keys.Start.Enabled() {
		t.Error("restart should also retire the start binding")
	}
}

func TestMoveKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"arrow", keyLeft},
		{"wasd", keyRune("a")},
		{"vim", keyRune("h")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := engine.Grid{{2, 2, 0, 0}}
			m := newTestModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), Options{})

			m = press(t, m, tt.key)
			if got := m.Game().State()[0][0]; got != 4 {
				t.Errorf("cell (0,0) = %d, want 4", got)
			}
			if m.Game().Score() != 4 {
				t.Errorf("score = %d, want 4", m.Game().Score())
			}
		})
	}
}

func TestWinSavesResultOnce(t *testing.T) {
	store := &fakeStore{high: 100}
	grid := engine.Grid{{1024, 1024, 0, 0}}
	m := newTestModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), Options{Store: store})

	if m.Best() != 100 {
		t.Errorf("Best() = %d, want 100 from store", m.Best())
	}

	m = press(t, m, keyLeft)
	if m.Game().Status() != engine.StatusWin {
		t.Fatalf("status = %s, want win", m.Game().Status())
	}
	if m.message() != msgWin {
		t.Errorf("message = %q, want %q", m.message(), msgWin)
	}

	// Moves after the win are ignored and must not save again.
	m = press(t, m, keyLeft, keyRune("d"), keyRune("w"))

	if len(store.results) != 1 {
		t.Fatalf("saved %d results, want 1", len(store.results))
	}
	got := store.results[0]
	if got.Score != 2048 || got.Status != "win" || got.MaxTile != 2048 || got.Moves != 1 {
		t.Errorf("saved %+v", got)
	}
	if m.Best() != 2048 {
		t.Errorf("Best() = %d, want 2048", m.Best())
	}
}

func TestLoseSavesResult(t *testing.T) {
	store := &fakeStore{}
	grid := engine.Grid{
		{2, 2, 8, 16},
		{16, 32, 64, 128},
		{256, 512, 1024, 4},
		{8, 16, 32, 64},
	}
	m := newTestModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), Options{Store: store})

	m = press(t, m, keyLeft)
	if m.Game().Status() != engine.StatusLose {
		t.Fatalf("status = %s, want lose", m.Game().Status())
	}
	if m.message() != msgLose {
		t.Errorf("message = %q, want %q", m.message(), msgLose)
	}
	if len(store.results) != 1 || store.results[0].Status != "lose" || store.results[0].Score != 4 {
		t.Errorf("saved %+v", store.results)
	}
}

func TestStoreErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{err: errors.New("disk full")}
	grid := engine.Grid{{1024, 1024, 0, 0}}
	m := newTestModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), Options{
		Store:  store,
		Logger: log.New(&buf),
	})

	m = press(t, m, keyLeft)
	if m.Game().Status() != engine.StatusWin {
		t.Fatalf("status = %s, want win", m.Game().Status())
	}
	if !strings.Contains(buf.String(), "could not save result") {
		t.Errorf("log = %q, want a save warning", buf.String())
	}

	// The session keeps working.
	m = press(t, m, keyRune("r"))
	if m.Game().Status() != engine.StatusPlaying {
		t.Errorf("status after restart = %s, want playing", m.Game().Status())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{})

	next, cmd := m.Update(keyRune("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("View should be empty after quitting")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{ScreenshotDir: dir})

	m = press(t, m, keyEnter, keyCtrlS)

	files, err := filepath.Glob(filepath.Join(dir, "t2048_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v (%v), want 1 file", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Errorf("screenshot missing score line:\n%s", data)
	}
}

func TestSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background())

	grid := engine.Grid{{2, 2, 0, 0}}
	m := NewModel(engine.New(engine.WithGrid(grid), engine.WithSeed(1)), core.DefaultConfig(), Options{
		Tracer: tp.Tracer("test"),
	})
	press(t, m, keyLeft, keyRune("r"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name() != "game.move" || spans[1].Name() != "game.start" {
		t.Errorf("span names = %q, %q", spans[0].Name(), spans[1].Name())
	}

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	want := map[string]string{"direction": "left", "moved": "true", "score": "4", "status": "idle"}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attr %s = %q, want %q", k, attrs[k], v)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{})
	m = press(t, m, keyRune("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	m = press(t, m, keyRune("?"))
	if m.help.ShowAll {
		t.Error("? should collapse help")
	}
}

func TestWindowTooSmall(t *testing.T) {
	m := newTestModel(engine.New(engine.WithSeed(1)), Options{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(next.(Model).View(), "Window too small") {
		t.Error("View should report a too-small window")
	}

	next, _ = next.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if strings.Contains(next.(Model).View(), "Window too small") {
		t.Error("View should draw the board after growing")
	}
}
