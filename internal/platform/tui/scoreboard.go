package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores = 100 // Max results to load per tab
)

// ScoreSource is the read side of the score history.
type ScoreSource interface {
	TopScores(limit int) ([]storage.GameResult, error)
	Recent(limit int) ([]storage.GameResult, error)
	Stats() (*storage.Stats, error)
}

// ScoreTab selects which list the scoreboard shows.
type ScoreTab int

const (
	TabTop ScoreTab = iota
	TabRecent
)

func (t ScoreTab) String() string {
	if t == TabRecent {
		return "Recent"
	}
	return "Top"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the score history screen.
type ScoreboardModel struct {
	source   ScoreSource
	tab      ScoreTab
	results  []storage.GameResult
	stats    *storage.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Max", Width: 6},
		{Title: "Result", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Title, stats, tabs, help, borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the current tab and stats.
func (m *ScoreboardModel) load() {
	m.results, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.tab == TabRecent {
		m.results, err = m.source.Recent(maxScores)
	} else {
		m.results, err = m.source.TopScores(maxScores)
	}
	if err != nil {
		m.err = err
	}

	if stats, statsErr := m.source.Stats(); statsErr == nil {
		m.stats = stats
	} else if m.err == nil {
		m.err = statsErr
	}

	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded results.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.MaxTile),
			r.Status,
			strconv.Itoa(r.Moves),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("2048 - HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the history in one line.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Games == 0 {
		return ""
	}
	s := m.stats
	return fmt.Sprintf("Games %d  Wins %d  Best %d  Avg %.0f  Best tile %d",
		s.Games, s.Wins, s.HighScore, s.AvgScore, s.BestTile)
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreTab{TabTop, TabRecent} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	}
	if len(m.results) == 0 {
		return emptyStyle.Render("No games recorded yet.\nFinish a game to set a high score!")
	}

	return m.table.View()
}

// Tab returns the selected tab.
func (m ScoreboardModel) Tab() ScoreTab {
	return m.tab
}

// RunScoreboard runs the interactive score history screen.
func RunScoreboard(source ScoreSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(source, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// centerText centers each line of text within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
