package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	maxRuns = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextGame, k.PrevGame, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	games      []registry.GameInfo // Games that can be browsed
	gameCursor int                 // Currently selected game index
	store      *storage.Store      // Run history
	best       core.HighScoreStore // Saved high score of bestGame; may be nil
	bestGame   string
	runs       []storage.RunRecord // Top runs of the selected game
	stats      *storage.GameStats  // Aggregates of the selected game
	loadErr    error               // Last history query failure
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
}

// NewScoreboardModel creates a scoreboard that starts on gameID.
func NewScoreboardModel(store *storage.Store, best core.HighScoreStore, gameID string, width, height int) ScoreboardModel {
	games := registry.List()

	cursor := 0
	for i, g := range games {
		if g.ID == gameID {
			cursor = i
		}
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		games:      games,
		gameCursor: cursor,
		store:      store,
		best:       best,
		bestGame:   gameID,
		keys:       DefaultScoreboardKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}

	// Switching games only makes sense with more than one registered.
	browse := len(games) > 1
	m.keys.NextGame.SetEnabled(browse)
	m.keys.PrevGame.SetEnabled(browse)

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadRuns(m.games[m.gameCursor].ID)
	}

	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Alive", Width: 9},
		{Title: "Enemies", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#16181C")).
		Background(lipgloss.Color("#EBCB8B")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the history of the given game.
func (m *ScoreboardModel) loadRuns(gameID string) {
	m.runs, m.stats, m.loadErr = nil, nil, nil

	if m.store != nil {
		runs, err := m.store.TopRuns(gameID, maxRuns)
		if err != nil {
			m.loadErr = err
		}
		stats, err := m.store.Stats(gameID)
		if err != nil && m.loadErr == nil {
			m.loadErr = err
		}
		m.runs, m.stats = runs, stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))

	// Reset cursor to top
	m.table.GotoTop()
}

// RunRows formats runs as table rows, best first.
func RunRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			formatAlive(r.AliveTime),
			fmt.Sprintf("%d", r.Enemies),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatAlive renders seconds survived as 1m05.2s or 12.4s.
func formatAlive(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%dm%04.1fs", minutes, seconds-float64(minutes*60))
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

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadRuns(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadRuns(m.games[m.gameCursor].ID)
			}
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

	// Pass other messages to table for scrolling
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
		Foreground(lipgloss.Color("#EBCB8B"))

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ECEFF4"))
	b.WriteString(statsStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary is the one-line overview above the table.
func (m ScoreboardModel) summary() string {
	parts := make([]string, 0, 4)
	if m.best != nil && len(m.games) > 0 && m.games[m.gameCursor].ID == m.bestGame {
		parts = append(parts, fmt.Sprintf("Saved high: %d", m.best.Load()))
	}
	if m.stats != nil {
		parts = append(parts,
			fmt.Sprintf("Runs: %d", m.stats.RunsCount),
			fmt.Sprintf("Avg: %.1f", m.stats.AvgScore),
			fmt.Sprintf("Time played: %s", formatAlive(m.stats.TotalAliveTime)),
		)
		if !m.stats.LastPlayed.IsZero() {
			parts = append(parts, "Last: "+m.stats.LastPlayed.Local().Format(time.DateOnly))
		}
	}
	return strings.Join(parts, "   ")
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run history is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs: " + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// centerText pads text on the left to center it in width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, best core.HighScoreStore, gameID string, width, height int) error {
	model := NewScoreboardModel(store, best, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
