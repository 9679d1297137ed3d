package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

// Input timing used when a game does not provide its own.
const (
	defaultHoldWindow = 0.2
	defaultMaxDelta   = 0.25
)

// inputTimer is implemented by games that tune the held-key window and the
// frame delta cap.
type inputTimer interface {
	InputTiming() (hold, maxDelta float64)
}

// Options configures a game model.
type Options struct {
	Runtime   core.RuntimeConfig
	FixedStep bool               // Step exactly 1/TickRate per tick
	Store     *storage.Store     // Run history; nil disables recording
	Logger    *log.Logger        // Nil discards log output
	Renderer  *lipgloss.Renderer // Nil uses the lipgloss default
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	styles   Styles
	held     HeldKeys
	clock    Clock
	state    core.GameState
	status   string // Replaces the help line until the next key press
	now      func() time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hold, maxDelta := defaultHoldWindow, defaultMaxDelta
	if t, ok := game.(inputTimer); ok {
		hold, maxDelta = t.InputTiming()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		store:  opts.Store,
		logger: logger.With("game", game.ID()),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		styles: NewStyles(opts.Renderer),
		held:   NewHeldKeys(time.Duration(hold * float64(time.Second))),
		clock:  NewClock(cfg.TickRate, maxDelta, opts.FixedStep),
		now:    time.Now,
	}
}

// gameRows is the screen height left for the game below which the help line sits.
func gameRows(height int) int {
	return max(height-1, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game initialized", "seed", m.config.Seed, "fps", m.config.TickRate)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, m.keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.status = "screenshot failed"
		} else {
			m.logger.Info("screenshot saved", "path", path)
			m.status = "saved " + path
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionNone:
		return m, nil
	case action.IsMovement():
		m.held.Press(action, m.now())
		return m, nil
	}

	before := m.game.State().Mode
	if quit := m.game.HandleAction(action); quit {
		m.logger.Debug("quit requested", "action", action)
		m.quitting = true
		return m, tea.Quit
	}

	m.state = m.game.State()
	if before != core.ModePlaying && m.state.Mode == core.ModePlaying {
		m.held.Release()
		m.clock.Reset()
		m.logger.Debug("run started", "high_score", m.state.HighScore)
	}
	return m, nil
}

// handleResize processes window resize events.
// The game simulates in its own coordinates, so only the screen changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.clock.Delta(now)
	result := m.game.Step(dt, m.held.Frame(now))
	m.state = result.State
	m.handleEvents(result.Events)

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleEvents logs step events and records finished runs.
func (m *Model) handleEvents(events []core.Event) {
	for _, ev := range events {
		m.logger.Debug("game event", "event", ev.Kind, "value", ev.Value, "detail", ev.Detail)

		switch ev.Kind {
		case core.EventGameOver:
			m.logger.Info("run finished",
				"score", m.state.Score,
				"alive", fmt.Sprintf("%.1fs", m.state.AliveTime),
				"enemies", m.state.Enemies,
			)
			m.recordRun()
		case core.EventNewHighScore:
			if ev.Detail != "" {
				m.logger.Warn("high score not persisted", "score", ev.Value, "detail", ev.Detail)
			} else {
				m.logger.Info("new high score", "score", ev.Value)
			}
		}
	}
}

// recordRun stores the finished run in the history database.
func (m *Model) recordRun() {
	if m.store == nil {
		return
	}
	id, err := m.store.RecordRun(storage.RunRecord{
		GameID:    m.game.ID(),
		Score:     m.state.Score,
		AliveTime: m.state.AliveTime,
		Enemies:   m.state.Enemies,
	})
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
		return
	}
	m.logger.Debug("run recorded", "id", id)
}

// screenshotDir is where ctrl+s writes frames.
func screenshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".arcade", "screenshots"), nil
}

// saveScreenshot saves the current screen to a file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	// Render current state
	m.game.Render(m.screen)

	dir, err := screenshotDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	// Generate filename with timestamp
	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// State returns the game state as of the last tick or key press.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return RenderScreen(m.screen, m.styles) + "\n" + footer
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
