package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

const stubID = "stub"

func init() {
	registry.Register(stubID, "Stub Game", func(registry.Env) (registry.Game, error) {
		return &stubGame{}, nil
	})
}

type stepCall struct {
	dt    float64
	input core.InputFrame
}

// stubGame records what the platform feeds it.
type stubGame struct {
	state   core.GameState
	resets  int
	actions []core.Action
	steps   []stepCall
	pending []core.Event // Returned by the next Step
	onStep  core.GameState
}

func (g *stubGame) ID() string    { return stubID }
func (g *stubGame) Title() string { return "Stub Game" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Mode: core.ModeTitle}
}

func (g *stubGame) HandleAction(a core.Action) bool {
	g.actions = append(g.actions, a)
	switch a {
	case core.ActionCancel, core.ActionQuit:
		return true
	case core.ActionConfirm:
		g.state.Mode = core.ModePlaying
	}
	return false
}

func (g *stubGame) Step(dt float64, in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, stepCall{dt: dt, input: in.Clone()})
	if g.pending != nil {
		g.state = g.onStep
	}
	events := g.pending
	g.pending = nil
	return core.StepResult{State: g.state, Events: events}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "STUB "+g.state.Mode.String(), core.ColorText)
}

func (g *stubGame) State() core.GameState { return g.state }

func newTestModel(t *testing.T, game registry.Game, opts Options) Model {
	t.Helper()
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	}
	opts.Renderer = lipgloss.NewRenderer(io.Discard)
	m := NewModel(game, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	newTestModel(t, g, Options{})
	if g.resets != 1 {
		t.Errorf("Reset called %d times, expected 1", g.resets)
	}
}

func TestModelHeldMovement(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, Options{})
	base := time.Unix(1000, 0)
	m.now = func() time.Time { return base }

	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, TickMsg(base.Add(100*time.Millisecond)))
	m, _ = update(t, m, TickMsg(base.Add(300*time.Millisecond)))

	if len(g.steps) != 2 {
		t.Fatalf("got %d steps, expected 2", len(g.steps))
	}
	if !g.steps[0].input.Has(core.ActionLeft) {
		t.Error("Left should be held on the first tick")
	}
	if g.steps[1].input.Has(core.ActionLeft) {
		t.Error("Left should be released after the hold window")
	}
	if len(g.actions) != 0 {
		t.Errorf("movement keys should not reach HandleAction, got %v", g.actions)
	}
}

func TestModelDeltaTime(t *testing.T) {
	tests := []struct {
		name  string
		fixed bool
		want  []float64
	}{
		{"measured", false, []float64{1.0 / 60, 0.05, 0.25}},
		{"fixed step", true, []float64{1.0 / 60, 1.0 / 60, 1.0 / 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &stubGame{}
			m := newTestModel(t, g, Options{FixedStep: tt.fixed})
			base := time.Unix(1000, 0)

			for _, at := range []time.Duration{0, 50 * time.Millisecond, 5 * time.Second} {
				var cmd tea.Cmd
				m, cmd = update(t, m, TickMsg(base.Add(at)))
				if cmd == nil {
					t.Fatal("tick should schedule the next tick")
				}
			}

			for i, s := range g.steps {
				if diff := s.dt - tt.want[i]; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("step %d dt = %v, expected %v", i, s.dt, tt.want[i])
				}
			}
		})
	}
}

func TestModelConfirmAndQuit(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, Options{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("confirm should not quit")
	}
	if m.State().Mode != core.ModePlaying {
		t.Errorf("mode = %s, expected playing", m.State().Mode)
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelRecordsFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m := newTestModel(t, g, Options{Store: store})

	g.onStep = core.GameState{Mode: core.ModeGameOver, Score: 5, AliveTime: 12.5, Enemies: 4}
	g.pending = []core.Event{{Kind: core.EventLifeLost}, {Kind: core.EventGameOver, Value: 5}}
	m, _ = update(t, m, TickMsg(time.Unix(1000, 0)))

	// Later ticks without a game over event record nothing.
	update(t, m, TickMsg(time.Unix(1001, 0)))

	runs, err := store.TopRuns(stubID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 5 || r.AliveTime != 12.5 || r.Enemies != 4 || r.ID == "" {
		t.Errorf("recorded run = %+v", r)
	}
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	g := &stubGame{}
	m := newTestModel(t, g, Options{})
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	path := filepath.Join(home, ".arcade", "screenshots", "stub_20260102_030405.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "STUB title") {
		t.Errorf("screenshot content = %q", string(data)[:20])
	}
	if !strings.Contains(m.View(), "saved "+path) {
		t.Error("footer should report the screenshot path")
	}
}

func TestModelResize(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
	if g.resets != 1 {
		t.Error("resizing should not reset the game")
	}

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 30 {
		t.Errorf("view has %d lines, expected 30", len(lines))
	}
	if !strings.HasPrefix(lines[0], "STUB title") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestModelUsesGameInputTiming(t *testing.T) {
	g := &timedGame{stubGame: &stubGame{}}
	m := newTestModel(t, g, Options{})
	base := time.Unix(1000, 0)
	m.now = func() time.Time { return base }

	m, _ = update(t, m, runeKey('d'))
	update(t, m, TickMsg(base.Add(700*time.Millisecond)))

	if !g.steps[0].input.Has(core.ActionRight) {
		t.Error("game-provided hold window should apply")
	}
}

// timedGame is a stubGame with a long hold window.
type timedGame struct {
	*stubGame
}

func (g *timedGame) InputTiming() (float64, float64) { return 1, 0.5 }
