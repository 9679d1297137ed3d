package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

type fixedScore int

func (f fixedScore) Load() int        { return int(f) }
func (f fixedScore) Save(s int) error { return nil }

func TestFormatAlive(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0s"},
		{12.44, "12.4s"},
		{65.5, "1m05.5s"},
		{600, "10m00.0s"},
	}

	for _, tt := range tests {
		if got := formatAlive(tt.in); got != tt.want {
			t.Errorf("formatAlive(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestRunRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 0, 0, time.Local)
	rows := RunRows([]storage.RunRecord{
		{Score: 30, AliveTime: 75, Enemies: 8, CreatedAt: at},
		{Score: 4, AliveTime: 9.25, Enemies: 3, CreatedAt: at},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(rows))
	}
	want := []string{"#1", "30", "1m15.0s", "8", "Mar 04 05:06"}
	for i, cell := range rows[0] {
		if cell != want[i] {
			t.Errorf("row 0 column %d = %q, expected %q", i, cell, want[i])
		}
	}
	if rows[1][0] != "#2" {
		t.Errorf("second rank = %q", rows[1][0])
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, fixedScore(17), stubID, 80, 24)

	view := m.View()
	if !strings.Contains(view, "Run history is unavailable.") {
		t.Errorf("view should explain the missing history:\n%s", view)
	}
	if !strings.Contains(view, "Saved high: 17") {
		t.Errorf("view should show the saved high score:\n%s", view)
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{3, 11} {
		if _, err := store.RecordRun(storage.RunRecord{GameID: stubID, Score: score, AliveTime: 20}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, nil, stubID, 100, 30)

	if len(m.runs) != 2 || m.runs[0].Score != 11 {
		t.Fatalf("runs = %+v, expected best first", m.runs)
	}
	view := m.View()
	for _, want := range []string{"Stub Game", "Runs: 2", "Avg: 7.0", "Time played: 40.0s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Saved high") {
		t.Error("no saved high score store was given")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, nil, stubID, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScoreboardGameSwitchKeys(t *testing.T) {
	m := NewScoreboardModel(nil, nil, stubID, 120, 24)
	browse := len(registry.List()) > 1

	if m.keys.NextGame.Enabled() != browse || m.keys.PrevGame.Enabled() != browse {
		t.Errorf("game switch keys enabled = %v/%v, expected %v",
			m.keys.NextGame.Enabled(), m.keys.PrevGame.Enabled(), browse)
	}
	if !browse && strings.Contains(m.View(), "next game") {
		t.Errorf("help should not offer switching between games:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !browse && next.(ScoreboardModel).gameCursor != m.gameCursor {
		t.Error("tab should not move the cursor with a single game")
	}
}
