package dodge

import (
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/intro-arcade/internal/config"
	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

// memScores is an in-memory high score store.
type memScores struct {
	score int
	saves []int
	err   error
}

func (m *memScores) Load() int { return m.score }

func (m *memScores) Save(score int) error {
	if m.err != nil {
		return m.err
	}
	m.score = score
	m.saves = append(m.saves, score)
	return nil
}

func newTestGame(t *testing.T, seed int64, scores core.HighScoreStore) *Game {
	t.Helper()
	g := New(config.DefaultDodgeConfig(), scores)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

// startRun moves the game from the title screen into a run.
func startRun(t *testing.T, g *Game) {
	t.Helper()
	if quit := g.HandleAction(core.ActionConfirm); quit {
		t.Fatal("Confirm should not quit")
	}
	if g.Mode() != core.ModePlaying {
		t.Fatalf("mode = %s, expected playing", g.Mode())
	}
}

// clearField removes the enemies and parks the coin away from the player.
func clearField(g *Game) {
	g.run.Enemies = nil
	g.run.Coin.Rect = core.NewRect(900, 500, 18, 18)
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestResetShowsTitle(t *testing.T) {
	g := newTestGame(t, 1, &memScores{score: 12})

	state := g.State()
	if state.Mode != core.ModeTitle {
		t.Errorf("mode = %s, expected title", state.Mode)
	}
	if state.HighScore != 12 {
		t.Errorf("high score = %d, expected 12 from the store", state.HighScore)
	}
	if g.ID() != "dodge" || g.Title() != "Intro Arcade" {
		t.Errorf("identity = %q/%q", g.ID(), g.Title())
	}
}

func TestModeTransitions(t *testing.T) {
	g := newTestGame(t, 1, nil)

	// Steps do nothing on the title screen.
	res := g.Step(0.5, core.NewInputFrame(core.ActionRight))
	if res.State.AliveTime != 0 || len(res.Events) != 0 {
		t.Errorf("title step changed state: %+v", res)
	}

	startRun(t, g)
	state := g.State()
	if state.Score != 0 || state.Lives != 3 || state.AliveTime != 0 || state.Enemies != 3 {
		t.Errorf("fresh run = %+v, expected score 0, lives 3, 3 enemies", state)
	}
	for _, e := range g.Run().Enemies {
		if e.Kind() != KindBouncer {
			t.Errorf("initial enemy is a %s, expected bouncer", e.Kind())
		}
	}

	// Confirm while playing is ignored.
	g.run.Score = 4
	g.HandleAction(core.ActionConfirm)
	if g.Mode() != core.ModePlaying || g.State().Score != 4 {
		t.Errorf("confirm during a run reset it: %+v", g.State())
	}

	// From game over, confirm starts a fresh run.
	g.mode = core.ModeGameOver
	g.run.Lives = 0
	g.HandleAction(core.ActionConfirm)
	state = g.State()
	if state.Mode != core.ModePlaying || state.Score != 0 || state.Lives != 3 || state.Enemies != 3 {
		t.Errorf("restart = %+v, expected a fresh run", state)
	}
}

func TestQuitActions(t *testing.T) {
	tests := []struct {
		action core.Action
		quit   bool
	}{
		{core.ActionCancel, true},
		{core.ActionQuit, true},
		{core.ActionConfirm, false},
		{core.ActionLeft, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			g := newTestGame(t, 1, nil)
			if got := g.HandleAction(tt.action); got != tt.quit {
				t.Errorf("HandleAction(%s) = %v, expected %v", tt.action, got, tt.quit)
			}
		})
	}
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name   string
		input  core.InputFrame
		dx, dy int
	}{
		{"idle", core.NewInputFrame(), 0, 0},
		{"right", core.NewInputFrame(core.ActionRight), 36, 0},
		{"left", core.NewInputFrame(core.ActionLeft), -36, 0},
		{"up", core.NewInputFrame(core.ActionUp), 0, -36},
		{"down", core.NewInputFrame(core.ActionDown), 0, 36},
		{"diagonal is not normalized", core.NewInputFrame(core.ActionRight, core.ActionDown), 36, 36},
		{"opposites cancel", core.NewInputFrame(core.ActionLeft, core.ActionRight), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 1, nil)
			startRun(t, g)
			clearField(g)

			before := g.Run().Player.Rect
			g.Step(0.1, tt.input)
			after := g.Run().Player.Rect

			if after.X-before.X != tt.dx || after.Y-before.Y != tt.dy {
				t.Errorf("moved (%d,%d), expected (%d,%d)", after.X-before.X, after.Y-before.Y, tt.dx, tt.dy)
			}
		})
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	g := newTestGame(t, 3, nil)
	startRun(t, g)
	g.run.Lives = 1 << 20 // Survive every collision

	rng := rand.New(rand.NewSource(3))
	moves := []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}
	bounds := g.PlayBounds()

	for i := 0; i < 5000; i++ {
		in := core.NewInputFrame()
		for _, a := range moves {
			if rng.Intn(2) == 0 {
				in.Set(a)
			}
		}
		g.Step(rng.Float64()*0.25, in)

		p := g.Run().Player.Rect
		if p.Left() < 0 || p.Right() > 960 || p.Top() < 60 || p.Bottom() > 540 {
			t.Fatalf("step %d: player %+v outside %+v", i, p, bounds)
		}
		if !g.Run().Coin.Rect.Inside(bounds) {
			t.Fatalf("step %d: coin %+v outside %+v", i, g.Run().Coin.Rect, bounds)
		}
	}
}

func TestScoreProgression(t *testing.T) {
	g := newTestGame(t, 5, nil)
	startRun(t, g)
	g.run.Enemies = nil
	g.run.Lives = 1 << 20 // Spawned enemies may land on the player

	spawns := map[int]EnemyKind{5: KindBouncer, 10: KindSeeker, 15: KindBouncer, 20: KindSeeker}

	for score := 1; score <= 20; score++ {
		before := len(g.Run().Enemies)
		g.run.Coin.Rect = g.run.Player.Rect

		res := g.Step(0, core.NewInputFrame())

		if res.State.Score != score {
			t.Fatalf("score = %d, expected %d", res.State.Score, score)
		}
		if !hasEvent(res.Events, core.EventCoinCollected) {
			t.Errorf("score %d: missing coin event", score)
		}

		enemies := g.Run().Enemies
		kind, spawned := spawns[score]
		if !spawned {
			if len(enemies) != before {
				t.Errorf("score %d: enemy count %d -> %d, expected no spawn", score, before, len(enemies))
			}
			continue
		}
		if len(enemies) != before+1 {
			t.Fatalf("score %d: enemy count %d -> %d, expected one spawn", score, before, len(enemies))
		}
		if got := enemies[len(enemies)-1].Kind(); got != kind {
			t.Errorf("score %d: spawned %s, expected %s", score, got, kind)
		}
		if !hasEvent(res.Events, core.EventEnemySpawned) {
			t.Errorf("score %d: missing spawn event", score)
		}
	}
}

func TestCoinRespawnsOnPickup(t *testing.T) {
	g := newTestGame(t, 8, nil)
	startRun(t, g)
	clearField(g)

	g.run.Coin.Rect = g.run.Player.Rect
	old := g.run.Coin.Rect
	g.Step(0, core.NewInputFrame())

	c := g.Run().Coin.Rect
	if c == old {
		t.Error("coin should move after pickup")
	}
	if c.W != 18 || c.H != 18 || !c.Inside(g.PlayBounds()) {
		t.Errorf("new coin %+v invalid", c)
	}
}

func TestLivesAndGameOver(t *testing.T) {
	g := newTestGame(t, 9, nil)
	startRun(t, g)
	clearField(g)

	// A stationary enemy covering both the start and the respawn point.
	g.run.Enemies = []Enemy{NewBouncer(core.NewRect(440, 250, 80, 80), core.Vec2{})}

	for want := 2; want >= 0; want-- {
		if g.Mode() != core.ModePlaying {
			t.Fatalf("game ended early with %d lives", g.State().Lives)
		}
		res := g.Step(1.0/60, core.NewInputFrame())

		if res.State.Lives != want {
			t.Fatalf("lives = %d, expected %d", res.State.Lives, want)
		}
		if !hasEvent(res.Events, core.EventLifeLost) {
			t.Errorf("missing life lost event at %d lives", want)
		}

		gameOver := hasEvent(res.Events, core.EventGameOver)
		if gameOver != (want == 0) {
			t.Errorf("game over event = %v at %d lives", gameOver, want)
		}
		if want > 0 {
			p := g.Run().Player
			if cx, cy := p.Rect.Center(); cx != 480 || cy != 300 {
				t.Errorf("respawn center = (%d,%d), expected (480,300)", cx, cy)
			}
			if !p.Vel.IsZero() {
				t.Errorf("respawn velocity = %+v, expected zero", p.Vel)
			}
		}
	}

	if g.Mode() != core.ModeGameOver {
		t.Fatalf("mode = %s, expected gameover", g.Mode())
	}

	// Nothing moves once the run is over.
	res := g.Step(1.0/60, core.NewInputFrame())
	if res.State.Lives != 0 || len(res.Events) != 0 {
		t.Errorf("step after game over = %+v", res)
	}
}

// loseRun ends the current run with the given score.
func loseRun(g *Game, score int) core.StepResult {
	clearField(g)
	g.run.Score = score
	g.run.Lives = 1
	g.run.Enemies = []Enemy{NewBouncer(g.run.Player.Rect, core.Vec2{})}
	return g.Step(0, core.NewInputFrame())
}

func TestHighScorePersistence(t *testing.T) {
	store := &memScores{score: 5}
	g := newTestGame(t, 11, store)

	startRun(t, g)
	res := loseRun(g, 3)
	if hasEvent(res.Events, core.EventNewHighScore) || len(store.saves) != 0 {
		t.Errorf("score below the record should not be saved: %v", store.saves)
	}
	if g.HighScore() != 5 {
		t.Errorf("high score = %d, expected 5", g.HighScore())
	}

	g.HandleAction(core.ActionConfirm)
	res = loseRun(g, 7)
	if !hasEvent(res.Events, core.EventNewHighScore) {
		t.Error("missing new high score event")
	}
	if g.HighScore() != 7 || res.State.HighScore != 7 {
		t.Errorf("high score = %d, expected 7", g.HighScore())
	}
	if len(store.saves) != 1 || store.saves[0] != 7 {
		t.Errorf("saves = %v, expected [7]", store.saves)
	}

	// A fresh game picks the record up from the store.
	if g2 := newTestGame(t, 12, store); g2.HighScore() != 7 {
		t.Errorf("reloaded high score = %d, expected 7", g2.HighScore())
	}
}

func TestHighScoreSaveFailure(t *testing.T) {
	store := &memScores{err: errors.New("disk full")}
	g := newTestGame(t, 13, store)
	startRun(t, g)

	res := loseRun(g, 4)

	if g.HighScore() != 4 {
		t.Errorf("high score = %d, expected 4 even when saving fails", g.HighScore())
	}
	found := false
	for _, e := range res.Events {
		if e.Kind == core.EventNewHighScore && strings.Contains(e.Detail, "disk full") {
			found = true
		}
	}
	if !found {
		t.Errorf("events %+v should report the failed save", res.Events)
	}
}

func TestSharedHighScoreNeverDrops(t *testing.T) {
	shared := storage.MonotonicHighScore{
		File: storage.NewHighScoreFile(filepath.Join(t.TempDir(), "save.json")),
	}
	a := newTestGame(t, 21, shared)
	b := newTestGame(t, 22, shared)
	startRun(t, a)
	startRun(t, b)

	if res := loseRun(a, 10); !hasEvent(res.Events, core.EventNewHighScore) {
		t.Fatal("first record should raise the high score")
	}

	// b loaded 0 at reset; the shared file now holds 10.
	res := loseRun(b, 5)
	if hasEvent(res.Events, core.EventNewHighScore) {
		t.Error("5 is not a record once another game stored 10")
	}
	if b.HighScore() != 10 || res.State.HighScore != 10 {
		t.Errorf("high score = %d (state %d), expected 10", b.HighScore(), res.State.HighScore)
	}
	if got := shared.Load(); got != 10 {
		t.Errorf("stored high score = %d, expected 10", got)
	}

	// A new run picks up records set elsewhere in the meantime.
	a.HandleAction(core.ActionConfirm)
	loseRun(a, 15)
	b.HandleAction(core.ActionConfirm)
	if b.State().HighScore != 15 {
		t.Errorf("high score at run start = %d, expected 15", b.State().HighScore)
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs must stay identical.
	g1 := newTestGame(t, 12345, nil)
	g2 := newTestGame(t, 12345, nil)
	startRun(t, g1)
	startRun(t, g2)

	rng := rand.New(rand.NewSource(1))
	moves := []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

	for i := 0; i < 1200; i++ {
		in := core.NewInputFrame(moves[rng.Intn(len(moves))])
		r1 := g1.Step(1.0/60, in)
		r2 := g2.Step(1.0/60, in)

		if r1.State != r2.State {
			t.Fatalf("step %d: states differ: %+v vs %+v", i, r1.State, r2.State)
		}
	}

	run1, run2 := g1.Run(), g2.Run()
	if run1.Player.Rect != run2.Player.Rect || run1.Coin.Rect != run2.Coin.Rect {
		t.Error("player or coin differ between runs")
	}
	if len(run1.Enemies) != len(run2.Enemies) {
		t.Fatalf("enemy counts differ: %d vs %d", len(run1.Enemies), len(run2.Enemies))
	}
	for i := range run1.Enemies {
		if run1.Enemies[i].Rect() != run2.Enemies[i].Rect() {
			t.Errorf("enemy %d differs: %+v vs %+v", i, run1.Enemies[i].Rect(), run2.Enemies[i].Rect())
		}
	}
}

func TestRegisteredFactory(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("dodge should be registered")
	}

	g, err := registry.Create(GameID, registry.Env{Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	g.HandleAction(core.ActionConfirm)
	if lives := g.State().Lives; lives != 2 {
		t.Errorf("hard run starts with %d lives, expected 2", lives)
	}

	if _, err := registry.Create(GameID, registry.Env{Difficulty: "nightmare"}); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestInputTiming(t *testing.T) {
	g := newTestGame(t, 1, nil)
	hold, maxDelta := g.InputTiming()
	if hold != 0.2 || maxDelta != 0.25 {
		t.Errorf("InputTiming() = %v, %v", hold, maxDelta)
	}
}
