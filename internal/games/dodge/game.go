// Package dodge implements Intro Arcade: the player steers a square around the
// field, collecting coins while avoiding bouncing and seeking enemies.
//
// The simulation runs in world pixels (960x540 by default) and is independent
// of the terminal size; Render scales the world onto the screen buffer.
package dodge

import (
	"github.com/vovakirdan/intro-arcade/internal/config"
	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/registry"
)

// GameID is the registry identifier of the game.
const GameID = "dodge"

// GameTitle is the display name of the game.
const GameTitle = "Intro Arcade"

// Player is the controlled square.
type Player struct {
	Rect core.Rect
	Vel  core.Vec2
}

// Coin is the collectible. Exactly one is live at a time.
type Coin struct {
	Rect core.Rect
}

// RunState is everything that belongs to a single run.
type RunState struct {
	Player    Player
	Coin      Coin
	Enemies   []Enemy
	Score     int
	Lives     int
	AliveTime float64
}

// Game implements the dodge game logic.
type Game struct {
	cfg       config.DodgeConfig
	spawner   *Spawner
	scores    core.HighScoreStore
	mode      core.Mode
	run       RunState
	highScore int
	events    []core.Event
}

// New creates a game with the given tuning. scores may be nil, in which case
// the high score lives only in memory.
func New(cfg config.DodgeConfig, scores core.HighScoreStore) *Game {
	g := &Game{
		cfg:     cfg,
		spawner: NewSpawner(0, cfg),
		scores:  scores,
	}
	g.resetRun()
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return GameTitle
}

// Reset reseeds the game, reloads the high score and shows the title screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.spawner.Reset(rt.Seed)
	if g.scores != nil {
		g.highScore = g.scores.Load()
	}
	g.mode = core.ModeTitle
	g.events = g.events[:0]
	g.resetRun()
}

// HandleAction processes discrete key events.
// Confirm starts a new run from the title or game over screen and is ignored
// while playing. Cancel and Quit both ask the platform to exit.
func (g *Game) HandleAction(a core.Action) bool {
	switch a {
	case core.ActionCancel, core.ActionQuit:
		return true
	case core.ActionConfirm:
		if g.mode == core.ModeTitle || g.mode == core.ModeGameOver {
			g.refreshHighScore()
			g.resetRun()
			g.mode = core.ModePlaying
		}
	}
	return false
}

// Step advances the run by dt seconds. It does nothing unless a run is in progress.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	if g.mode != core.ModePlaying {
		return g.result()
	}

	g.run.AliveTime += dt
	bounds := g.PlayBounds()

	// Movement: each axis on its own, so diagonals are faster.
	dir := inputDirection(in)
	p := &g.run.Player
	p.Vel = dir.Scale(g.cfg.Player.Speed)
	p.Rect.X += int(p.Vel.X * dt)
	p.Rect.Y += int(p.Vel.Y * dt)
	p.Rect = p.Rect.Clamp(bounds)

	for _, e := range g.run.Enemies {
		e.Update(dt, bounds, p.Rect)
	}

	if p.Rect.Intersects(g.run.Coin.Rect) {
		g.collectCoin()
	}

	if g.touchingEnemy() {
		g.loseLife()
	}

	return g.result()
}

// inputDirection maps held movement actions to a direction with components in {-1, 0, 1}.
func inputDirection(in core.InputFrame) core.Vec2 {
	var dir core.Vec2
	if in.Has(core.ActionLeft) {
		dir.X -= 1
	}
	if in.Has(core.ActionRight) {
		dir.X += 1
	}
	if in.Has(core.ActionUp) {
		dir.Y -= 1
	}
	if in.Has(core.ActionDown) {
		dir.Y += 1
	}
	return dir
}

// collectCoin scores the coin, replaces it and grows the enemy list on
// score milestones. Seeker milestones take precedence over bouncer ones.
func (g *Game) collectCoin() {
	g.run.Score++
	g.run.Coin = Coin{Rect: g.spawner.Coin()}
	g.emit(core.EventCoinCollected, g.run.Score, "")

	switch {
	case g.run.Score%g.cfg.Gameplay.SeekerEvery == 0:
		g.addEnemy(g.spawner.Seeker())
	case g.run.Score%g.cfg.Gameplay.BouncerEvery == 0:
		g.addEnemy(g.spawner.Bouncer())
	}
}

func (g *Game) addEnemy(e Enemy) {
	g.run.Enemies = append(g.run.Enemies, e)
	g.emit(core.EventEnemySpawned, len(g.run.Enemies), e.Kind().String())
}

func (g *Game) touchingEnemy() bool {
	for _, e := range g.run.Enemies {
		if g.run.Player.Rect.Intersects(e.Rect()) {
			return true
		}
	}
	return false
}

// loseLife takes one life. The player respawns in the middle of the field while
// lives remain; otherwise the run ends and the high score is updated.
func (g *Game) loseLife() {
	g.run.Lives--
	g.emit(core.EventLifeLost, g.run.Lives, "")

	if g.run.Lives > 0 {
		g.respawnPlayer()
		return
	}

	g.mode = core.ModeGameOver
	g.emit(core.EventGameOver, g.run.Score, "")

	// The store may be shared, so compare against its current value.
	g.refreshHighScore()
	if g.run.Score <= g.highScore {
		return
	}

	// Persistence is best-effort; a failed write is only reported in the event.
	detail := ""
	if g.scores != nil {
		if err := g.scores.Save(g.run.Score); err != nil {
			detail = "save failed: " + err.Error()
		}
	}
	g.highScore = g.run.Score
	g.refreshHighScore()
	g.emit(core.EventNewHighScore, g.run.Score, detail)
}

// refreshHighScore raises the known high score to the stored one.
// It never lowers it.
func (g *Game) refreshHighScore() {
	if g.scores != nil {
		g.highScore = max(g.highScore, g.scores.Load())
	}
}

// respawnPlayer centers the player in the play area and stops it.
func (g *Game) respawnPlayer() {
	w, h, hud := g.cfg.World.Width, g.cfg.World.Height, g.cfg.World.HUDHeight
	g.run.Player.Rect.SetCenter(w/2, hud+(h-hud)/2)
	g.run.Player.Vel = core.Vec2{}
}

// resetRun starts a fresh run: centered player, full lives, the initial
// bouncers and one coin.
func (g *Game) resetRun() {
	w, h := g.cfg.World.Width, g.cfg.World.Height
	size := g.cfg.Player.Size

	g.run = RunState{
		Player: Player{Rect: core.NewRect(w/2-size/2, h/2-size/2, size, size)},
		Lives:  g.cfg.Gameplay.Lives,
	}
	g.run.Enemies = make([]Enemy, 0, g.cfg.Gameplay.InitialBouncers+4)
	for i := 0; i < g.cfg.Gameplay.InitialBouncers; i++ {
		g.run.Enemies = append(g.run.Enemies, g.spawner.Bouncer())
	}
	g.run.Coin = Coin{Rect: g.spawner.Coin()}
}

func (g *Game) emit(kind core.EventKind, value int, detail string) {
	g.events = append(g.events, core.Event{Kind: kind, Value: value, Detail: detail})
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// PlayBounds returns the part of the world below the HUD strip.
func (g *Game) PlayBounds() core.Rect {
	hud := g.cfg.World.HUDHeight
	return core.NewRect(0, hud, g.cfg.World.Width, g.cfg.World.Height-hud)
}

// Mode returns the current screen.
func (g *Game) Mode() core.Mode {
	return g.mode
}

// Run returns the current run. Enemies are shared with the game, not copied.
func (g *Game) Run() RunState {
	return g.run
}

// HighScore returns the best score known to the game.
func (g *Game) HighScore() int {
	return g.highScore
}

// InputTiming returns how long a movement key counts as held after a press
// and the longest step the platform should feed to Step, both in seconds.
func (g *Game) InputTiming() (hold, maxDelta float64) {
	return g.cfg.Input.HoldWindow, g.cfg.Input.MaxDelta
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Mode:      g.mode,
		Score:     g.run.Score,
		HighScore: g.highScore,
		Lives:     g.run.Lives,
		AliveTime: g.run.AliveTime,
		Enemies:   len(g.run.Enemies),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, GameTitle, func(env registry.Env) (registry.Game, error) {
		cfg, err := config.LoadDodge(env.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, err := config.ParseDifficulty(env.Difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyDodgePreset(&cfg, preset)
		return New(cfg, env.HighScores), nil
	})
}
