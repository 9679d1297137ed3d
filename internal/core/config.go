package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Mode is the top-level state of a game.
type Mode int

const (
	ModeTitle Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Mode      Mode
	Score     int     // Current score
	HighScore int     // Best score known to the game
	Lives     int     // Remaining lives
	AliveTime float64 // Seconds survived in the current run
	Enemies   int     // Number of enemies in the current run
}

// GameOver reports whether the run has ended.
func (s GameState) GameOver() bool {
	return s.Mode == ModeGameOver
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventCoinCollected EventKind = iota
	EventEnemySpawned
	EventLifeLost
	EventGameOver
	EventNewHighScore
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCoinCollected:
		return "coin_collected"
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventNewHighScore:
		return "new_high_score"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step for the platform to log or persist.
type Event struct {
	Kind   EventKind
	Value  int    // Score, lives or high score, depending on Kind
	Detail string // Optional detail such as the enemy variant
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// HighScoreStore persists a game's best score.
// Load never fails: unreadable data reads as 0.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}
