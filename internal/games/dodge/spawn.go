package dodge

import (
	"math/rand"

	"github.com/vovakirdan/intro-arcade/internal/config"
	"github.com/vovakirdan/intro-arcade/internal/core"
)

// Spawner places new enemies and coins at random positions.
type Spawner struct {
	rng *rand.Rand
	cfg config.DodgeConfig
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg config.DodgeConfig) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// Reset reseeds the RNG.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Bouncer returns a new bouncer inside the enemy spawn area.
func (s *Spawner) Bouncer() *Bouncer {
	rect, vel := s.enemy(s.cfg.Bouncer)
	return NewBouncer(rect, vel)
}

// Seeker returns a new seeker inside the enemy spawn area.
func (s *Spawner) Seeker() *Seeker {
	rect, vel := s.enemy(s.cfg.Seeker)
	return NewSeeker(rect, vel)
}

// Coin returns a new coin rect below the HUD strip.
func (s *Spawner) Coin() core.Rect {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	m := s.cfg.Spawn.CoinMargin
	x := s.between(m, w-m)
	y := s.between(s.cfg.Spawn.CoinMinY, h-m)
	return core.NewRect(x, y, s.cfg.Coin.Size, s.cfg.Coin.Size)
}

// enemy picks a top-left corner in the enemy spawn area and a diagonal velocity
// with an independent random sign per axis.
func (s *Spawner) enemy(ec config.EnemyConfig) (core.Rect, core.Vec2) {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	m := s.cfg.Spawn.EnemyMargin
	x := s.between(m, w-m)
	y := s.between(s.cfg.Spawn.EnemyMinY, h-m)
	rect := core.NewRect(x, y, ec.Size, ec.Size)
	vel := core.NewVec2(s.sign()*ec.Speed, s.sign()*ec.Speed)
	return rect, vel
}

// between returns a random int in [lo, hi).
func (s *Spawner) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo)
}

// sign returns -1 or +1 with equal probability.
func (s *Spawner) sign() float64 {
	if s.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
