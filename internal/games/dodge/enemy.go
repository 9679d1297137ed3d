package dodge

import (
	"math"

	"github.com/vovakirdan/intro-arcade/internal/core"
)

// EnemyKind identifies an enemy variant.
type EnemyKind int

const (
	KindBouncer EnemyKind = iota
	KindSeeker
)

// String returns the variant name.
func (k EnemyKind) String() string {
	switch k {
	case KindBouncer:
		return "bouncer"
	case KindSeeker:
		return "seeker"
	default:
		return "unknown"
	}
}

// Enemy is a moving hazard. Update advances it by dt seconds inside bounds;
// player is the player's rect at the time of the update.
type Enemy interface {
	Kind() EnemyKind
	Rect() core.Rect
	Velocity() core.Vec2
	Color() core.Color
	Update(dt float64, bounds, player core.Rect)
}

// body holds the state shared by both variants.
type body struct {
	rect  core.Rect
	vel   core.Vec2
	color core.Color
}

func (b *body) Rect() core.Rect     { return b.rect }
func (b *body) Velocity() core.Vec2 { return b.vel }
func (b *body) Color() core.Color   { return b.color }

// integrate moves the rect by vel*dt, truncating each axis to whole pixels.
func (b *body) integrate(dt float64) {
	b.rect.X += int(b.vel.X * dt)
	b.rect.Y += int(b.vel.Y * dt)
}

// Bouncer reflects off walls like a billiard ball.
type Bouncer struct {
	body
}

// NewBouncer creates a bouncer at rect moving with vel.
func NewBouncer(rect core.Rect, vel core.Vec2) *Bouncer {
	return &Bouncer{body{rect: rect, vel: vel, color: core.ColorBouncer}}
}

// Kind returns KindBouncer.
func (b *Bouncer) Kind() EnemyKind { return KindBouncer }

// Update moves the bouncer and reflects it off every edge it crossed.
// Each edge is checked on its own, so a corner hit flips both axes.
func (b *Bouncer) Update(dt float64, bounds, _ core.Rect) {
	b.integrate(dt)

	if b.rect.Left() < bounds.Left() {
		b.rect.SetLeft(bounds.Left())
		b.vel.X = -b.vel.X
	}
	if b.rect.Right() > bounds.Right() {
		b.rect.SetRight(bounds.Right())
		b.vel.X = -b.vel.X
	}
	if b.rect.Top() < bounds.Top() {
		b.rect.SetTop(bounds.Top())
		b.vel.Y = -b.vel.Y
	}
	if b.rect.Bottom() > bounds.Bottom() {
		b.rect.SetBottom(bounds.Bottom())
		b.vel.Y = -b.vel.Y
	}
}

// Seeker turns toward the player whenever it touches a wall,
// keeping its speed.
type Seeker struct {
	body
}

// NewSeeker creates a seeker at rect moving with vel.
func NewSeeker(rect core.Rect, vel core.Vec2) *Seeker {
	return &Seeker{body{rect: rect, vel: vel, color: core.ColorSeeker}}
}

// Kind returns KindSeeker.
func (s *Seeker) Kind() EnemyKind { return KindSeeker }

// Update moves the seeker, clamps it inside bounds and retargets on wall contact.
func (s *Seeker) Update(dt float64, bounds, player core.Rect) {
	s.integrate(dt)

	hitWall := false

	if s.rect.Left() < bounds.Left() {
		s.rect.SetLeft(bounds.Left())
		hitWall = true
	} else if s.rect.Right() > bounds.Right() {
		s.rect.SetRight(bounds.Right())
		hitWall = true
	}

	if s.rect.Top() < bounds.Top() {
		s.rect.SetTop(bounds.Top())
		hitWall = true
	} else if s.rect.Bottom() > bounds.Bottom() {
		s.rect.SetBottom(bounds.Bottom())
		hitWall = true
	}

	if hitWall {
		s.retarget(player)
	}
}

// retarget points the velocity at the player's center at the current speed.
// When the centers coincide the velocity is left alone.
func (s *Seeker) retarget(player core.Rect) {
	speed := s.vel.Len()
	px, py := player.Center()
	sx, sy := s.rect.Center()
	dx := float64(px - sx)
	dy := float64(py - sy)

	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	s.vel = core.NewVec2(dx/dist*speed, dy/dist*speed)
}
