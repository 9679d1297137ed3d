// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Clock turns tick timestamps into simulation step lengths.
type Clock struct {
	tickRate int
	maxDelta float64 // Seconds; 0 disables the cap
	fixed    bool    // Always step exactly 1/tickRate
	last     time.Time
}

// NewClock creates a clock for the given tick rate.
func NewClock(tickRate int, maxDelta float64, fixed bool) Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return Clock{tickRate: tickRate, maxDelta: maxDelta, fixed: fixed}
}

// Delta returns the seconds elapsed since the previous tick.
// The first tick after a reset, and every tick in fixed mode, steps one frame.
// Long pauses (a suspended terminal, a slow SSH link) are capped at maxDelta.
func (c *Clock) Delta(now time.Time) float64 {
	frame := 1 / float64(c.tickRate)
	prev := c.last
	c.last = now

	if c.fixed || prev.IsZero() {
		return frame
	}

	dt := now.Sub(prev).Seconds()
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

// Reset forgets the previous tick.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
