package tui

import (
	"time"

	"github.com/vovakirdan/intro-arcade/internal/core"
)

// HeldKeys emulates held movement keys on terminals, which report presses
// and auto-repeats but never releases. A key counts as held for a short
// window after its last press.
type HeldKeys struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(window time.Duration) HeldKeys {
	return HeldKeys{
		window: window,
		until:  make(map[core.Action]time.Time),
	}
}

// Press records a movement key press at now.
// Pressing a direction releases the opposite one on the same axis.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !a.IsMovement() {
		return
	}
	delete(h.until, a.Opposite())
	h.until[a] = now.Add(h.window)
}

// Frame returns the movement actions held at now and drops expired ones.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, until := range h.until {
		if now.Before(until) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return frame
}

// Release drops every held key.
func (h *HeldKeys) Release() {
	clear(h.until)
}
