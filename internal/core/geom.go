// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box used for collision detection.
// Coordinates are in world pixels; Y grows downward.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
// Negative sizes are clamped to zero.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: Max(w, 0), H: Max(h, 0)}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() int {
	return r.X
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() int {
	return r.Y
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// SetLeft moves the rectangle so its left edge is at x.
func (r *Rect) SetLeft(x int) { r.X = x }

// SetRight moves the rectangle so its right edge is at x.
func (r *Rect) SetRight(x int) { r.X = x - r.W }

// SetTop moves the rectangle so its top edge is at y.
func (r *Rect) SetTop(y int) { r.Y = y }

// SetBottom moves the rectangle so its bottom edge is at y.
func (r *Rect) SetBottom(y int) { r.Y = y - r.H }

// SetCenter moves the rectangle so its center is at (cx, cy).
func (r *Rect) SetCenter(cx, cy int) {
	r.X = cx - r.W/2
	r.Y = cy - r.H/2
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp returns a copy of the rectangle moved inside bounds.
// A rectangle larger than bounds on an axis is centered on that axis.
func (r Rect) Clamp(bounds Rect) Rect {
	out := r

	switch {
	case r.W >= bounds.W:
		out.X = bounds.X + bounds.W/2 - r.W/2
	case r.X < bounds.X:
		out.X = bounds.X
	case r.Right() > bounds.Right():
		out.X = bounds.Right() - r.W
	}

	switch {
	case r.H >= bounds.H:
		out.Y = bounds.Y + bounds.H/2 - r.H/2
	case r.Y < bounds.Y:
		out.Y = bounds.Y
	case r.Bottom() > bounds.Bottom():
		out.Y = bounds.Bottom() - r.H
	}

	return out
}

// Inside reports whether the rectangle lies entirely within bounds.
func (r Rect) Inside(bounds Rect) bool {
	return r.X >= bounds.X && r.Right() <= bounds.Right() &&
		r.Y >= bounds.Y && r.Bottom() <= bounds.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
