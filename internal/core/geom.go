// Package core provides the platform's fundamental types: screen buffer,
// input frames and runtime configuration. It has no external dependencies
// (especially no Bubble Tea) so games stay pure and testable.
package core

// Point is a screen cell coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CellAt maps a screen point inside r to a (col, row) in a grid of
// cellW x cellH cells laid out from r's top-left corner.
func (r Rect) CellAt(p Point, cellW, cellH int) (col, row int, ok bool) {
	if cellW <= 0 || cellH <= 0 || !r.Contains(p.X, p.Y) {
		return 0, 0, false
	}
	return (p.X - r.X) / cellW, (p.Y - r.Y) / cellH, true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
