// Package geom provides the small geometric helpers shared by the float
// positioning code.
package geom

import "cmp"

// Clamp returns v limited to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec2 is an offset on the editor grid, in cells. X grows rightward, Y
// grows downward.
type Vec2 struct {
	X, Y int
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by n.
func (v Vec2) Scale(n int) Vec2 {
	return Vec2{X: v.X * n, Y: v.Y * n}
}
