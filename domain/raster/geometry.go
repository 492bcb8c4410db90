package raster

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate inside a buffer.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Clamp pins p into [0,w) x [0,h). A non-positive dimension pins that axis to 0.
// Points name pixels, so a drag across a w x h surface spans at most
// (w-1) x (h-1); the whole frame is submitted with an upload instead.
func (p Point) Clamp(w, h int) Point {
	return Point{X: clampAxis(p.X, w), Y: clampAxis(p.Y, h)}
}

func clampAxis(v, n int) int {
	if v < 0 || n <= 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Rect is a normalized selection rectangle: top-left corner plus non-negative size.
type Rect struct {
	X, Y int
	W, H int
}

// RectFromPoints normalizes the rectangle spanned by anchor and current.
func RectFromPoints(anchor, current Point) Rect {
	r := Rect{X: anchor.X, Y: anchor.Y, W: current.X - anchor.X, H: current.Y - anchor.Y}
	if r.W < 0 {
		r.X, r.W = current.X, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = current.Y, -r.H
	}
	return r
}

// Empty reports whether the rectangle has zero width or height.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Rectangle converts r to the image package representation.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Within reports whether r lies fully inside a w x h surface anchored at the origin.
func (r Rect) Within(w, h int) bool {
	if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
		return false
	}
	return r.X+r.W <= w && r.Y+r.H <= h
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%d y:%d w:%d h:%d}", r.X, r.Y, r.W, r.H)
}
