package motion

import (
	"image"
	"math"
)

// Vector2D is a point or displacement on the physical desktop, in pixels.
// Trajectory synthesis works in float space and only rounds when an event
// is dispatched.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns `v + other`.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns `v - other`.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns `v * scalar`.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{X: v.X * scalar, Y: v.Y * scalar}
}

// MagSq returns the squared magnitude, cheaper than Mag for comparisons.
func (v Vector2D) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Mag returns the Euclidean length of the vector.
func (v Vector2D) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in v's direction, or the zero vector
// when v is too small to have one.
func (v Vector2D) Normalize() Vector2D {
	mag := v.Mag()
	if mag < 1e-9 {
		return Vector2D{}
	}
	return v.Mul(1.0 / mag)
}

// Perp returns the unit vector perpendicular to v, rotated counter
// clockwise. Used to push curve control points off the straight line.
func (v Vector2D) Perp() Vector2D {
	n := v.Normalize()
	return Vector2D{X: -n.Y, Y: n.X}
}

// Dist returns the Euclidean distance between the points v and other.
func (v Vector2D) Dist(other Vector2D) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// Clamp returns v limited to the given physical bounds, inclusive of Min
// and exclusive of Max, matching image.Rectangle conventions.
func (v Vector2D) Clamp(bounds image.Rectangle) Vector2D {
	x := math.Max(float64(bounds.Min.X), math.Min(float64(bounds.Max.X-1), v.X))
	y := math.Max(float64(bounds.Min.Y), math.Min(float64(bounds.Max.Y-1), v.Y))
	return Vector2D{X: x, Y: y}
}

// Round returns the nearest integer pixel.
func (v Vector2D) Round() image.Point {
	return image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}
