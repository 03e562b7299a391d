package geometry

import (
	"fmt"
	"image"
)

// Rect is a watched region on a display: an origin Point plus a size, in
// scaled units. Unlike points, rectangles never fail construction — a
// region reaching past the display edge is truncated to it, because a
// smaller watch region is still a safe one.
type Rect struct {
	Origin Point
	Width  float64
	Height float64
}

// NewRect builds a Rect at (x, y) with the requested size. The origin is
// clamped into the display and the size truncated so origin+size never
// exceeds the display extent. An origin at or past the far edge yields an
// empty rectangle rather than an error.
func NewRect(d Display, x, y, width, height float64) Rect {
	x = clampAxis(x, d.Width)
	y = clampAxis(y, d.Height)
	width = min(width, d.Width-x)
	height = min(height, d.Height-y)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rect{
		Origin: Point{X: Coordinate(x), Y: Coordinate(y)},
		Width:  width,
		Height: height,
	}
}

func clampAxis(v, extent float64) float64 {
	if v <= 0 {
		return 0
	}
	if v > extent {
		return extent
	}
	return v
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rectangle. The value is built
// directly: a rect is always on-screen, so its midpoint is too.
func (r Rect) Center() Point {
	return Point{
		X: Coordinate(r.Origin.X.Float() + r.Width/2),
		Y: Coordinate(r.Origin.Y.Float() + r.Height/2),
	}
}

// Physical converts the rectangle into physical pixel bounds on d, the
// form used to crop capture frames. Edges round to the nearest pixel.
func (r Rect) Physical(d Display) image.Rectangle {
	x0 := r.Origin.X.Physical(d)
	y0 := r.Origin.Y.Physical(d)
	x1 := int((r.Origin.X.Float()+r.Width)*d.Scale + 0.5)
	y1 := int((r.Origin.Y.Float()+r.Height)*d.Scale + 0.5)
	return image.Rect(x0, y0, x1, y1)
}

// RectFromPhysical converts physical pixel bounds back into a scaled-unit
// Rect on d, truncating to the display as usual.
func RectFromPhysical(d Display, bounds image.Rectangle) Rect {
	scale := d.Scale
	if scale <= 0 {
		scale = 1.0
	}
	return NewRect(d,
		float64(bounds.Min.X)/scale,
		float64(bounds.Min.Y)/scale,
		float64(bounds.Dx())/scale,
		float64(bounds.Dy())/scale,
	)
}

// String renders the rectangle for logs.
func (r Rect) String() string {
	return fmt.Sprintf("[%s %gx%g]", r.Origin, r.Width, r.Height)
}
