package geometry

import (
	"fmt"
	"image"
)

// Point is an exact interaction target on a display, in scaled units.
// Construction validates against the display extent; there is no way to
// hold a Point that lies off-screen. Points are immutable values; Shift
// returns a new validated Point rather than mutating in place.
type Point struct {
	X Coordinate
	Y Coordinate
}

// NewPoint builds a Point from scaled-unit axis values. Negative inputs
// clamp to the origin; inputs at or beyond the display extent fail with a
// *BoundsError, because a click there would land on nothing.
func NewPoint(d Display, x, y float64) (Point, error) {
	cx := NewCoordinate(x)
	cy := NewCoordinate(y)
	if cx.Float() >= d.Width || cy.Float() >= d.Height {
		return Point{}, NewBoundsError(cx.Float(), cy.Float(), d)
	}
	return Point{X: cx, Y: cy}, nil
}

// PointFromPhysical builds a Point from raw physical pixel values, converting
// through the display's scale factor before validating.
func PointFromPhysical(d Display, rawX, rawY float64) (Point, error) {
	return NewPoint(d, CoordinateFromPhysical(rawX, d).Float(), CoordinateFromPhysical(rawY, d).Float())
}

// Shift returns a new Point displaced by (dx, dy) scaled units. A shift
// below zero clamps to the origin; a shift beyond the display extent fails
// with a *BoundsError marked as shifted.
func (p Point) Shift(d Display, dx, dy float64) (Point, error) {
	nx := p.X.Float() + dx
	ny := p.Y.Float() + dy
	shifted, err := NewPoint(d, nx, ny)
	if err != nil {
		return Point{}, &BoundsError{X: nx, Y: ny, Width: d.Width, Height: d.Height, Shifted: true}
	}
	return shifted, nil
}

// Physical returns the point in physical pixels on d, rounded to the
// nearest pixel, the form input injectors and capture frames use.
func (p Point) Physical(d Display) image.Point {
	return image.Point{X: p.X.Physical(d), Y: p.Y.Physical(d)}
}

// String renders the point for logs.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X.Float(), p.Y.Float())
}

// Anchor names which corner (or the center) of a rectangle a Point stands
// for when deriving a region from it.
type Anchor string

const (
	AnchorTopLeft     Anchor = "top_left"
	AnchorTopRight    Anchor = "top_right"
	AnchorBottomLeft  Anchor = "bottom_left"
	AnchorBottomRight Anchor = "bottom_right"
	AnchorCenter      Anchor = "center"
)

// AnchorRect derives a Rect from the point, treating the point as the given
// anchor. It never fails: each side is truncated to the distance from the
// anchor to the relevant screen edge, so the result is always fully
// on-screen. For AnchorCenter the width and height are truncated to the
// nearer edge on both axes before halving, keeping the point centered.
func (p Point) AnchorRect(d Display, width, height float64, anchor Anchor) Rect {
	x := p.X.Float()
	y := p.Y.Float()

	var rx, ry, rw, rh float64
	switch anchor {
	case AnchorTopRight:
		rw = min(width, x)
		rh = min(height, d.Height-y)
		rx, ry = x-rw, y
	case AnchorBottomLeft:
		rw = min(width, d.Width-x)
		rh = min(height, y)
		rx, ry = x, y-rh
	case AnchorBottomRight:
		rw = min(width, x)
		rh = min(height, y)
		rx, ry = x-rw, y-rh
	case AnchorCenter:
		rw = min(width, min(x, d.Width-x))
		rh = min(height, min(y, d.Height-y))
		rx, ry = x-rw/2, y-rh/2
	default: // AnchorTopLeft
		rw = min(width, d.Width-x)
		rh = min(height, d.Height-y)
		rx, ry = x, y
	}
	return NewRect(d, rx, ry, rw, rh)
}
