package geometry

import "fmt"

// BoundsError is a specific, typed error for a point or region computation
// that would leave the display (or a captured frame). It carries the
// offending location and the extent that was exceeded so callers can log
// exactly how far off-screen it was.
type BoundsError struct {
	X, Y          float64
	Width, Height float64
	// Shifted marks errors produced by shifting an existing valid point,
	// as opposed to constructing one from raw input.
	Shifted bool
}

// Error implements the error interface by formatting the message on the fly.
func (e *BoundsError) Error() string {
	if e.Shifted {
		return fmt.Sprintf("shifted screen coordinates (%g, %g) are out of bounds: screen width: %g, screen height: %g",
			e.X, e.Y, e.Width, e.Height)
	}
	return fmt.Sprintf("screen coordinate out of bounds: x: %g, y: %g, screen width: %g, screen height: %g",
		e.X, e.Y, e.Width, e.Height)
}

// NewBoundsError creates a new BoundsError for the given location on d.
func NewBoundsError(x, y float64, d Display) *BoundsError {
	return &BoundsError{X: x, Y: y, Width: d.Width, Height: d.Height}
}
