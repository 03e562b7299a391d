// Package geometry models screen-bound locations and regions in a single
// canonical unit: logical (scaled) pixels. Every constructor takes the
// Display it is bound to, so the package has no global screen state and
// tests can run against any synthetic display.
//
// Points are strict: a point that would land outside the display is a
// construction error, because points denote exact interaction targets.
// Rectangles are lenient: they truncate themselves to the display edge,
// because they denote watched regions where a smaller region is still safe.
package geometry

import "image"

// Display describes the screen the driver operates on. Width and Height are
// the extent in scaled units; Scale is the device scale factor relating
// scaled units to physical pixels (physical = scaled * Scale).
type Display struct {
	// Width is the horizontal extent in scaled units.
	Width float64
	// Height is the vertical extent in scaled units.
	Height float64
	// Scale is the device scale factor. A display reporting physical pixels
	// equal to logical pixels has Scale 1.0.
	Scale float64
}

// NewDisplay builds a Display from a physical pixel extent and a scale
// factor. Non-positive scale factors are treated as 1.0 so a misreported
// display never produces infinite logical extents.
func NewDisplay(physicalWidth, physicalHeight int, scale float64) Display {
	if scale <= 0 {
		scale = 1.0
	}
	return Display{
		Width:  float64(physicalWidth) / scale,
		Height: float64(physicalHeight) / scale,
		Scale:  scale,
	}
}

// PhysicalWidth returns the horizontal extent in physical pixels.
func (d Display) PhysicalWidth() int {
	return int(d.Width * d.Scale)
}

// PhysicalHeight returns the vertical extent in physical pixels.
func (d Display) PhysicalHeight() int {
	return int(d.Height * d.Scale)
}

// PhysicalBounds returns the full display extent as a physical pixel
// rectangle, the shape capture frames arrive in.
func (d Display) PhysicalBounds() image.Rectangle {
	return image.Rect(0, 0, d.PhysicalWidth(), d.PhysicalHeight())
}

// Bounds returns the full display extent as a Rect in scaled units.
func (d Display) Bounds() Rect {
	return Rect{Origin: Point{}, Width: d.Width, Height: d.Height}
}
