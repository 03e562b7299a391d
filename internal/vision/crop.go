package vision

import (
	"image"
	"image/draw"

	"github.com/xkilldash9x/deskpilot/internal/geometry"
)

// Crop copies the given physical-pixel region out of the frame. A region
// reaching outside the frame fails with a *geometry.BoundsError rather than
// silently shrinking: by the time a region reaches a frame it has already
// been truncated to the display, so a mismatch here means the frame and the
// display disagree and any comparison against it would be meaningless.
func Crop(src *image.RGBA, region image.Rectangle) (*image.RGBA, error) {
	if !region.In(src.Bounds()) {
		return nil, &geometry.BoundsError{
			X:      float64(region.Max.X),
			Y:      float64(region.Max.Y),
			Width:  float64(src.Bounds().Dx()),
			Height: float64(src.Bounds().Dy()),
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(out, out.Bounds(), src, region.Min, draw.Src)
	return out, nil
}
