package vision

import (
	"image"
	"image/color"
)

// outlineThickness is the border width drawn by OutlineRegion, in pixels.
const outlineThickness = 2

// OutlineRegion returns a copy of the frame with the region's border drawn
// in the given color, clipped to the frame. Debug artifacts use it to show
// where a check-zone or match landed on the captured screen.
func OutlineRegion(frame *image.RGBA, region image.Rectangle, c color.RGBA) *image.RGBA {
	out := Clone(frame)
	clipped := region.Intersect(out.Bounds())
	if clipped.Empty() {
		return out
	}
	for t := 0; t < outlineThickness; t++ {
		top := clipped.Min.Y + t
		bottom := clipped.Max.Y - 1 - t
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			if top < clipped.Max.Y {
				out.SetRGBA(x, top, c)
			}
			if bottom >= clipped.Min.Y && bottom != top {
				out.SetRGBA(x, bottom, c)
			}
		}
		left := clipped.Min.X + t
		right := clipped.Max.X - 1 - t
		for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
			if left < clipped.Max.X {
				out.SetRGBA(left, y, c)
			}
			if right >= clipped.Min.X && right != left {
				out.SetRGBA(right, y, c)
			}
		}
	}
	return out
}
