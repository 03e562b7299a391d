package vision

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Rescale resamples the frame by the given factor. Factors at or near 1.0
// return the input untouched; anything else goes through Catmull-Rom
// interpolation, which holds up well in both directions for the small UI
// templates this package matches.
func Rescale(src *image.RGBA, factor float64) *image.RGBA {
	if factor <= 0 {
		return src
	}
	b := src.Bounds()
	dw := int(float64(b.Dx())*factor + 0.5)
	dh := int(float64(b.Dy())*factor + 0.5)
	if dw == b.Dx() && dh == b.Dy() {
		return src
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
