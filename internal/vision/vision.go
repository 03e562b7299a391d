// Package vision implements the pure-Go pixel primitives the driver matches
// and verifies with: normalized cross-correlation template search, tolerant
// pixel-equality scanning, frame diffing, cropping and rescaling. Everything
// operates on *image.RGBA frames in physical pixels; callers convert results
// into scaled units through the geometry package.
package vision

import (
	"image"
	"image/draw"
)

// ToRGBA returns img as an *image.RGBA, copying only when the underlying
// type or origin requires it. Frames produced by this package always have
// their bounds anchored at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == image.Pt(0, 0) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Clone returns an independent copy of the frame.
func Clone(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// grayscale flattens the frame into row-major luminance values using the
// Rec. 601 weights, the form the correlation kernel works in.
func grayscale(img *image.RGBA) ([]float64, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			out[y*w+x] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		}
	}
	return out, w, h
}
