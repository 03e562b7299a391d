package vision

import "image"

// pixelsMatch reports whether two pixels agree within the tolerance, which
// is the allowed average per-channel delta as a fraction of full scale. A
// tolerance of 0 demands exact equality; 0.1 allows roughly a 10% shade
// drift before a pixel counts as changed. Alpha is ignored: capture
// backends disagree about it and it carries no visible state.
func pixelsMatch(a, b *image.RGBA, ax, ay, bx, by int, tolerance float64) bool {
	ca := a.RGBAAt(ax, ay)
	cb := b.RGBAAt(bx, by)
	dr := int(ca.R) - int(cb.R)
	if dr < 0 {
		dr = -dr
	}
	dg := int(ca.G) - int(cb.G)
	if dg < 0 {
		dg = -dg
	}
	db := int(ca.B) - int(cb.B)
	if db < 0 {
		db = -db
	}
	return float64(dr+dg+db) <= tolerance*3*255
}

// Similarity returns the fraction of pixels on which the two frames agree
// within the tolerance. Frames of different sizes share nothing and score 0.
func Similarity(a, b *image.RGBA, tolerance float64) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0
	}
	w, h := ab.Dx(), ab.Dy()
	if w == 0 || h == 0 {
		return 1
	}
	matched := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pixelsMatch(a, b, ab.Min.X+x, ab.Min.Y+y, bb.Min.X+x, bb.Min.Y+y, tolerance) {
				matched++
			}
		}
	}
	return float64(matched) / float64(w*h)
}

// DiffRatio is the complement of Similarity: the fraction of pixels that
// changed beyond the tolerance. The verification engine calls two frames
// "the same" when this stays at or below its configured ratio.
func DiffRatio(a, b *image.RGBA, tolerance float64) float64 {
	return 1 - Similarity(a, b, tolerance)
}

// FindBitmap scans the haystack row-major for the first window whose
// per-pixel similarity to the needle reaches the floor, returning the
// window's top-left offset, its score, and whether anything qualified. When
// nothing reaches the floor the returned offset and score describe the best
// window seen, for diagnostics. Each window scan aborts as soon as the floor
// is out of reach, which keeps the common miss cheap.
func FindBitmap(haystack, needle *image.RGBA, tolerance, floor float64) (image.Point, float64, bool) {
	hb, nb := haystack.Bounds(), needle.Bounds()
	hw, hh := hb.Dx(), hb.Dy()
	nw, nh := nb.Dx(), nb.Dy()
	if nw == 0 || nh == 0 || nw > hw || nh > hh {
		return image.Point{}, 0, false
	}

	total := nw * nh
	budget := int(float64(total) * (1 - floor))

	best := image.Point{}
	bestScore := -1.0
	for y := 0; y+nh <= hh; y++ {
		for x := 0; x+nw <= hw; x++ {
			mismatches := 0
			for ty := 0; ty < nh && mismatches <= budget; ty++ {
				for tx := 0; tx < nw; tx++ {
					if !pixelsMatch(haystack, needle, hb.Min.X+x+tx, hb.Min.Y+y+ty, nb.Min.X+tx, nb.Min.Y+ty, tolerance) {
						mismatches++
						if mismatches > budget {
							break
						}
					}
				}
			}
			score := 1 - float64(mismatches)/float64(total)
			if mismatches <= budget {
				return image.Point{X: x, Y: y}, score, true
			}
			if score > bestScore {
				bestScore = score
				best = image.Point{X: x, Y: y}
			}
		}
	}
	return best, bestScore, false
}
