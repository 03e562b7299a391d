package vision

import (
	"errors"
	"image"
	"math"
)

// ErrNeedleTooLarge is returned when the template does not fit inside the
// searched frame at even one position.
var ErrNeedleTooLarge = errors.New("needle is larger than the searched frame")

// MatchTemplate slides the needle over every position of the haystack and
// scores each window with zero-mean normalized cross-correlation on
// luminance. It returns the top-left offset of the best-scoring window
// (relative to the haystack) and its score in [-1, 1]. The caller is
// responsible for converting the top-left offset into a centroid; windows
// with no contrast score zero so a flat frame can never outrank a real
// match.
func MatchTemplate(haystack, needle *image.RGBA) (image.Point, float64, error) {
	hay, hw, hh := grayscale(haystack)
	tpl, nw, nh := grayscale(needle)
	if nw > hw || nh > hh || nw == 0 || nh == 0 {
		return image.Point{}, 0, ErrNeedleTooLarge
	}

	n := float64(nw * nh)
	var tplSum float64
	for _, v := range tpl {
		tplSum += v
	}
	tplMean := tplSum / n
	var tplNormSq float64
	for i, v := range tpl {
		tpl[i] = v - tplMean
		tplNormSq += tpl[i] * tpl[i]
	}

	// Integral images over the haystack give each window's sum and sum of
	// squares in constant time, leaving only the cross term per window.
	sum, sumSq := integrals(hay, hw, hh)

	best := image.Point{}
	bestScore := math.Inf(-1)
	for y := 0; y+nh <= hh; y++ {
		for x := 0; x+nw <= hw; x++ {
			winSum := rectSum(sum, hw, x, y, nw, nh)
			winSumSq := rectSum(sumSq, hw, x, y, nw, nh)
			winVar := winSumSq - winSum*winSum/n

			var cross float64
			for ty := 0; ty < nh; ty++ {
				row := (y+ty)*hw + x
				trow := ty * nw
				for tx := 0; tx < nw; tx++ {
					cross += hay[row+tx] * tpl[trow+tx]
				}
			}
			// tpl is already zero-mean, so the numerator needs no winSum
			// correction term.
			num := cross
			den := math.Sqrt(tplNormSq * winVar)

			var score float64
			if den > 1e-9 {
				score = num / den
			}
			if score > bestScore {
				bestScore = score
				best = image.Point{X: x, Y: y}
			}
		}
	}
	if math.IsInf(bestScore, -1) {
		bestScore = 0
	}
	return best, bestScore, nil
}

// integrals builds summed-area tables of the values and their squares, each
// sized (w+1)*(h+1) with a zero border row and column.
func integrals(vals []float64, w, h int) (sum, sumSq []float64) {
	stride := w + 1
	sum = make([]float64, stride*(h+1))
	sumSq = make([]float64, stride*(h+1))
	for y := 1; y <= h; y++ {
		var rowSum, rowSumSq float64
		for x := 1; x <= w; x++ {
			v := vals[(y-1)*w+(x-1)]
			rowSum += v
			rowSumSq += v * v
			sum[y*stride+x] = sum[(y-1)*stride+x] + rowSum
			sumSq[y*stride+x] = sumSq[(y-1)*stride+x] + rowSumSq
		}
	}
	return sum, sumSq
}

// rectSum reads the total of a w*h window at (x, y) out of a summed-area
// table built by integrals.
func rectSum(table []float64, imgW, x, y, w, h int) float64 {
	stride := imgW + 1
	x1, y1 := x+w, y+h
	return table[y1*stride+x1] - table[y*stride+x1] - table[y1*stride+x] + table[y*stride+x]
}
