package vision

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillFrame returns a w*h frame painted a single color.
func fillFrame(w, h int, c color.RGBA) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return out
}

// patternFrame returns a w*h frame with a deterministic high-contrast
// pattern, unique enough that correlation peaks only at exact alignment.
func patternFrame(w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: uint8((x*37 + y*71) % 256),
				G: uint8((x*13 + y*101) % 256),
				B: uint8((x*89 + y*7) % 256),
				A: 255,
			})
		}
	}
	return out
}

// plant draws the needle into the haystack at (x, y).
func plant(haystack, needle *image.RGBA, x, y int) {
	r := image.Rect(x, y, x+needle.Bounds().Dx(), y+needle.Bounds().Dy())
	draw.Draw(haystack, r, needle, needle.Bounds().Min, draw.Src)
}

func TestMatchTemplateFindsPlantedNeedle(t *testing.T) {
	t.Parallel()

	haystack := fillFrame(200, 120, color.RGBA{R: 30, G: 30, B: 30, A: 255})
	needle := patternFrame(20, 20)
	plant(haystack, needle, 50, 50)

	loc, score, err := MatchTemplate(haystack, needle)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(50, 50), loc)
	assert.InDelta(t, 1.0, score, 0.01, "an exact plant must score a near-perfect correlation")
}

func TestMatchTemplateNeedleTooLarge(t *testing.T) {
	t.Parallel()

	haystack := fillFrame(10, 10, color.RGBA{A: 255})
	needle := patternFrame(20, 20)

	_, _, err := MatchTemplate(haystack, needle)
	require.ErrorIs(t, err, ErrNeedleTooLarge)
}

func TestMatchTemplateFlatFrameScoresZero(t *testing.T) {
	t.Parallel()

	// A featureless haystack has no contrast anywhere, so no window may
	// claim correlation with a real pattern.
	haystack := fillFrame(100, 100, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	needle := patternFrame(16, 16)

	_, score, err := MatchTemplate(haystack, needle)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 0.01)
}

func TestMatchTemplatePrefersExactAlignment(t *testing.T) {
	t.Parallel()

	// Plant into a patterned background: the correlation peak must still
	// land exactly on the plant, not on a partially overlapping window.
	haystack := patternFrame(160, 90)
	needle := patternFrame(24, 18)
	// Invert the needle's channels so it cannot alias the background.
	nb := needle.Bounds()
	for y := nb.Min.Y; y < nb.Max.Y; y++ {
		for x := nb.Min.X; x < nb.Max.X; x++ {
			c := needle.RGBAAt(x, y)
			needle.SetRGBA(x, y, color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: 255})
		}
	}
	plant(haystack, needle, 101, 33)

	loc, score, err := MatchTemplate(haystack, needle)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(101, 33), loc)
	assert.Greater(t, score, 0.99)
}
