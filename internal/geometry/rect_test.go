package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRectTruncatesToDisplay(t *testing.T) {
	t.Parallel()

	d := testDisplay()

	t.Run("interior rect is untouched", func(t *testing.T) {
		t.Parallel()
		r := NewRect(d, 100, 200, 300, 400)
		assert.InDelta(t, 100, r.Origin.X.Float(), 1e-9)
		assert.InDelta(t, 200, r.Origin.Y.Float(), 1e-9)
		assert.InDelta(t, 300, r.Width, 1e-9)
		assert.InDelta(t, 400, r.Height, 1e-9)
	})

	t.Run("size truncates at the far edge", func(t *testing.T) {
		t.Parallel()
		r := NewRect(d, 1800, 1000, 500, 500)
		assert.InDelta(t, 120, r.Width, 1e-9)
		assert.InDelta(t, 80, r.Height, 1e-9)
	})

	t.Run("negative origin clamps to zero", func(t *testing.T) {
		t.Parallel()
		r := NewRect(d, -10, -10, 100, 100)
		assert.Equal(t, Coordinate(0), r.Origin.X)
		assert.Equal(t, Coordinate(0), r.Origin.Y)
	})

	t.Run("origin past the far edge yields an empty rect", func(t *testing.T) {
		t.Parallel()
		r := NewRect(d, 3000, 3000, 100, 100)
		assert.True(t, r.Empty())
	})
}

func TestDisplayBoundsCoversWholeScreen(t *testing.T) {
	t.Parallel()

	d := NewDisplay(2880, 1800, 2.0)
	r := d.Bounds()
	assert.InDelta(t, 1440, r.Width, 1e-9)
	assert.InDelta(t, 900, r.Height, 1e-9)
	assert.Equal(t, image.Rect(0, 0, 2880, 1800), r.Physical(d))
}

func TestRectPhysicalRoundTrip(t *testing.T) {
	t.Parallel()

	for _, scale := range []float64{1.0, 2.0} {
		d := NewDisplay(1920, 1080, scale)
		r := NewRect(d, 50, 60, 200, 100)

		phys := r.Physical(d)
		assert.Equal(t, int(50*scale), phys.Min.X, "scale %g", scale)
		assert.Equal(t, int(60*scale), phys.Min.Y, "scale %g", scale)
		assert.Equal(t, int(200*scale), phys.Dx(), "scale %g", scale)
		assert.Equal(t, int(100*scale), phys.Dy(), "scale %g", scale)

		back := RectFromPhysical(d, phys)
		assert.InDelta(t, 50, back.Origin.X.Float(), 1e-9, "scale %g", scale)
		assert.InDelta(t, 200, back.Width, 1e-9, "scale %g", scale)
	}
}

func TestRectCenter(t *testing.T) {
	t.Parallel()

	d := testDisplay()
	r := NewRect(d, 100, 100, 200, 50)
	c := r.Center()
	assert.InDelta(t, 200, c.X.Float(), 1e-9)
	assert.InDelta(t, 125, c.Y.Float(), 1e-9)

	require.False(t, r.Empty())
}
