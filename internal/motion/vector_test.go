package motion

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	t.Parallel()

	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: 1, Y: -2}

	assert.Equal(t, Vector2D{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, Vector2D{X: 2, Y: 6}, a.Sub(b))
	assert.Equal(t, Vector2D{X: 6, Y: 8}, a.Mul(2))
	assert.InDelta(t, 5.0, a.Mag(), 1e-9)
	assert.InDelta(t, 25.0, a.MagSq(), 1e-9)
}

func TestVectorNormalize(t *testing.T) {
	t.Parallel()

	v := Vector2D{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)
	assert.InDelta(t, 1.0, v.Mag(), 1e-9)

	assert.Equal(t, Vector2D{}, Vector2D{}.Normalize())
}

func TestVectorPerp(t *testing.T) {
	t.Parallel()

	p := Vector2D{X: 1, Y: 0}.Perp()
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 1.0, p.Y, 1e-9)

	// Perpendicularity holds for arbitrary directions.
	v := Vector2D{X: 3, Y: -7}
	perp := v.Perp()
	dot := v.X*perp.X + v.Y*perp.Y
	assert.InDelta(t, 0.0, dot, 1e-9)
	assert.InDelta(t, 1.0, perp.Mag(), 1e-9)
}

func TestVectorDist(t *testing.T) {
	t.Parallel()

	a := Vector2D{X: 1, Y: 1}
	b := Vector2D{X: 4, Y: 5}
	assert.InDelta(t, 5.0, a.Dist(b), 1e-9)
}

func TestVectorClamp(t *testing.T) {
	t.Parallel()

	bounds := image.Rect(0, 0, 1920, 1080)

	tests := []struct {
		name string
		in   Vector2D
		want Vector2D
	}{
		{"inside untouched", Vector2D{X: 100, Y: 200}, Vector2D{X: 100, Y: 200}},
		{"negative clamps to origin", Vector2D{X: -5, Y: -3}, Vector2D{X: 0, Y: 0}},
		{"past edge clamps to last pixel", Vector2D{X: 5000, Y: 2000}, Vector2D{X: 1919, Y: 1079}},
		{"mixed axes", Vector2D{X: -1, Y: 500}, Vector2D{X: 0, Y: 500}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.Clamp(bounds))
		})
	}
}

func TestVectorRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, image.Point{X: 10, Y: 21}, Vector2D{X: 10.4, Y: 20.5}.Round())
	assert.Equal(t, image.Point{X: 0, Y: 0}, Vector2D{X: 0.49, Y: -0.49}.Round())
}
