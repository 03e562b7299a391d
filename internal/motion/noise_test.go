package motion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPinkNoise(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	t.Run("standard initialization", func(t *testing.T) {
		g := NewPinkNoise(rng, 12)
		assert.Equal(t, 12, g.n)

		totalP := 0.0
		for _, p := range g.p {
			totalP += p
		}
		assert.InDelta(t, 1.0, totalP, 1e-9)

		sum := 0.0
		for _, v := range g.values {
			sum += v
		}
		assert.Equal(t, sum, g.pink)
	})

	t.Run("invalid n falls back", func(t *testing.T) {
		assert.Equal(t, 12, NewPinkNoise(rng, 0).n)
		assert.Equal(t, 12, NewPinkNoise(rng, 64).n)
	})
}

func TestPinkNoiseNext(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	g := NewPinkNoise(rng, 8)

	values := make([]float64, 200)
	for i := range values {
		values[i] = g.Next()
		// Statistically implausible to exceed +/- 3 after scaling.
		assert.Less(t, values[i], 3.0)
		assert.Greater(t, values[i], -3.0)
	}

	assert.NotEqual(t, values[0], values[1])

	// Pink noise changes by one source per sample, so consecutive values
	// stay correlated instead of jumping like white noise.
	maxStep := 0.0
	for i := 1; i < len(values); i++ {
		step := values[i] - values[i-1]
		if step < 0 {
			step = -step
		}
		if step > maxStep {
			maxStep = step
		}
	}
	assert.Less(t, maxStep, 1.0)
}
