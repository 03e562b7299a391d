package motion

import (
	"math"
	"math/rand"
)

// PinkNoise generates 1/f noise with the stochastic Voss-McCartney
// algorithm. Human motor pacing shows the long-range correlations of pink
// noise rather than the flat spectrum of white noise, so wheel tick and
// pause scheduling draws from this generator.
type PinkNoise struct {
	rng    *rand.Rand
	values []float64
	p      []float64
	pink   float64
	n      int
	scale  float64
}

// NewPinkNoise creates a generator with n white noise sources. Values of
// n outside (0, 32] fall back to the conventional 12.
func NewPinkNoise(rng *rand.Rand, n int) *PinkNoise {
	if n <= 0 || n > 32 {
		n = 12
	}
	g := &PinkNoise{
		rng:    rng,
		values: make([]float64, n),
		p:      make([]float64, n),
		n:      n,
		scale:  1.0 / math.Sqrt(float64(n)),
	}

	// Each source updates half as often as the previous one.
	totalP := 0.0
	for i := 0; i < n; i++ {
		g.p[i] = math.Pow(2, float64(-i))
		totalP += g.p[i]
	}
	for i := 0; i < n; i++ {
		g.p[i] /= totalP
	}

	for i := 0; i < n; i++ {
		g.values[i] = g.nextWhite()
		g.pink += g.values[i]
	}

	return g
}

func (g *PinkNoise) nextWhite() float64 {
	return g.rng.Float64()*2.0 - 1.0
}

// Next returns the next sample, roughly within [-1, 1] after scaling.
func (g *PinkNoise) Next() float64 {
	r := g.rng.Float64()
	cumulative := 0.0
	updateIndex := g.n - 1
	for i := 0; i < g.n; i++ {
		cumulative += g.p[i]
		if r < cumulative {
			updateIndex = i
			break
		}
	}

	old := g.values[updateIndex]
	next := g.nextWhite()
	g.values[updateIndex] = next
	g.pink += next - old

	return g.pink * g.scale
}
