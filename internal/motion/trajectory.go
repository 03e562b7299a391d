package motion

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// easeInOutCubic is the pacing profile for movement: slow start, fast
// middle, slow arrival.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// fittsDuration derives a movement time for the given distance from
// Fitts's law, with per-move jitter so repeated moves never take exactly
// as long. Caller holds the lock.
func (m *Mover) fittsDuration(distance float64) time.Duration {
	// Assumed target width for the index of difficulty.
	const targetWidth = 30.0
	id := math.Log2(1.0 + distance/targetWidth)

	a := m.dynamicConfig.FittsA
	b := m.dynamicConfig.FittsB

	mt := a + b*id
	mt += mt * (m.rng.Float64()*0.3 - 0.15) // +/- 15%

	return time.Duration(mt) * time.Millisecond
}

// generateIdealPath builds a cubic Bezier trajectory from start to end.
// The control points sit a third and two thirds of the way along, pushed
// off the straight line by a random perpendicular fraction of the
// distance, which gives each move its own gentle arc. Caller holds the
// lock.
func (m *Mover) generateIdealPath(start, end Vector2D, numSteps int) []Vector2D {
	p0, p3 := start, end
	mainVec := end.Sub(start)
	dist := mainVec.Mag()

	if dist < 1.0 || numSteps <= 1 {
		return []Vector2D{end}
	}

	mainDir := mainVec.Normalize()
	perp := mainVec.Perp()

	bend1 := (m.rng.Float64() - 0.5) * 0.2
	bend2 := (m.rng.Float64() - 0.5) * 0.2

	p1 := start.Add(mainDir.Mul(dist / 3.0)).Add(perp.Mul(dist * bend1))
	p2 := start.Add(mainDir.Mul(dist * 2.0 / 3.0)).Add(perp.Mul(dist * bend2))

	path := make([]Vector2D, numSteps)
	for i := 0; i < numSteps; i++ {
		t := float64(i) / float64(numSteps-1)
		omt := 1.0 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t

		path[i] = p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
	}

	return path
}

// simulateTrajectory walks the cursor along a generated path, pacing
// steps against the eased Fitts schedule and layering Perlin drift plus
// Gaussian tremor on every intermediate position. Caller holds the lock.
func (m *Mover) simulateTrajectory(ctx context.Context, start, end Vector2D) error {
	dist := start.Dist(end)
	duration := m.fittsDuration(dist)

	// Step density scales with duration so long moves stay smooth.
	numSteps := int(duration.Seconds() * 100)
	if numSteps < 2 {
		numSteps = 2
	}

	path := m.generateIdealPath(start, end, numSteps)

	m.logger.Debug("synthesizing cursor trajectory",
		zap.Float64("distance", dist),
		zap.Duration("duration", duration),
		zap.Int("steps", len(path)))

	perlinMagnitude := m.dynamicConfig.PerlinAmplitude
	const perlinFrequency = 0.8

	startTime := time.Now()
	for i := 0; i < len(path); i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Sleep until this step's slot in the eased schedule.
		t := float64(i) / float64(len(path)-1)
		stepTime := startTime.Add(time.Duration(easeInOutCubic(t) * float64(duration)))
		if wait := time.Until(stepTime); wait > 0 {
			if err := m.injector.Sleep(ctx, wait); err != nil {
				return err
			}
		}

		elapsed := time.Since(startTime).Seconds()
		drift := Vector2D{
			X: m.noiseX.Noise1D(elapsed*perlinFrequency) * perlinMagnitude,
			Y: m.noiseY.Noise1D(elapsed*perlinFrequency) * perlinMagnitude,
		}
		perturbed := m.applyGaussianNoise(path[i].Add(drift))

		if err := m.dispatchMove(ctx, perturbed); err != nil {
			return err
		}

		if err := m.injector.Sleep(ctx, time.Duration(2+m.rng.Intn(4))*time.Millisecond); err != nil {
			return err
		}
	}

	return nil
}
