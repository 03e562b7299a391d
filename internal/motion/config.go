package motion

import (
	"math"
	"math/rand"
)

// Profile selects how the cursor travels.
type Profile string

const (
	// ProfileHuman synthesizes curved, noise-perturbed trajectories with
	// Fitts's law pacing.
	ProfileHuman Profile = "human"
	// ProfileDirect warps the cursor in a single move event. Faster and
	// fully deterministic, at the cost of looking synthetic.
	ProfileDirect Profile = "direct"
)

// ParseProfile maps a config string onto a Profile, defaulting to human.
func ParseProfile(s string) Profile {
	if Profile(s) == ProfileDirect {
		return ProfileDirect
	}
	return ProfileHuman
}

// Config holds the population-level parameters of the simulated operator.
// The Mean/StdDev pairs describe a population; FinalizeSessionPersona
// samples one individual from it so a session keeps consistent quirks.
type Config struct {
	Profile Profile
	Rng     *rand.Rand

	// Fitts's law parameters, milliseconds. Movement time for distance D
	// against target width W is A + B*log2(1 + D/W).
	FittsAMean, FittsAStdDev float64
	FittsBMean, FittsBStdDev float64

	// Noise and tremor.
	GaussianStrengthMean, GaussianStrengthStdDev float64
	PerlinAmplitudeMean, PerlinAmplitudeStdDev   float64

	// Button press-to-release hold, sampled uniformly per click.
	PressHoldMinMs, PressHoldMaxMs int

	// Wheel pacing: ticks are grouped in bursts of at most WheelBurstMax
	// with pink-noise scheduled pauses between bursts.
	WheelBurstMax                    int
	WheelPauseMinMs, WheelPauseMaxMs int

	// Fatigue modeling.
	FatigueIncreaseRate float64
	FatigueRecoveryRate float64

	// Per-session instance parameters, filled by FinalizeSessionPersona.
	FittsA, FittsB   float64
	GaussianStrength float64
	PerlinAmplitude  float64
}

// DefaultConfig returns parameters for an average operator.
func DefaultConfig() Config {
	return Config{
		Profile:                ProfileHuman,
		FittsAMean:             100.0,
		FittsAStdDev:           15.0,
		FittsBMean:             120.0,
		FittsBStdDev:           20.0,
		GaussianStrengthMean:   0.5,
		GaussianStrengthStdDev: 0.1,
		PerlinAmplitudeMean:    2.5,
		PerlinAmplitudeStdDev:  0.5,
		PressHoldMinMs:         50,
		PressHoldMaxMs:         120,
		WheelBurstMax:          3,
		WheelPauseMinMs:        30,
		WheelPauseMaxMs:        120,
		FatigueIncreaseRate:    0.005,
		FatigueRecoveryRate:    0.01,
	}
}

// FinalizeSessionPersona samples the fixed per-session parameters from
// the population distributions and clamps them to sane bounds.
func (c *Config) FinalizeSessionPersona(rng *rand.Rand) {
	c.Rng = rng
	c.FittsA = sampleGaussian(rng, c.FittsAMean, c.FittsAStdDev)
	c.FittsB = sampleGaussian(rng, c.FittsBMean, c.FittsBStdDev)
	c.GaussianStrength = sampleGaussian(rng, c.GaussianStrengthMean, c.GaussianStrengthStdDev)
	c.PerlinAmplitude = sampleGaussian(rng, c.PerlinAmplitudeMean, c.PerlinAmplitudeStdDev)

	c.FittsA = math.Max(0.0, c.FittsA)
	c.FittsB = math.Max(10.0, c.FittsB)
	c.GaussianStrength = math.Max(0.0, c.GaussianStrength)
	c.PerlinAmplitude = math.Max(0.0, c.PerlinAmplitude)

	if c.PressHoldMaxMs <= c.PressHoldMinMs {
		c.PressHoldMaxMs = c.PressHoldMinMs + 1
	}
	if c.WheelBurstMax <= 0 {
		c.WheelBurstMax = 1
	}
	if c.WheelPauseMaxMs <= c.WheelPauseMinMs {
		c.WheelPauseMaxMs = c.WheelPauseMinMs + 1
	}
}

// sampleGaussian draws one value from N(mean, stdDev), or the mean when
// no rng is available.
func sampleGaussian(rng *rand.Rand, mean, stdDev float64) float64 {
	if rng == nil {
		return mean
	}
	return mean + rng.NormFloat64()*stdDev
}
