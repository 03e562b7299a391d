// Package motion synthesizes operator-like mouse activity on the physical
// desktop: curved point-to-point trajectories paced by Fitts's law,
// perturbed by Perlin drift and Gaussian tremor, plus button holds and
// wheel bursts with pink-noise scheduling. All events leave through the
// screen injector; this package owns no policy about what to interact
// with, only how the cursor gets there.
package motion

import (
	"context"
	"math/rand"
	"sync"
	"time"

	perlin "github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/screen"
)

// Mover tracks the simulated operator: cursor position, fatigue, and the
// per-session persona sampled from Config.
type Mover struct {
	// mu protects all mutable state below. Public methods acquire it;
	// unexported helpers assume the caller holds it.
	mu            sync.Mutex
	baseConfig    Config
	dynamicConfig Config
	display       geometry.Display
	injector      screen.Injector
	logger        *zap.Logger
	currentPos    Vector2D
	fatigueLevel  float64
	rng           *rand.Rand
	noiseX        *perlin.Perlin
	noiseY        *perlin.Perlin
	wheelNoise    *PinkNoise
}

// New creates a Mover for the given display, dispatching through injector.
// The cursor is assumed to start at the display center; the first absolute
// move corrects any difference. A nil logger disables logging.
func New(config Config, display geometry.Display, injector screen.Injector, logger *zap.Logger) *Mover {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Mover{
		display:  display,
		injector: injector,
		logger:   logger,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seed := time.Now().UnixNano()
	rng := config.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	config.FinalizeSessionPersona(rng)

	// Standard Perlin noise parameters.
	alpha, beta, n := 2.0, 2.0, int32(3)

	m.baseConfig = config
	m.dynamicConfig = config
	m.rng = rng
	m.noiseX = perlin.NewPerlin(alpha, beta, n, seed)
	m.noiseY = perlin.NewPerlin(alpha, beta, n, seed+1)
	m.wheelNoise = NewPinkNoise(rng, 12)
	m.currentPos = Vector2D{
		X: float64(display.PhysicalWidth()) / 2.0,
		Y: float64(display.PhysicalHeight()) / 2.0,
	}

	return m
}

// NewTestMover creates a Mover with a fixed seed and pinned persona
// parameters so trajectories are reproducible in tests.
func NewTestMover(display geometry.Display, injector screen.Injector, seed int64) *Mover {
	config := DefaultConfig()
	config.Rng = rand.New(rand.NewSource(seed))

	m := New(config, display, injector, zap.NewNop())

	m.mu.Lock()
	defer m.mu.Unlock()

	m.noiseX = perlin.NewPerlin(2, 2, 3, seed)
	m.noiseY = perlin.NewPerlin(2, 2, 3, seed+1)
	m.wheelNoise = NewPinkNoise(m.rng, 12)

	m.dynamicConfig.FittsA = 100.0
	m.dynamicConfig.FittsB = 150.0
	m.dynamicConfig.PerlinAmplitude = 2.0
	m.dynamicConfig.GaussianStrength = 0.5

	return m
}

// Position returns the cursor position the Mover believes it left the
// pointer at, in physical pixels.
func (m *Mover) Position() Vector2D {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentPos
}

// MoveTo moves the cursor to target. Under ProfileHuman it travels a
// synthesized trajectory; under ProfileDirect it warps in one event.
// Either way the final dispatched position is exactly the target.
func (m *Mover) MoveTo(ctx context.Context, target geometry.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	phys := target.Physical(m.display)
	dest := Vector2D{X: float64(phys.X), Y: float64(phys.Y)}

	if m.dynamicConfig.Profile == ProfileDirect {
		return m.dispatchMove(ctx, dest)
	}

	start := m.currentPos
	dist := start.Dist(dest)
	m.updateFatigue(dist / 1000.0)

	if err := m.simulateTrajectory(ctx, start, dest); err != nil {
		return err
	}

	// Land on the target exactly; trajectory noise only applies en route.
	return m.dispatchMove(ctx, dest)
}

// Click presses and releases button at the current cursor position,
// holding it for a sampled human press duration.
func (m *Mover) Click(ctx context.Context, button schemas.MouseButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.dispatchButton(ctx, schemas.MousePress, button); err != nil {
		return err
	}
	if err := m.injector.Sleep(ctx, m.pressHold()); err != nil {
		return err
	}
	return m.dispatchButton(ctx, schemas.MouseRelease, button)
}

// Press pushes button down at the current position without releasing it.
func (m *Mover) Press(ctx context.Context, button schemas.MouseButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dispatchButton(ctx, schemas.MousePress, button)
}

// Release lets go of button at the current position.
func (m *Mover) Release(ctx context.Context, button schemas.MouseButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dispatchButton(ctx, schemas.MouseRelease, button)
}

// pressHold samples a press-to-release duration. Caller holds the lock.
func (m *Mover) pressHold() time.Duration {
	lo := m.dynamicConfig.PressHoldMinMs
	hi := m.dynamicConfig.PressHoldMaxMs
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+m.rng.Intn(hi-lo)) * time.Millisecond
}

// dispatchMove sends one absolute move event and records the new
// position. Caller holds the lock.
func (m *Mover) dispatchMove(ctx context.Context, pos Vector2D) error {
	clamped := pos.Clamp(m.display.PhysicalBounds())
	event := schemas.MouseEventData{
		Type:   schemas.MouseMove,
		X:      clamped.X,
		Y:      clamped.Y,
		Button: schemas.ButtonNone,
	}
	if err := m.injector.DispatchMouseEvent(ctx, event); err != nil {
		if ctx.Err() == nil {
			m.logger.Warn("failed to dispatch mouse move", zap.Error(err))
		}
		return err
	}
	m.currentPos = clamped
	return nil
}

// dispatchButton sends a press or release at the current position. Caller
// holds the lock.
func (m *Mover) dispatchButton(ctx context.Context, typ schemas.MouseEventType, button schemas.MouseButton) error {
	event := schemas.MouseEventData{
		Type:       typ,
		X:          m.currentPos.X,
		Y:          m.currentPos.Y,
		Button:     button,
		ClickCount: 1,
	}
	return m.injector.DispatchMouseEvent(ctx, event)
}

// applyGaussianNoise adds high-frequency tremor to a coordinate. Caller
// holds the lock.
func (m *Mover) applyGaussianNoise(point Vector2D) Vector2D {
	strength := m.dynamicConfig.GaussianStrength * (0.5 + m.rng.Float64())
	return Vector2D{
		X: point.X + m.rng.NormFloat64()*strength,
		Y: point.Y + m.rng.NormFloat64()*strength,
	}
}

// applyFatigueEffects rescales the dynamic parameters from the base
// persona by the current fatigue level. Caller holds the lock.
func (m *Mover) applyFatigueEffects() {
	factor := 1.0 + m.fatigueLevel
	m.dynamicConfig.GaussianStrength = m.baseConfig.GaussianStrength * factor
	m.dynamicConfig.PerlinAmplitude = m.baseConfig.PerlinAmplitude * factor
	m.dynamicConfig.FittsA = m.baseConfig.FittsA * factor
}

// updateFatigue raises fatigue in proportion to action intensity. Caller
// holds the lock.
func (m *Mover) updateFatigue(intensity float64) {
	m.fatigueLevel += m.baseConfig.FatigueIncreaseRate * intensity
	if m.fatigueLevel > 1.0 {
		m.fatigueLevel = 1.0
	}
	m.applyFatigueEffects()
}

// recoverFatigue lowers fatigue across an idle span. Caller holds the
// lock.
func (m *Mover) recoverFatigue(idle time.Duration) {
	m.fatigueLevel -= m.baseConfig.FatigueRecoveryRate * idle.Seconds()
	if m.fatigueLevel < 0.0 {
		m.fatigueLevel = 0.0
	}
	m.applyFatigueEffects()
}
