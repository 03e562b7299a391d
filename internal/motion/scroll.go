package motion

import (
	"context"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
)

// ScrollBy turns ticks wheel detents in direction at the current cursor
// position. Ticks are grouped into small bursts with pink-noise paced
// pauses between them, the rhythm of a finger working a detent wheel
// rather than a metronome. Positive DeltaY on the dispatched events
// scrolls the content down.
func (m *Mover) ScrollBy(ctx context.Context, direction schemas.ScrollDirection, ticks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ticks <= 0 {
		return nil
	}

	sign := 1.0
	if direction == schemas.ScrollUp {
		sign = -1.0
	}

	remaining := ticks
	for remaining > 0 {
		burst := 1 + m.rng.Intn(m.dynamicConfig.WheelBurstMax)
		if burst > remaining {
			burst = remaining
		}
		remaining -= burst

		event := schemas.MouseEventData{
			Type:   schemas.MouseWheel,
			X:      m.currentPos.X,
			Y:      m.currentPos.Y,
			Button: schemas.ButtonNone,
			DeltaY: sign * float64(burst),
		}
		if err := m.injector.DispatchMouseEvent(ctx, event); err != nil {
			return err
		}

		if remaining == 0 {
			break
		}

		pause := m.wheelPause()
		m.recoverFatigue(pause)
		if err := m.injector.Sleep(ctx, pause); err != nil {
			return err
		}
	}

	return nil
}

// wheelPause samples the gap before the next burst from the pink noise
// generator, mapped into the configured range. Caller holds the lock.
func (m *Mover) wheelPause() time.Duration {
	lo := float64(m.dynamicConfig.WheelPauseMinMs)
	hi := float64(m.dynamicConfig.WheelPauseMaxMs)

	frac := (m.wheelNoise.Next() + 1.0) / 2.0
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	return time.Duration(lo+frac*(hi-lo)) * time.Millisecond
}
