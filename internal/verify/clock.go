package verify

import (
	"context"
	"time"
)

// Clock abstracts wall time for the polling loop. Deadlines are computed
// from Now rather than by counting poll iterations, so slow captures eat
// into the budget instead of silently extending it. Tests substitute a
// manual clock and run the loop without real delays.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock returns the real-time clock used outside of tests.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d or until the context is cancelled, whichever comes
// first.
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
