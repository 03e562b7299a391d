package motion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
)

func TestScrollByDeliversAllTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		direction schemas.ScrollDirection
		ticks     int
		wantSum   float64
	}{
		{"down", schemas.ScrollDown, 10, 10},
		{"up", schemas.ScrollUp, 7, -7},
		{"single", schemas.ScrollDown, 1, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := geometry.NewDisplay(1920, 1080, 1.0)
			injector := newMockInjector()
			m := NewTestMover(d, injector, 42)

			require.NoError(t, m.ScrollBy(context.Background(), tc.direction, tc.ticks))

			sum := 0.0
			pos := m.Position()
			for _, ev := range injector.mouseEvents() {
				require.Equal(t, schemas.MouseWheel, ev.Type)
				assert.Equal(t, pos.X, ev.X)
				assert.Equal(t, pos.Y, ev.Y)
				// Bursts never exceed the configured detent group.
				mag := ev.DeltaY
				if mag < 0 {
					mag = -mag
				}
				assert.GreaterOrEqual(t, mag, 1.0)
				assert.LessOrEqual(t, mag, 3.0)
				sum += ev.DeltaY
			}
			assert.Equal(t, tc.wantSum, sum)
		})
	}
}

func TestScrollByPausesBetweenBursts(t *testing.T) {
	t.Parallel()

	d := geometry.NewDisplay(1920, 1080, 1.0)
	injector := newMockInjector()
	m := NewTestMover(d, injector, 42)

	require.NoError(t, m.ScrollBy(context.Background(), schemas.ScrollDown, 20))

	events := injector.mouseEvents()
	sleeps := injector.sleepDurations()
	require.NotEmpty(t, events)

	// One pause between every pair of bursts, none after the last.
	assert.Len(t, sleeps, len(events)-1)
	for _, s := range sleeps {
		assert.GreaterOrEqual(t, s, 30*time.Millisecond)
		assert.LessOrEqual(t, s, 120*time.Millisecond)
	}
}

func TestScrollByZeroTicks(t *testing.T) {
	t.Parallel()

	d := geometry.NewDisplay(1920, 1080, 1.0)
	injector := newMockInjector()
	m := NewTestMover(d, injector, 42)

	require.NoError(t, m.ScrollBy(context.Background(), schemas.ScrollDown, 0))
	assert.Empty(t, injector.mouseEvents())
}

func TestScrollByCancelled(t *testing.T) {
	t.Parallel()

	d := geometry.NewDisplay(1920, 1080, 1.0)
	injector := newMockInjector()
	m := NewTestMover(d, injector, 42)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.ScrollBy(ctx, schemas.ScrollDown, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
