package motion

import (
	"context"
	"sync"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
)

// mockInjector implements screen.Injector for the package tests. Mock*
// function fields override the default recording behavior when set; the
// Default* methods stay callable from overrides.
type mockInjector struct {
	mu         sync.Mutex
	events     []schemas.MouseEventData
	keys       []schemas.KeyEventData
	typed      []string
	sleeps     []time.Duration
	returnErr  error
	failOnCall int
	callCount  int

	MockSleep              func(ctx context.Context, d time.Duration) error
	MockDispatchMouseEvent func(ctx context.Context, data schemas.MouseEventData) error
	MockDispatchKeyEvent   func(ctx context.Context, data schemas.KeyEventData) error
	MockTypeText           func(ctx context.Context, text string, wpm float64) error
}

func newMockInjector() *mockInjector {
	return &mockInjector{}
}

func (m *mockInjector) Sleep(ctx context.Context, d time.Duration) error {
	if m.MockSleep != nil {
		return m.MockSleep(ctx, d)
	}
	return m.DefaultSleep(ctx, d)
}

func (m *mockInjector) DefaultSleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	return nil
}

func (m *mockInjector) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if m.MockDispatchMouseEvent != nil {
		return m.MockDispatchMouseEvent(ctx, data)
	}
	return m.DefaultDispatchMouseEvent(ctx, data)
}

func (m *mockInjector) DefaultDispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, data)
	m.callCount++

	if m.returnErr != nil && (m.failOnCall == 0 || m.callCount >= m.failOnCall) {
		return m.returnErr
	}
	return ctx.Err()
}

func (m *mockInjector) DispatchKeyEvent(ctx context.Context, data schemas.KeyEventData) error {
	if m.MockDispatchKeyEvent != nil {
		return m.MockDispatchKeyEvent(ctx, data)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, data)
	return nil
}

func (m *mockInjector) TypeText(ctx context.Context, text string, wpm float64) error {
	if m.MockTypeText != nil {
		return m.MockTypeText(ctx, text, wpm)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typed = append(m.typed, text)
	return nil
}

// mouseEvents returns a copy of the recorded mouse events.
func (m *mockInjector) mouseEvents() []schemas.MouseEventData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]schemas.MouseEventData, len(m.events))
	copy(out, m.events)
	return out
}

// sleepDurations returns a copy of the recorded sleeps.
func (m *mockInjector) sleepDurations() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}
