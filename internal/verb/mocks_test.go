package verb

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
	"github.com/xkilldash9x/deskpilot/internal/motion"
	"github.com/xkilldash9x/deskpilot/internal/verify"
)

// fakeClock advances only when the verification engine sleeps on it, so
// polling loops run at full speed while still observing realistic
// timestamps. Injector sleeps are instantaneous and do not touch it.
type fakeClock struct {
	start time.Time
	now   time.Time
}

func newFakeClock() *fakeClock {
	t0 := time.Unix(0, 0)
	return &fakeClock{start: t0, now: t0}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	return nil
}

// elapsed is the simulated verification time consumed since construction.
func (c *fakeClock) elapsed() time.Duration {
	return c.now.Sub(c.start)
}

// scriptedCapturer serves a fixed sequence of frames, repeating the last
// one once the script runs out. Verbs and the verification engine share
// one instance, so scripts are written in capture order across both.
type scriptedCapturer struct {
	frames []*image.RGBA
	next   int
}

func (c *scriptedCapturer) Capture(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.frames) == 0 {
		return nil, errors.New("no frames scripted")
	}
	frame := c.frames[c.next]
	if c.next < len(c.frames)-1 {
		c.next++
	}
	return frame, nil
}

func (c *scriptedCapturer) CaptureRegion(ctx context.Context, region image.Rectangle) (*image.RGBA, error) {
	return nil, errors.New("not used")
}

// typedText is one TypeText call as the injector saw it.
type typedText struct {
	text string
	wpm  float64
}

// fakeInjector implements screen.Injector for the package tests,
// recording everything dispatched through it. MockDispatchMouseEvent
// overrides the default recording behavior when set.
type fakeInjector struct {
	mu     sync.Mutex
	events []schemas.MouseEventData
	keys   []schemas.KeyEventData
	typed  []typedText

	MockDispatchMouseEvent func(ctx context.Context, data schemas.MouseEventData) error
}

func newFakeInjector() *fakeInjector {
	return &fakeInjector{}
}

func (m *fakeInjector) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func (m *fakeInjector) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if m.MockDispatchMouseEvent != nil {
		return m.MockDispatchMouseEvent(ctx, data)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}

func (m *fakeInjector) DispatchKeyEvent(ctx context.Context, data schemas.KeyEventData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, data)
	return nil
}

func (m *fakeInjector) TypeText(ctx context.Context, text string, wpm float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typed = append(m.typed, typedText{text: text, wpm: wpm})
	return nil
}

// mouseEvents returns a copy of the recorded mouse events.
func (m *fakeInjector) mouseEvents() []schemas.MouseEventData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]schemas.MouseEventData, len(m.events))
	copy(out, m.events)
	return out
}

// keyEvents returns a copy of the recorded key events.
func (m *fakeInjector) keyEvents() []schemas.KeyEventData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]schemas.KeyEventData, len(m.keys))
	copy(out, m.keys)
	return out
}

// typedTexts returns a copy of the recorded TypeText calls.
func (m *fakeInjector) typedTexts() []typedText {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]typedText, len(m.typed))
	copy(out, m.typed)
	return out
}

// eventsOfType filters recorded mouse events by type.
func eventsOfType(events []schemas.MouseEventData, typ schemas.MouseEventType) []schemas.MouseEventData {
	var out []schemas.MouseEventData
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// wheelDelta sums the vertical wheel movement across recorded events.
func wheelDelta(events []schemas.MouseEventData) float64 {
	var sum float64
	for _, ev := range events {
		if ev.Type == schemas.MouseWheel {
			sum += ev.DeltaY
		}
	}
	return sum
}

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// corrupted returns a copy of frame with a w x h white block at (x, y).
func corrupted(frame *image.RGBA, x, y, w, h int) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	copy(out.Pix, frame.Pix)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			out.SetRGBA(x+dx, y+dy, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return out
}

// newTestEnv wires a complete Env over scripted captures and a recording
// injector: a 200x200 display at scale 1.0, a real resolver and
// verification engine on default options, and a seeded Mover. The journal
// is off; tests that need one attach it afterwards.
func newTestEnv(frames ...*image.RGBA) (*Env, *fakeInjector, *fakeClock) {
	d := geometry.NewDisplay(200, 200, 1.0)
	clock := newFakeClock()
	capturer := &scriptedCapturer{frames: frames}
	injector := newFakeInjector()
	return &Env{
		Display:  d,
		Capturer: capturer,
		Injector: injector,
		Resolver: locate.NewResolver(d, capturer, locate.Options{}, nil),
		Engine:   verify.NewEngine(d, capturer, clock, verify.Options{}, nil),
		Mover:    motion.NewTestMover(d, injector, 42),
	}, injector, clock
}

// testTarget aims at the display center with an explicit 100x100 check
// zone, the shape most tests watch.
func testTarget(t *testing.T, d geometry.Display) locate.Target {
	t.Helper()
	p, err := geometry.NewPoint(d, 100, 100)
	require.NoError(t, err)
	return locate.AbsoluteTarget(p).WithCheckZone(geometry.NewRect(d, 50, 50, 100, 100))
}
