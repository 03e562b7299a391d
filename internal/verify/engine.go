package verify

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/screen"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// Options tune the polling loop. Zero values fall back to the defaults
// below, so a partially filled struct is safe to pass.
type Options struct {
	// Timeout bounds one await end to end.
	Timeout time.Duration
	// Interval is the pause before each capture.
	Interval time.Duration
	// DiffTolerance is the fraction of differing pixels a region may
	// show and still count as unchanged.
	DiffTolerance float64
	// PixelTolerance is the per-pixel color drift forgiven before a
	// pixel counts as differing.
	PixelTolerance float64
}

const (
	defaultTimeout        = 1000 * time.Millisecond
	defaultInterval       = 100 * time.Millisecond
	defaultDiffTolerance  = 0.1
	defaultPixelTolerance = 0.1
)

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.DiffTolerance <= 0 {
		o.DiffTolerance = defaultDiffTolerance
	}
	if o.PixelTolerance <= 0 {
		o.PixelTolerance = defaultPixelTolerance
	}
	return o
}

// Engine polls a region of the screen until it reaches a desired condition
// relative to a reference frame, or a deadline passes. One engine serves
// one display and is not safe for concurrent awaits.
type Engine struct {
	display  geometry.Display
	capturer screen.Capturer
	clock    Clock
	opts     Options
	logger   *zap.Logger
	state    State
}

// NewEngine builds an engine over the given display and capturer. A nil
// clock selects the system clock and a nil logger disables logging.
func NewEngine(display geometry.Display, capturer screen.Capturer, clock Clock, opts Options, logger *zap.Logger) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		display:  display,
		capturer: capturer,
		clock:    clock,
		opts:     opts.withDefaults(),
		logger:   logger,
		state:    StateIdle,
	}
}

// State reports where the engine is in its lifecycle. After an await it
// holds the terminal state until the next await begins.
func (e *Engine) State() State {
	return e.state
}

// Await polls until the zone of the live screen reaches cond relative to
// the same zone of the reference frame. ref must be a full frame of the
// engine's display; both it and every captured frame are cropped to zone
// before comparison. Passing zero for timeout or interval selects the
// engine's defaults.
//
// The loop sleeps before each capture, so even an instant condition costs
// one interval. The deadline is checked against the clock after every
// comparison, which keeps slow captures from stretching the budget; the
// reported Elapsed may therefore overshoot the timeout by up to one
// iteration.
//
// A timeout is an Outcome, not an error. Errors are reserved for faults:
// a zone outside the frame (*geometry.BoundsError), capture failure, or
// context cancellation.
func (e *Engine) Await(ctx context.Context, ref *image.RGBA, zone geometry.Rect, cond Condition, timeout, interval time.Duration) (Outcome, error) {
	if timeout <= 0 {
		timeout = e.opts.Timeout
	}
	if interval <= 0 {
		interval = e.opts.Interval
	}

	e.state = StateAwaiting
	start := e.clock.Now()
	deadline := start.Add(timeout)

	physZone := zone.Physical(e.display)
	refZone, err := vision.Crop(ref, physZone)
	if err != nil {
		e.state = StateIdle
		return Outcome{}, fmt.Errorf("cropping reference frame: %w", err)
	}

	e.logger.Debug("awaiting interface condition",
		zap.String("condition", string(cond)),
		zap.Stringer("zone", zone),
		zap.Duration("timeout", timeout),
		zap.Duration("interval", interval))

	polls := 0
	for {
		if err := e.clock.Sleep(ctx, interval); err != nil {
			e.state = StateIdle
			return Outcome{}, err
		}

		frame, err := e.capturer.Capture(ctx)
		if err != nil {
			e.state = StateIdle
			return Outcome{}, fmt.Errorf("capturing frame: %w", err)
		}
		curZone, err := vision.Crop(frame, physZone)
		if err != nil {
			e.state = StateIdle
			return Outcome{}, fmt.Errorf("cropping live frame: %w", err)
		}
		polls++

		diff := vision.DiffRatio(refZone, curZone, e.opts.PixelTolerance)
		same := diff <= e.opts.DiffTolerance
		if same == cond.wantsSame() {
			e.state = StateSucceeded
			elapsed := e.clock.Now().Sub(start)
			e.logger.Debug("interface condition reached",
				zap.String("condition", string(cond)),
				zap.Duration("elapsed", elapsed),
				zap.Int("polls", polls),
				zap.Float64("diff", diff))
			return Outcome{State: StateSucceeded, Elapsed: elapsed, Polls: polls, LastDiff: diff}, nil
		}

		if e.clock.Now().After(deadline) {
			e.state = StateTimedOut
			elapsed := e.clock.Now().Sub(start)
			e.logger.Debug("interface condition not reached",
				zap.String("condition", string(cond)),
				zap.Duration("elapsed", elapsed),
				zap.Int("polls", polls),
				zap.Float64("diff", diff))
			return Outcome{State: StateTimedOut, Elapsed: elapsed, Polls: polls, LastDiff: diff}, nil
		}
	}
}
