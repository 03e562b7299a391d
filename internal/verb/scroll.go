package verb

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
	"github.com/xkilldash9x/deskpilot/internal/verify"
)

const (
	// defaultScrollTimeout bounds the await after one wheel action or
	// one iterative step.
	defaultScrollTimeout = 500 * time.Millisecond
	// defaultScrollTicks is the wheel detents per plain scroll.
	defaultScrollTicks = 3
	// defaultScrollMaxSteps caps the iterative and seeking variants.
	defaultScrollMaxSteps = 20
	// seekSettleDelay lets the interface repaint after a seek step
	// before the template search runs again.
	seekSettleDelay = 100 * time.Millisecond
)

// Scroll turns the wheel at a resolved location and requires the content
// to visibly move.
type Scroll struct {
	action
	point     geometry.Point
	direction schemas.ScrollDirection
	ticks     int
}

// NewScroll resolves target and builds the verb. ticks of zero or below
// selects the default detent count.
func NewScroll(ctx context.Context, env *Env, target locate.Target, direction schemas.ScrollDirection, ticks int) (*Scroll, error) {
	resolved, err := env.Resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if ticks <= 0 {
		ticks = defaultScrollTicks
	}
	return &Scroll{
		action: action{
			env:    env,
			name:   "scroll",
			target: target.Describe(),
			zone:   resolved.CheckZone,
			// No stability precheck: scrollable content is often already
			// animating, and the wheel is harmless to fire into it.
			timeout:  defaultScrollTimeout,
			precheck: false,
		},
		point:     resolved.Point,
		direction: direction,
		ticks:     ticks,
	}, nil
}

func (s *Scroll) Describe() string {
	return fmt.Sprintf("scroll %s %d ticks at %s", s.direction, s.ticks, s.point)
}

// Fire scrolls once and awaits a visible change in the zone.
func (s *Scroll) Fire(ctx context.Context, opts FireOptions) error {
	return s.fire(ctx, opts, s.execute)
}

// execute aims the cursor, captures the reference frame, and turns the
// wheel.
func (s *Scroll) execute(ctx context.Context) (*image.RGBA, error) {
	if err := s.env.Mover.MoveTo(ctx, s.point); err != nil {
		return nil, err
	}
	before, err := s.env.Capturer.Capture(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.env.Mover.ScrollBy(ctx, s.direction, s.ticks); err != nil {
		return nil, err
	}
	return before, nil
}

// IterativeScroll scrolls until the watched zone stops reacting: each
// step turns the wheel and awaits a change, and the first step whose
// await times out means the content ran out. Pointing the check zone at
// the bottom edge of the scroll area makes that the usual end-of-content
// detector.
type IterativeScroll struct {
	action
	point     geometry.Point
	direction schemas.ScrollDirection
	stepTicks int
	maxSteps  int
}

// NewIterativeScroll resolves target and builds the verb. stepTicks and
// maxSteps of zero or below select the defaults.
func NewIterativeScroll(ctx context.Context, env *Env, target locate.Target, direction schemas.ScrollDirection, stepTicks, maxSteps int) (*IterativeScroll, error) {
	resolved, err := env.Resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if stepTicks <= 0 {
		stepTicks = defaultScrollTicks
	}
	if maxSteps <= 0 {
		maxSteps = defaultScrollMaxSteps
	}
	return &IterativeScroll{
		action: action{
			env:      env,
			name:     "iterative_scroll",
			target:   target.Describe(),
			zone:     resolved.CheckZone,
			timeout:  defaultScrollTimeout,
			precheck: false,
		},
		point:     resolved.Point,
		direction: direction,
		stepTicks: stepTicks,
		maxSteps:  maxSteps,
	}, nil
}

func (s *IterativeScroll) Describe() string {
	return fmt.Sprintf("scroll %s to the end at %s", s.direction, s.point)
}

// Fire scrolls step by step until the zone stops changing or the step
// limit is hit. Success means the end of the content was reached.
func (s *IterativeScroll) Fire(ctx context.Context, opts FireOptions) error {
	stepTimeout := opts.Timeout
	if stepTimeout <= 0 {
		stepTimeout = s.timeout
	}

	rec := s.newRecord()
	logger := s.fireLogger(rec)

	if err := s.env.Mover.MoveTo(ctx, s.point); err != nil {
		s.finish(rec, schemas.OutcomeFailed, err, nil)
		return err
	}

	for step := 1; step <= s.maxSteps; step++ {
		before, err := s.env.Capturer.Capture(ctx)
		if err != nil {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		if err := s.env.Mover.ScrollBy(ctx, s.direction, s.stepTicks); err != nil {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}

		outcome, err := s.env.Engine.Await(ctx, before, s.zone, verify.AwaitChange, stepTimeout, opts.Interval)
		if err != nil {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		if !outcome.Succeeded() {
			// The wheel no longer moves the zone: end of content.
			s.finish(rec, schemas.OutcomeSucceeded, nil, before)
			logger.Info("content exhausted", zap.Int("steps", step))
			return nil
		}
	}

	timeoutErr := verify.NewTimeoutError(verify.AwaitStable, time.Since(rec.StartedAt))
	s.finish(rec, schemas.OutcomeTimedOut, timeoutErr, nil)
	logger.Warn("content still moving at step limit", zap.Int("max_steps", s.maxSteps))
	return timeoutErr
}

var (
	_ Verb = (*Scroll)(nil)
	_ Verb = (*IterativeScroll)(nil)
	_ Verb = (*SeekScroll)(nil)
)
