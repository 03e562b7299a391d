package verb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
)

// SeekScroll scrolls until a template becomes visible. Each step searches
// the screen for the needle and, when it is absent, turns the wheel and
// lets the interface settle before looking again.
type SeekScroll struct {
	action
	point     geometry.Point
	needle    locate.Target
	direction schemas.ScrollDirection
	stepTicks int
	maxSteps  int
	found     *locate.Resolved
}

// NewSeekScroll builds the verb. anchor names where to aim the wheel
// (usually an absolute point inside the scrollable area) and needle the
// template to bring on screen. The anchor resolves at construction;
// needle resolution failures there are expected and not fatal, since the
// whole point is that the needle may not be visible yet.
func NewSeekScroll(ctx context.Context, env *Env, anchor, needle locate.Target, direction schemas.ScrollDirection, stepTicks, maxSteps int) (*SeekScroll, error) {
	resolved, err := env.Resolver.Resolve(ctx, anchor)
	if err != nil {
		return nil, err
	}
	if stepTicks <= 0 {
		stepTicks = defaultScrollTicks
	}
	if maxSteps <= 0 {
		maxSteps = defaultScrollMaxSteps
	}
	return &SeekScroll{
		action: action{
			env:      env,
			name:     "seek_scroll",
			target:   needle.Describe(),
			zone:     resolved.CheckZone,
			timeout:  defaultScrollTimeout,
			precheck: false,
		},
		point:     resolved.Point,
		needle:    needle,
		direction: direction,
		stepTicks: stepTicks,
		maxSteps:  maxSteps,
	}, nil
}

func (s *SeekScroll) Describe() string {
	return fmt.Sprintf("scroll %s seeking %s", s.direction, s.target)
}

// Found returns where the needle resolved after a successful Fire.
func (s *SeekScroll) Found() (locate.Resolved, bool) {
	if s.found == nil {
		return locate.Resolved{}, false
	}
	return *s.found, true
}

// Fire alternates template search and wheel steps until the needle
// appears or the step limit is hit. The needle staying invisible surfaces
// as the resolver's NoMatchError wrapped with the step count, so callers
// can still branch on the failure kind.
func (s *SeekScroll) Fire(ctx context.Context, opts FireOptions) error {
	rec := s.newRecord()
	logger := s.fireLogger(rec)

	if err := s.env.Mover.MoveTo(ctx, s.point); err != nil {
		s.finish(rec, schemas.OutcomeFailed, err, nil)
		return err
	}

	var noMatch *locate.NoMatchError
	for step := 0; step <= s.maxSteps; step++ {
		resolved, err := s.env.Resolver.Resolve(ctx, s.needle)
		if err == nil {
			s.found = &resolved
			s.finish(rec, schemas.OutcomeSucceeded, nil, nil)
			logger.Info("template located",
				zap.Stringer("point", resolved.Point),
				zap.Float64("score", resolved.Score),
				zap.Int("steps", step))
			return nil
		}
		if !errors.As(err, &noMatch) {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		if step == s.maxSteps {
			break
		}

		if err := s.env.Mover.ScrollBy(ctx, s.direction, s.stepTicks); err != nil {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		if err := s.env.Injector.Sleep(ctx, seekSettleDelay); err != nil {
			s.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
	}

	err := fmt.Errorf("seeking %s: not visible after %d scroll steps: %w", s.target, s.maxSteps, noMatch)
	s.finish(rec, schemas.OutcomeFailed, err, nil)
	logger.Warn("template never appeared", zap.Int("max_steps", s.maxSteps))
	return err
}
