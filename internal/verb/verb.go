// Package verb composes the driver's capabilities into complete interface
// actions: click, input, and the scroll family. Every verb follows the
// same firing protocol: optionally assert the watched zone is stable,
// perform the primitive action while capturing a reference frame at the
// state-changing instant, then hand the reference to the verification
// engine and await a visible change. A verb that leaves no trace on the
// screen fails with a timeout; that is an ordinary outcome for callers to
// handle, not a crash.
package verb

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
	"github.com/xkilldash9x/deskpilot/internal/motion"
	"github.com/xkilldash9x/deskpilot/internal/screen"
	"github.com/xkilldash9x/deskpilot/internal/verify"
)

// Env bundles the collaborators every verb needs. One Env serves one
// display for the life of the process.
type Env struct {
	Display  geometry.Display
	Capturer screen.Capturer
	Injector screen.Injector
	Resolver *locate.Resolver
	Engine   *verify.Engine
	Mover    *motion.Mover
	Journal  *Journal
	Logger   *zap.Logger
}

// logger returns the Env logger, or a nop when none was set.
func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// journal returns the Env journal, or a disabled one when none was set.
func (e *Env) journal() *Journal {
	if e.Journal == nil {
		return &Journal{}
	}
	return e.Journal
}

// FireOptions override a verb's verification budget per invocation. Zero
// values select the verb's defaults.
type FireOptions struct {
	// Timeout bounds the await after the action (and the stability
	// precheck when the verb performs one).
	Timeout time.Duration
	// Interval is the verification poll interval.
	Interval time.Duration
}

// Verb is one composed interface action paired with its verification
// protocol. Fire blocks until the interface visibly reacted or the
// verification budget ran out.
type Verb interface {
	// Describe names the action and its target for logs and the journal.
	Describe() string
	// CheckZone is the region watched for the change.
	CheckZone() geometry.Rect
	// Fire executes the action and awaits verification.
	Fire(ctx context.Context, opts FireOptions) error
}

// action carries the state every standard verb shares.
type action struct {
	env      *Env
	name     string
	target   string
	zone     geometry.Rect
	timeout  time.Duration
	precheck bool
}

func (a *action) CheckZone() geometry.Rect {
	return a.zone
}

// newRecord starts a journal record for one firing of this verb.
func (a *action) newRecord() schemas.ActionRecord {
	return schemas.ActionRecord{
		ID:        uuid.NewString(),
		Verb:      a.name,
		Target:    a.target,
		StartedAt: time.Now(),
	}
}

// finish stamps rec with its outcome and hands it to the journal, with
// the reference frame when one is worth keeping.
func (a *action) finish(rec schemas.ActionRecord, outcome schemas.ActionOutcome, err error, before *image.RGBA) {
	rec.Elapsed = time.Since(rec.StartedAt)
	rec.Outcome = outcome
	if err != nil {
		rec.Error = err.Error()
	}
	a.env.journal().Record(rec, before, a.zone)
}

// fireLogger returns the Env logger annotated with this firing.
func (a *action) fireLogger(rec schemas.ActionRecord) *zap.Logger {
	return a.env.logger().With(
		zap.String("action_id", rec.ID),
		zap.String("verb", a.name),
		zap.String("target", a.target))
}

// fire runs the standard protocol around exec. exec performs the
// primitive action exactly once and returns the full frame captured
// immediately before the state-changing instant.
func (a *action) fire(ctx context.Context, opts FireOptions, exec func(context.Context) (*image.RGBA, error)) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = a.timeout
	}

	rec := a.newRecord()
	logger := a.fireLogger(rec)

	if a.precheck {
		ref, err := a.env.Capturer.Capture(ctx)
		if err != nil {
			a.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		outcome, err := a.env.Engine.Await(ctx, ref, a.zone, verify.AwaitStable, timeout, opts.Interval)
		if err != nil {
			a.finish(rec, schemas.OutcomeFailed, err, nil)
			return err
		}
		if !outcome.Succeeded() {
			// The zone is animating on its own; acting now would make
			// the change verification meaningless.
			timeoutErr := verify.NewTimeoutError(verify.AwaitStable, outcome.Elapsed)
			a.finish(rec, schemas.OutcomeTimedOut, timeoutErr, ref)
			logger.Warn("zone not stable before action", zap.Duration("elapsed", outcome.Elapsed))
			return timeoutErr
		}
	}

	before, err := exec(ctx)
	if err != nil {
		a.finish(rec, schemas.OutcomeFailed, err, nil)
		return err
	}

	outcome, err := a.env.Engine.Await(ctx, before, a.zone, verify.AwaitChange, timeout, opts.Interval)
	if err != nil {
		a.finish(rec, schemas.OutcomeFailed, err, nil)
		return err
	}

	if !outcome.Succeeded() {
		timeoutErr := verify.NewTimeoutError(verify.AwaitChange, outcome.Elapsed)
		a.finish(rec, schemas.OutcomeTimedOut, timeoutErr, before)
		logger.Warn("interface did not react", zap.Duration("elapsed", outcome.Elapsed))
		return timeoutErr
	}

	a.finish(rec, schemas.OutcomeSucceeded, nil, before)
	logger.Info("action verified",
		zap.Duration("elapsed", outcome.Elapsed),
		zap.Int("polls", outcome.Polls))
	return nil
}
