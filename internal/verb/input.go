package verb

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
)

const (
	// defaultInputTimeout bounds the await after text entry. Typed text
	// renders progressively, so the budget is looser than for clicks.
	defaultInputTimeout = 1000 * time.Millisecond
	// defaultTypingWPM is the text entry speed when none is configured.
	defaultTypingWPM = 60.0
	// submitTapHold is the Return key press-to-release time when
	// submitting.
	submitTapHold = 100 * time.Millisecond
)

// InputOptions tune text entry. Zero values select the defaults.
type InputOptions struct {
	// WPM is the typing speed in words per minute.
	WPM float64
	// SubmitHold is the Return key press-to-release time when
	// submitting.
	SubmitHold time.Duration
}

// Input focuses a text field by clicking it, types a string, and
// requires the field to visibly change.
type Input struct {
	action
	point      geometry.Point
	text       string
	submit     bool
	wpm        float64
	submitHold time.Duration
}

// NewInput resolves target and builds the verb. submit appends a Return
// tap after the text.
func NewInput(ctx context.Context, env *Env, target locate.Target, text string, submit bool, opts InputOptions) (*Input, error) {
	resolved, err := env.Resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	wpm := opts.WPM
	if wpm <= 0 {
		wpm = defaultTypingWPM
	}
	hold := opts.SubmitHold
	if hold <= 0 {
		hold = submitTapHold
	}
	return &Input{
		action: action{
			env:    env,
			name:   "input",
			target: target.Describe(),
			zone:   resolved.CheckZone,
			// No stability precheck: the focus click inside execute
			// changes the zone on purpose, and a precheck would race it.
			timeout:  defaultInputTimeout,
			precheck: false,
		},
		point:      resolved.Point,
		text:       text,
		submit:     submit,
		wpm:        wpm,
		submitHold: hold,
	}, nil
}

func (i *Input) Describe() string {
	return fmt.Sprintf("input %d characters at %s", len(i.text), i.point)
}

// Fire types the text and awaits a visible change in the field.
func (i *Input) Fire(ctx context.Context, opts FireOptions) error {
	return i.fire(ctx, opts, i.execute)
}

// execute clicks the field to focus it, captures the reference frame,
// then types. The reference is taken after the focus click so the await
// measures the text appearing, not the focus highlight.
func (i *Input) execute(ctx context.Context) (*image.RGBA, error) {
	if err := i.env.Mover.MoveTo(ctx, i.point); err != nil {
		return nil, err
	}
	if err := i.env.Mover.Click(ctx, schemas.ButtonLeft); err != nil {
		return nil, err
	}

	before, err := i.env.Capturer.Capture(ctx)
	if err != nil {
		return nil, err
	}

	if err := i.env.Injector.TypeText(ctx, i.text, i.wpm); err != nil {
		return nil, err
	}
	if i.submit {
		tap := schemas.KeyEventData{
			Type: schemas.KeyTap,
			Key:  schemas.KeyReturn,
			Hold: i.submitHold,
		}
		if err := i.env.Injector.DispatchKeyEvent(ctx, tap); err != nil {
			return nil, err
		}
	}
	return before, nil
}

var _ Verb = (*Input)(nil)
