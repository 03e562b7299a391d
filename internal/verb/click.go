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

// defaultClickTimeout bounds the await after a click. Clicks produce
// quick reactions, so the budget is tighter than for text entry.
const defaultClickTimeout = 500 * time.Millisecond

// Click presses a mouse button at a resolved location and requires the
// interface to visibly react.
type Click struct {
	action
	point  geometry.Point
	button schemas.MouseButton
}

// NewClick resolves target and builds the verb. A resolution failure is
// fatal to construction; nothing is retried.
func NewClick(ctx context.Context, env *Env, target locate.Target, button schemas.MouseButton) (*Click, error) {
	resolved, err := env.Resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	return &Click{
		action: action{
			env:      env,
			name:     "click",
			target:   target.Describe(),
			zone:     resolved.CheckZone,
			timeout:  defaultClickTimeout,
			precheck: true,
		},
		point:  resolved.Point,
		button: button,
	}, nil
}

func (c *Click) Describe() string {
	return fmt.Sprintf("click %s at %s", c.button, c.point)
}

// Fire asserts the watched zone is stable, clicks, and awaits the
// reaction. A timeout from either phase surfaces as a TimeoutError with
// the awaited condition attached.
func (c *Click) Fire(ctx context.Context, opts FireOptions) error {
	return c.fire(ctx, opts, c.execute)
}

// execute moves the cursor onto the target, captures the reference frame
// while hovering, and clicks. Capturing between move and click keeps any
// hover styling out of the change detection.
func (c *Click) execute(ctx context.Context) (*image.RGBA, error) {
	if err := c.env.Mover.MoveTo(ctx, c.point); err != nil {
		return nil, err
	}
	before, err := c.env.Capturer.Capture(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.env.Mover.Click(ctx, c.button); err != nil {
		return nil, err
	}
	return before, nil
}

var _ Verb = (*Click)(nil)
