package screen

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// DisplayCapturer grabs frames from one physical display through the
// platform capture backend.
type DisplayCapturer struct {
	display int
}

// NewDisplayCapturer returns a Capturer bound to the given display index.
// Index 0 is the primary display.
func NewDisplayCapturer(display int) *DisplayCapturer {
	return &DisplayCapturer{display: display}
}

// Capture implements Capturer.
func (c *DisplayCapturer) Capture(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bounds := screenshot.GetDisplayBounds(c.display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capturing display %d: %w", c.display, err)
	}
	return vision.ToRGBA(img), nil
}

// CaptureRegion implements Capturer. The region is relative to the
// display's own origin.
func (c *DisplayCapturer) CaptureRegion(ctx context.Context, region image.Rectangle) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	origin := screenshot.GetDisplayBounds(c.display).Min
	img, err := screenshot.CaptureRect(region.Add(origin))
	if err != nil {
		return nil, fmt.Errorf("capturing region %v of display %d: %w", region, c.display, err)
	}
	return vision.ToRGBA(img), nil
}

// DetectDisplay reads the physical extent of the given display and binds it
// to the configured scale factor. There is no portable way to query the
// compositor's scale, so the factor comes from configuration and defaults
// to 1.0.
func DetectDisplay(display int, scale float64) (geometry.Display, error) {
	if screenshot.NumActiveDisplays() <= display {
		return geometry.Display{}, fmt.Errorf("display %d not present (%d active)", display, screenshot.NumActiveDisplays())
	}
	bounds := screenshot.GetDisplayBounds(display)
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return geometry.Display{}, fmt.Errorf("display %d reports empty bounds %v", display, bounds)
	}
	return geometry.NewDisplay(bounds.Dx(), bounds.Dy(), scale), nil
}

// ListDisplays returns the physical bounds of every active display, for the
// capture command's listing output.
func ListDisplays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	out := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, screenshot.GetDisplayBounds(i))
	}
	return out
}
