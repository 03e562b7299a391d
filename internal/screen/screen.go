// Package screen provides the OS-facing collaborators: frame capture,
// cursor and key injection, and display detection. Everything above this
// package talks to the screen exclusively through the Capturer and Injector
// contracts, so tests substitute deterministic fakes and never touch a real
// display.
package screen

import (
	"context"
	"image"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
)

// Capturer grabs frames of the display in physical pixels. Captures are
// synchronous and block the caller; the verification engine rations calls
// to them by its poll interval.
type Capturer interface {
	// Capture returns the full display as an RGBA frame anchored at (0, 0).
	Capture(ctx context.Context) (*image.RGBA, error)
	// CaptureRegion returns just the given physical-pixel region.
	CaptureRegion(ctx context.Context, region image.Rectangle) (*image.RGBA, error)
}

// Injector is the low-level interface to OS input synthesis. Implementations
// perform each event synchronously; pacing between events belongs to the
// caller, which uses Sleep so simulated time stays injectable.
type Injector interface {
	Sleep(ctx context.Context, d time.Duration) error
	DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error
	DispatchKeyEvent(ctx context.Context, data schemas.KeyEventData) error
	// TypeText enters literal text at the given words-per-minute pacing.
	TypeText(ctx context.Context, text string, wpm float64) error
}
