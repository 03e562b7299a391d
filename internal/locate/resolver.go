package locate

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/screen"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// Options tunes resolution. Zero fields take the defaults below.
type Options struct {
	// MinScore is the correlation a template match must reach before the
	// best window counts as found.
	MinScore float64
	// NeedleFloor is the pixel-similarity fraction a bitmap-needle window
	// must reach.
	NeedleFloor float64
	// PixelTolerance is the per-pixel channel drift treated as equal
	// during bitmap scanning.
	PixelTolerance float64
	// ZoneSize is the side length, in scaled units, of the default
	// check-zone around absolute targets.
	ZoneSize float64
}

const (
	defaultMinScore       = 0.5
	defaultNeedleFloor    = 0.8
	defaultPixelTolerance = 0.1
	defaultZoneSize       = 150
)

func (o Options) withDefaults() Options {
	if o.MinScore <= 0 {
		o.MinScore = defaultMinScore
	}
	if o.NeedleFloor <= 0 {
		o.NeedleFloor = defaultNeedleFloor
	}
	if o.PixelTolerance < 0 {
		o.PixelTolerance = defaultPixelTolerance
	}
	if o.ZoneSize <= 0 {
		o.ZoneSize = defaultZoneSize
	}
	return o
}

// Resolver resolves targets against live captures of one display.
type Resolver struct {
	display  geometry.Display
	capturer screen.Capturer
	opts     Options
	logger   *zap.Logger
}

// NewResolver creates a Resolver bound to a display and its capturer.
func NewResolver(display geometry.Display, capturer screen.Capturer, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		display:  display,
		capturer: capturer,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// Display returns the display the resolver is bound to.
func (r *Resolver) Display() geometry.Display {
	return r.display
}

// Resolve turns a target into a point plus check-zone. Absolute targets
// pass their point through untouched; template targets are searched for in
// a fresh capture. Failures are typed: *geometry.BoundsError when a region
// and the captured frame disagree, *NoMatchError / *TemplateTooLargeError /
// *NotImplementedError from the strategies.
func (r *Resolver) Resolve(ctx context.Context, target Target) (Resolved, error) {
	resolved, err := r.resolveTarget(ctx, target)
	if err != nil {
		return Resolved{}, err
	}
	if target.zone != nil {
		resolved.CheckZone = *target.zone
	}
	return resolved, nil
}

func (r *Resolver) resolveTarget(ctx context.Context, target Target) (Resolved, error) {
	if target.absolute {
		zone := target.point.AnchorRect(r.display, r.opts.ZoneSize, r.opts.ZoneSize, geometry.AnchorCenter)
		return Resolved{Point: target.point, CheckZone: zone, Score: 1.0}, nil
	}
	if target.template == nil {
		return Resolved{}, fmt.Errorf("empty target")
	}

	frame, err := r.capturer.Capture(ctx)
	if err != nil {
		return Resolved{}, fmt.Errorf("capturing screen for %q: %w", target.template.Name, err)
	}
	return r.resolveInFrame(frame, target.template)
}

// resolveInFrame runs the template's strategy against an already-captured
// frame. The frame is physical pixels; the result is scaled units.
func (r *Resolver) resolveInFrame(frame *image.RGBA, t *Template) (Resolved, error) {
	region := t.Region
	if region.Empty() {
		region = r.display.Bounds()
	}
	physRegion := region.Physical(r.display)

	cropped, err := vision.Crop(frame, physRegion)
	if err != nil {
		return Resolved{}, err
	}

	// Bring the template into the frame's pixel density. A template
	// captured at the live display's own scale passes through untouched.
	tplScale := t.Scale
	if tplScale <= 0 {
		tplScale = 1.0
	}
	needle := vision.Rescale(t.Image, r.display.Scale/tplScale)
	nw, nh := needle.Bounds().Dx(), needle.Bounds().Dy()
	if nw > cropped.Bounds().Dx() || nh > cropped.Bounds().Dy() {
		return Resolved{}, &TemplateTooLargeError{
			Template:     t.Name,
			Width:        nw,
			Height:       nh,
			RegionWidth:  cropped.Bounds().Dx(),
			RegionHeight: cropped.Bounds().Dy(),
		}
	}

	var matchLoc image.Point
	var score float64
	switch t.Kind {
	case KindTemplateMatching:
		matchLoc, score, err = vision.MatchTemplate(cropped, needle)
		if err != nil {
			return Resolved{}, fmt.Errorf("matching template %q: %w", t.Name, err)
		}
		if score < r.opts.MinScore {
			return Resolved{}, &NoMatchError{Template: t.Name, Score: score, Threshold: r.opts.MinScore}
		}
	case KindBitmapNeedle:
		var found bool
		matchLoc, score, found = vision.FindBitmap(cropped, needle, r.opts.PixelTolerance, r.opts.NeedleFloor)
		if !found {
			return Resolved{}, &NoMatchError{Template: t.Name, Score: score, Threshold: r.opts.NeedleFloor}
		}
	case KindEdgeParsing:
		return Resolved{}, &NotImplementedError{Kind: t.Kind}
	default:
		return Resolved{}, &NotImplementedError{Kind: t.Kind}
	}

	// The strategies report the window's top-left; consumers click
	// centroids. Add half the template, then return to scaled units.
	physX := physRegion.Min.X + matchLoc.X + nw/2
	physY := physRegion.Min.Y + matchLoc.Y + nh/2
	point, err := geometry.PointFromPhysical(r.display, float64(physX), float64(physY))
	if err != nil {
		return Resolved{}, fmt.Errorf("match for %q landed off-screen: %w", t.Name, err)
	}

	logicalW := float64(nw) / r.display.Scale
	logicalH := float64(nh) / r.display.Scale
	zone := geometry.NewRect(r.display,
		point.X.Float()-logicalW/2,
		point.Y.Float()-logicalH/2,
		logicalW, logicalH)

	r.logger.Debug("resolved template target",
		zap.String("template", t.Name),
		zap.String("strategy", string(t.Kind)),
		zap.Float64("score", score),
		zap.String("point", point.String()),
	)
	return Resolved{Point: point, CheckZone: zone, Score: score}, nil
}
