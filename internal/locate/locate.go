// Package locate turns a target description, either a fixed point or a
// reference image of a UI element, into a verified on-screen coordinate
// plus the region to watch when acting on it. Resolution happens against a
// live capture at call time; nothing is cached, because the screen the
// driver looks at is always newer than the one it last saw.
package locate

import (
	"fmt"
	"image"

	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// Kind names a visual location strategy. The set is closed: resolution
// dispatches over it with a single exhaustive switch.
type Kind string

const (
	// KindTemplateMatching scores every window by normalized
	// cross-correlation and takes the best one.
	KindTemplateMatching Kind = "template_matching"
	// KindBitmapNeedle scans for the first window whose pixels agree with
	// the template within a similarity floor.
	KindBitmapNeedle Kind = "bitmap_needle"
	// KindEdgeParsing is reserved. Resolving with it fails with a
	// NotImplementedError.
	KindEdgeParsing Kind = "edge_parsing"
)

// ParseKind maps a flag value onto a Kind, accepting the canonical names
// and their short forms.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "template", string(KindTemplateMatching):
		return KindTemplateMatching, nil
	case "bitmap", string(KindBitmapNeedle):
		return KindBitmapNeedle, nil
	case "edge", string(KindEdgeParsing):
		return KindEdgeParsing, nil
	default:
		return "", fmt.Errorf("unknown location strategy %q", s)
	}
}

// Template is a reference image of a UI element together with where and how
// to look for it. It owns its decoded pixels; the file is read once at
// construction.
type Template struct {
	// Name identifies the template in logs and errors.
	Name string
	// Image holds the decoded pixels.
	Image *image.RGBA
	// Region bounds the search, in scaled units. An empty region means the
	// whole screen. Narrow regions disambiguate repeated elements; the
	// match itself is just as happy with the full screen.
	Region geometry.Rect
	// Scale is the device scale factor the template was captured at. A
	// template authored in logical pixels is 1.0, a crop of a 2x screen
	// capture is 2.0. The resolver rescales the pixels to the live
	// display's scale before matching.
	Scale float64
	// Kind selects the matching strategy.
	Kind Kind
}

// NewTemplate loads a template image from disk with the default strategy
// and a full-screen search region.
func NewTemplate(name, path string) (*Template, error) {
	img, err := vision.DecodePNG(path)
	if err != nil {
		return nil, err
	}
	return NewTemplateFromImage(name, img), nil
}

// NewTemplateFromImage wraps already-decoded pixels as a Template.
func NewTemplateFromImage(name string, img *image.RGBA) *Template {
	return &Template{
		Name:  name,
		Image: img,
		Scale: 1.0,
		Kind:  KindTemplateMatching,
	}
}

// Target is the description a verb acts on: exactly one of a fixed point or
// a template. Build one with AbsoluteTarget or TemplateTarget; the zero
// value is not a valid target.
type Target struct {
	point    geometry.Point
	template *Template
	absolute bool
	zone     *geometry.Rect
}

// AbsoluteTarget describes a fixed, already-validated point.
func AbsoluteTarget(p geometry.Point) Target {
	return Target{point: p, absolute: true}
}

// TemplateTarget describes an element to find visually.
func TemplateTarget(t *Template) Target {
	return Target{template: t}
}

// WithCheckZone returns a copy of the target with an explicit verification
// region, overriding the derived default.
func (t Target) WithCheckZone(zone geometry.Rect) Target {
	t.zone = &zone
	return t
}

// Describe renders the target for logs and the action journal.
func (t Target) Describe() string {
	if t.absolute {
		return fmt.Sprintf("absolute %s", t.point)
	}
	if t.template != nil {
		return fmt.Sprintf("template %q", t.template.Name)
	}
	return "empty target"
}

// Resolved is the product of resolving a Target at a point in time: the
// point to act on and the region to watch afterwards. It is built per verb
// invocation and discarded with it.
type Resolved struct {
	// Point is where the action lands, in scaled units.
	Point geometry.Point
	// CheckZone is the region verification watches, in scaled units.
	CheckZone geometry.Rect
	// Score is the match confidence that produced the point: 1.0 for
	// absolute targets, the strategy's score for visual ones.
	Score float64
}
