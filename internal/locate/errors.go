package locate

import "fmt"

// NoMatchError is a specific, typed error for a template that was searched
// for and not found. It carries the best score seen and the threshold it
// failed to reach so callers can tell a near miss from a blank.
type NoMatchError struct {
	Template  string
	Score     float64
	Threshold float64
}

// Error implements the error interface by formatting the message on the fly.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("template %q not found: best score %.3f below threshold %.3f", e.Template, e.Score, e.Threshold)
}

// TemplateTooLargeError is returned when a template cannot fit inside its
// search region at even one position.
type TemplateTooLargeError struct {
	Template      string
	Width, Height int
	RegionWidth   int
	RegionHeight  int
}

// Error implements the error interface.
func (e *TemplateTooLargeError) Error() string {
	return fmt.Sprintf("template %q (%dx%d) is larger than its %dx%d search region",
		e.Template, e.Width, e.Height, e.RegionWidth, e.RegionHeight)
}

// NotImplementedError is returned for strategies that are named in the
// vocabulary but have no working implementation. Surfacing it explicitly
// beats silently resolving to nothing.
type NotImplementedError struct {
	Kind Kind
}

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("location strategy %q is not implemented", e.Kind)
}
