// Package verify implements the interface-change verification engine: a
// polling state machine that watches one region of the screen and reports
// whether it reached the desired condition, changed or stable, before a
// deadline. The engine owns no policy about what to do on timeout; that
// belongs to the verbs and ultimately their callers.
package verify

import "time"

// State names the engine's position in its lifecycle. The engine is Idle
// between awaits, Awaiting while polling, and parks on Succeeded or
// TimedOut when an await finishes.
type State string

const (
	StateIdle      State = "idle"
	StateAwaiting  State = "awaiting"
	StateSucceeded State = "succeeded"
	StateTimedOut  State = "timed_out"
)

// Condition is the relation between the reference frame and the live
// screen that an await is waiting for.
type Condition string

const (
	// AwaitChange waits for the watched region to differ from the
	// reference beyond tolerance: the action visibly did something.
	AwaitChange Condition = "change"
	// AwaitStable waits for the watched region to match the reference
	// within tolerance: nothing unrelated is animating there.
	AwaitStable Condition = "stable"
)

// wantsSame maps the condition onto the frame comparison's boolean world.
func (c Condition) wantsSame() bool {
	return c == AwaitStable
}

// Outcome is the terminal result of one await: how it ended, how long it
// took, how many frames it cost, and the last difference ratio seen. It is
// a transient value, never persisted.
type Outcome struct {
	State    State
	Elapsed  time.Duration
	Polls    int
	LastDiff float64
}

// Succeeded reports whether the awaited condition was reached.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}
