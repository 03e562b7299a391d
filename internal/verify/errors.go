package verify

import (
	"fmt"
	"time"
)

// TimeoutError reports that an await exhausted its deadline without the
// watched region reaching the desired condition. Elapsed is the true time
// spent polling, which can exceed the nominal timeout by up to one poll
// interval plus capture cost.
type TimeoutError struct {
	Condition Condition
	Elapsed   time.Duration
}

// NewTimeoutError creates a TimeoutError for the given awaited condition.
func NewTimeoutError(cond Condition, elapsed time.Duration) *TimeoutError {
	return &TimeoutError{Condition: cond, Elapsed: elapsed}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("ui verification timed out after %s awaiting %s", e.Elapsed, e.Condition)
}
