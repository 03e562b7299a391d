package schemas

import "time"

// -- Low-Level Input Event Schemas --

// MouseEventType defines the type of a mouse event.
type MouseEventType string

const (
	MouseMove    MouseEventType = "mouseMoved"
	MousePress   MouseEventType = "mousePressed"
	MouseRelease MouseEventType = "mouseReleased"
	MouseWheel   MouseEventType = "mouseWheel"
)

// MouseButton defines the mouse button being pressed.
type MouseButton string

const (
	ButtonNone   MouseButton = "none"
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// MouseEventData encapsulates all data for a mouse event. Coordinates are
// physical pixels, origin at the top-left of the virtual desktop.
type MouseEventData struct {
	Type       MouseEventType `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Button     MouseButton    `json:"button"`
	ClickCount int            `json:"clickCount,omitempty"`
	DeltaX     float64        `json:"deltaX,omitempty"`
	DeltaY     float64        `json:"deltaY,omitempty"`
}

// KeyEventType defines the type of a keyboard event.
type KeyEventType string

const (
	KeyDown KeyEventType = "keyDown"
	KeyUp   KeyEventType = "keyUp"
	KeyTap  KeyEventType = "keyTap"
)

// Key names follow the X11 keysym convention, which both the X and the
// Windows injector translate into their native vocabularies.
const (
	KeyReturn    = "Return"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyBackSpace = "BackSpace"
	KeySpace     = "space"
	KeyPageUp    = "Page_Up"
	KeyPageDown  = "Page_Down"
	KeyEnd       = "End"
	KeyHome      = "Home"
)

// KeyEventData encapsulates all data for a single key event. Hold is the
// press-to-release duration for KeyTap events; zero means the injector's
// native tap timing.
type KeyEventData struct {
	Type KeyEventType  `json:"type"`
	Key  string        `json:"key"`
	Hold time.Duration `json:"hold,omitempty"`
}

// ScrollDirection names a vertical wheel direction.
type ScrollDirection string

const (
	ScrollUp   ScrollDirection = "up"
	ScrollDown ScrollDirection = "down"
)

// -- Action Journal Schemas --

// ActionOutcome is the terminal state of a fired action.
type ActionOutcome string

const (
	OutcomeSucceeded ActionOutcome = "succeeded"
	OutcomeTimedOut  ActionOutcome = "timed_out"
	OutcomeFailed    ActionOutcome = "failed"
)

// ActionRecord is one entry in the action journal, written per fired verb
// when debug artifacts are enabled.
type ActionRecord struct {
	ID        string        `json:"id"`
	Verb      string        `json:"verb"`
	Target    string        `json:"target"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Outcome   ActionOutcome `json:"outcome"`
	Error     string        `json:"error,omitempty"`
}
