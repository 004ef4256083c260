package lichen

// EventType tags an input event arriving at the compositor.
type EventType uint8

const (
	// EventClick is a pointer press at surface coordinates.
	EventClick EventType = iota
	// EventScroll is a wheel or trackpad delta in device pixels.
	EventScroll
	// EventKey is a printable keystroke.
	EventKey
	// EventBackspace deletes the last character of the focused editor.
	EventBackspace
	// EventEnter commits the focused editor.
	EventEnter
)

var eventTypeNames = [...]string{
	EventClick:     "click",
	EventScroll:    "scroll",
	EventKey:       "key",
	EventBackspace: "backspace",
	EventEnter:     "enter",
}

// String returns the event type's name.
func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// Event is one input event. X and Y are surface coordinates with the
// origin at the top-left of the window, chrome included; the compositor
// translates content-targeted events into page coordinates before they
// reach the main thread.
type Event struct {
	Type  EventType
	X, Y  float64
	Delta float64
	Rune  rune
}

// Click builds a pointer-press event.
func Click(x, y float64) Event { return Event{Type: EventClick, X: x, Y: y} }

// Scroll builds a scroll event. Positive deltas scroll the page down.
func Scroll(delta float64) Event { return Event{Type: EventScroll, Delta: delta} }

// Key builds a printable keystroke event.
func Key(r rune) Event { return Event{Type: EventKey, Rune: r} }

// Backspace builds a backspace event.
func Backspace() Event { return Event{Type: EventBackspace} }

// Enter builds an enter event.
func Enter() Event { return Event{Type: EventEnter} }
