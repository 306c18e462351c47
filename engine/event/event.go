// Package event defines the normalized window/input event records produced by the
// platform layer and the translator that applies them to input state.
package event

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lit/common"
)

// Kind identifies the type of an Event.
type Kind int

const (
	KindClose Kind = iota
	KindKey
	KindMouseMove
	KindScroll
	KindResize
	KindFocus
	KindCursorEnter
)

func (k Kind) String() string {
	switch k {
	case KindClose:
		return "close"
	case KindKey:
		return "key"
	case KindMouseMove:
		return "mouse-move"
	case KindScroll:
		return "scroll"
	case KindResize:
		return "resize"
	case KindFocus:
		return "focus"
	case KindCursorEnter:
		return "cursor-enter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one normalized platform event. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// Key and Pressed are set for KindKey.
	Key     common.KeyCode
	Pressed bool

	// X and Y hold the pointer position for KindMouseMove, or the scroll offsets for KindScroll.
	X, Y float64

	// Width and Height are set for KindResize.
	Width, Height int

	// Active is set for KindFocus (gained) and KindCursorEnter (entered).
	Active bool
}

// Source yields the events that arrived since the previous call.
// Poll must return promptly when nothing is pending.
type Source interface {
	// Poll drains and returns the queued events in arrival order.
	//
	// Returns:
	//   - []Event: the drained events, possibly empty
	Poll() []Event
}

// Close builds a window close request.
func Close() Event { return Event{Kind: KindClose} }

// Key builds a key press or release.
func Key(code common.KeyCode, pressed bool) Event {
	return Event{Kind: KindKey, Key: code, Pressed: pressed}
}

// MouseMove builds an absolute pointer motion.
func MouseMove(x, y float64) Event { return Event{Kind: KindMouseMove, X: x, Y: y} }

// Scroll builds a scroll wheel event with line offsets.
func Scroll(dx, dy float64) Event { return Event{Kind: KindScroll, X: dx, Y: dy} }

// Resize builds a framebuffer resize.
func Resize(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// Focus builds a focus gained/lost event.
func Focus(gained bool) Event { return Event{Kind: KindFocus, Active: gained} }

// CursorEnter builds a pointer enter/leave event.
func CursorEnter(entered bool) Event { return Event{Kind: KindCursorEnter, Active: entered} }
