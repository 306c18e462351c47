package event

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/input"
)

// Translator applies normalized events to an input.State. It is the only
// component that interprets platform events.
type Translator struct {
	logger  *slog.Logger
	quitKey common.KeyCode
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger used to report malformed events.
func WithLogger(l *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = l
	}
}

// WithQuitKey overrides the key that stops the loop. KeyUnknown disables it.
func WithQuitKey(code common.KeyCode) TranslatorOption {
	return func(t *Translator) {
		t.quitKey = code
	}
}

// NewTranslator creates a Translator that stops the loop on Escape.
func NewTranslator(options ...TranslatorOption) *Translator {
	t := &Translator{quitKey: common.KeyEsc}
	for _, opt := range options {
		opt(t)
	}
	t.logger = common.LoggerOr(t.logger)
	return t
}

// Dispatch applies events to state in order. Malformed events are logged and skipped;
// unmapped keys (KeyUnknown) are skipped silently.
//
// Parameters:
//   - state: the input state to mutate
//   - events: the drained events for this frame
//
// Returns:
//   - int: the number of events applied
func (t *Translator) Dispatch(state *input.State, events []Event) int {
	applied := 0
	for _, ev := range events {
		// GLFW reports keys it cannot map (media keys and the like) as KeyUnknown.
		if ev.Kind == KindKey && ev.Key == common.KeyUnknown {
			continue
		}
		if err := t.apply(state, ev); err != nil {
			t.logger.Warn("ignoring malformed event", "kind", ev.Kind.String(), "error", err)
			continue
		}
		applied++
	}
	return applied
}

func (t *Translator) apply(state *input.State, ev Event) error {
	switch ev.Kind {
	case KindClose:
		state.Stop()
	case KindKey:
		if ev.Key < 0 {
			return fmt.Errorf("invalid key code %d", int(ev.Key))
		}
		if ev.Key == t.quitKey && t.quitKey != common.KeyUnknown {
			state.Stop()
			return nil
		}
		state.UpdateKey(ev.Key, ev.Pressed)
	case KindMouseMove:
		if !finite(ev.X) || !finite(ev.Y) {
			return fmt.Errorf("non-finite pointer position (%v, %v)", ev.X, ev.Y)
		}
		state.UpdateMousePos(ev.X, ev.Y)
	case KindScroll:
		if !finite(ev.Y) {
			return fmt.Errorf("non-finite scroll offset %v", ev.Y)
		}
		state.UpdateScroll(ev.Y)
	case KindResize:
		if ev.Width <= 0 || ev.Height <= 0 {
			return fmt.Errorf("invalid viewport %dx%d", ev.Width, ev.Height)
		}
		state.Resize(ev.Width, ev.Height)
	case KindFocus:
		if ev.Active {
			state.MarkFocused()
		} else {
			state.SetUnfocused()
		}
	case KindCursorEnter:
		if ev.Active {
			state.MarkMouseEntered()
		}
	default:
		return fmt.Errorf("unknown event kind %d", int(ev.Kind))
	}
	return nil
}

// finite reports whether v survives the float32 conversion the camera applies.
func finite(v float64) bool {
	return common.IsFinite(float32(v))
}
