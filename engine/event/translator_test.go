package event

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/input"
	"github.com/stretchr/testify/assert"
)

func newTestTranslator(buf *bytes.Buffer) *Translator {
	return NewTranslator(WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
}

func TestDispatchAppliesInOrder(t *testing.T) {
	var logs bytes.Buffer
	tr := newTestTranslator(&logs)
	s := input.NewState(800, 600)

	n := tr.Dispatch(s, []Event{
		Key(common.KeyW, true),
		MouseMove(10, 10),
		MouseMove(15, 12),
		Scroll(0, 1),
		Scroll(0, 2),
		Key(common.KeyW, false),
		Key(common.KeyA, true),
	})

	assert.Equal(t, 7, n)
	assert.False(t, s.IsPressed(common.KeyW))
	assert.True(t, s.IsPressed(common.KeyA))
	dx, dy := s.ConsumeMouseDelta()
	assert.Equal(t, 5.0, dx)
	assert.Equal(t, 2.0, dy)
	assert.Equal(t, 3.0, s.ConsumeScroll())
	assert.Empty(t, logs.String())
}

func TestDispatchStopsOnCloseAndEscape(t *testing.T) {
	tr := NewTranslator()

	s := input.NewState(800, 600)
	tr.Dispatch(s, []Event{Close()})
	assert.False(t, s.Running())

	s = input.NewState(800, 600)
	tr.Dispatch(s, []Event{Key(common.KeyEsc, true)})
	assert.False(t, s.Running())
	assert.False(t, s.IsPressed(common.KeyEsc))
}

func TestQuitKeyCanBeDisabled(t *testing.T) {
	tr := NewTranslator(WithQuitKey(common.KeyUnknown))
	s := input.NewState(800, 600)

	tr.Dispatch(s, []Event{Key(common.KeyEsc, true)})
	assert.True(t, s.Running())
	assert.True(t, s.IsPressed(common.KeyEsc))
}

func TestFocusAndEnterReseedPointer(t *testing.T) {
	tr := NewTranslator()
	s := input.NewState(800, 600)

	tr.Dispatch(s, []Event{MouseMove(0, 0), Focus(true), MouseMove(300, 300)})
	dx, dy := s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.True(t, s.Focused())

	tr.Dispatch(s, []Event{CursorEnter(true), MouseMove(10, 10), MouseMove(11, 10)})
	dx, _ = s.ConsumeMouseDelta()
	assert.Equal(t, 1.0, dx)

	tr.Dispatch(s, []Event{Focus(false)})
	assert.False(t, s.Focused())
}

func TestResize(t *testing.T) {
	tr := NewTranslator()
	s := input.NewState(800, 600)

	tr.Dispatch(s, []Event{Resize(1280, 720)})
	w, h, ok := s.TakeResize()
	assert.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestMalformedEventsAreIgnored(t *testing.T) {
	var logs bytes.Buffer
	tr := newTestTranslator(&logs)
	s := input.NewState(800, 600)

	n := tr.Dispatch(s, []Event{
		Resize(0, 600),
		MouseMove(math.NaN(), 1),
		Scroll(0, math.Inf(1)),
		Key(-5, true),
		{Kind: Kind(99)},
		Key(common.KeyD, true),
	})

	assert.Equal(t, 1, n)
	assert.True(t, s.Running())
	assert.True(t, s.IsPressed(common.KeyD))
	_, _, resized := s.TakeResize()
	assert.False(t, resized)
	assert.Zero(t, s.ConsumeScroll())
	assert.Contains(t, logs.String(), "ignoring malformed event")
	assert.Contains(t, logs.String(), "kind(99)")
}

func TestUnmappedKeysAreSkippedSilently(t *testing.T) {
	var logs bytes.Buffer
	tr := newTestTranslator(&logs)
	s := input.NewState(800, 600)

	n := tr.Dispatch(s, []Event{
		Key(common.KeyUnknown, true),
		Key(common.KeyUnknown, false),
		Key(common.KeyW, true),
	})

	assert.Equal(t, 1, n)
	assert.True(t, s.Running())
	assert.True(t, s.IsPressed(common.KeyW))
	assert.False(t, s.IsPressed(common.KeyUnknown))
	assert.Empty(t, logs.String())
}

func TestPointerOutsideFloat32RangeIsMalformed(t *testing.T) {
	var logs bytes.Buffer
	tr := newTestTranslator(&logs)
	s := input.NewState(800, 600)

	n := tr.Dispatch(s, []Event{MouseMove(1e300, 0), Scroll(0, -1e300)})

	assert.Zero(t, n)
	assert.Zero(t, s.ConsumeScroll())
	assert.Contains(t, logs.String(), "non-finite pointer position")
}
