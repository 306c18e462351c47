package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/stretchr/testify/assert"
)

func TestUpdateKeyLastWriteWins(t *testing.T) {
	s := NewState(800, 600)

	s.UpdateKey(common.KeyW, true)
	s.UpdateKey(common.KeyW, true)
	assert.True(t, s.IsPressed(common.KeyW))

	s.UpdateKey(common.KeyW, false)
	assert.False(t, s.IsPressed(common.KeyW))
	assert.False(t, s.IsPressed(common.KeyA))
}

func TestFirstMouseSampleAfterFocusHasNoDelta(t *testing.T) {
	s := NewState(800, 600)
	s.UpdateMousePos(100, 100)
	s.UpdateMousePos(110, 95)
	s.ConsumeMouseDelta()

	s.MarkFocused()
	s.UpdateMousePos(500, 400)
	dx, dy := s.ConsumeMouseDelta()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.0, dy)

	s.UpdateMousePos(503, 398)
	dx, dy = s.ConsumeMouseDelta()
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -2.0, dy)
}

func TestInitialSampleHasNoDelta(t *testing.T) {
	s := NewState(800, 600)
	s.UpdateMousePos(400, 300)

	dx, dy := s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	x, y := s.MousePosition()
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestMouseEnteredReseeds(t *testing.T) {
	s := NewState(800, 600)
	s.UpdateMousePos(0, 0)
	s.MarkMouseEntered()
	s.UpdateMousePos(700, 500)

	dx, dy := s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestDeltaAccumulatesUntilConsumed(t *testing.T) {
	s := NewState(800, 600)
	s.UpdateMousePos(0, 0)
	s.UpdateMousePos(2, 1)
	s.UpdateMousePos(5, 3)

	dx, dy := s.ConsumeMouseDelta()
	assert.Equal(t, 5.0, dx)
	assert.Equal(t, 3.0, dy)

	dx, dy = s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestScrollAccumulatesAndResets(t *testing.T) {
	s := NewState(800, 600)
	s.UpdateScroll(1)
	s.UpdateScroll(-0.5)

	assert.Equal(t, 0.5, s.ConsumeScroll())
	assert.Zero(t, s.ConsumeScroll())
}

func TestResizeSignalledOnce(t *testing.T) {
	s := NewState(800, 600)
	_, _, ok := s.TakeResize()
	assert.False(t, ok)

	s.Resize(1024, 768)
	w, h, ok := s.TakeResize()
	assert.True(t, ok)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	_, _, ok = s.TakeResize()
	assert.False(t, ok)
}

func TestUnfocusReleasesKeys(t *testing.T) {
	s := NewState(800, 600)
	s.MarkFocused()
	s.UpdateKey(common.KeyW, true)

	s.SetUnfocused()
	assert.False(t, s.Focused())
	assert.False(t, s.IsPressed(common.KeyW))
}

func TestStop(t *testing.T) {
	s := NewState(800, 600)
	assert.True(t, s.Running())
	s.Stop()
	assert.False(t, s.Running())
}
