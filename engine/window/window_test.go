package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/event"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindowDefaultsAndOptions(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "oxy-lit", w.title)
	assert.True(t, w.captureCursor)
	assert.Equal(t, -1, w.maxWidth)

	w = newEngineWindow(WithTitle("demo"), WithSize(800, 600), WithMinSize(100, 50), WithMaxSize(1920, 1080), WithCursorCaptured(false))
	assert.Equal(t, "demo", w.title)
	width, height := w.FramebufferSize()
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 1080, w.maxHeight)
	assert.False(t, w.captureCursor)
}

func TestDrainReturnsEventsInOrder(t *testing.T) {
	w := newEngineWindow()
	w.push(event.Key(common.KeyW, true))
	w.push(event.MouseMove(10, 20))
	w.push(event.Resize(640, 480))

	got := w.drain(false)
	assert.Equal(t, []event.Event{
		event.Key(common.KeyW, true),
		event.MouseMove(10, 20),
		event.Resize(640, 480),
	}, got)
	assert.Empty(t, w.drain(false))
}

func TestDrainEmitsCloseOnce(t *testing.T) {
	w := newEngineWindow()
	w.push(event.Scroll(0, 1))

	got := w.drain(true)
	assert.Equal(t, []event.Event{event.Scroll(0, 1), event.Close()}, got)
	assert.Empty(t, w.drain(true))
}

func TestPollWithoutPlatformWindowRequestsClose(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, []event.Event{event.Close()}, w.Poll())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestKeyCodeMatchesGLFW(t *testing.T) {
	assert.Equal(t, common.KeyW, keyCode(glfw.KeyW))
	assert.Equal(t, common.KeyEsc, keyCode(glfw.KeyEscape))
	assert.Equal(t, common.KeyLeftShift, keyCode(glfw.KeyLeftShift))
	assert.Equal(t, common.KeySpace, keyCode(glfw.KeySpace))
	assert.Equal(t, common.KeyUnknown, keyCode(glfw.KeyUnknown))
}
