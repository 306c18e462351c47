package common

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("Info")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestKeyCodeRoundTrip(t *testing.T) {
	for _, k := range []KeyCode{KeyW, KeySpace, KeyLeftShift, KeyEsc} {
		got, ok := ParseKeyCode(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}

	got, ok := ParseKeyCode("w")
	assert.True(t, ok)
	assert.Equal(t, KeyW, got)

	_, ok = ParseKeyCode("Hyper")
	assert.False(t, ok)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
