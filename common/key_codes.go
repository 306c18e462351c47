package common

// KeyCode identifies a keyboard key independent of the windowing backend.
// Values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode int

const (
	KeyUnknown KeyCode = -1

	KeyW     KeyCode = 87  // W key (ASCII)
	KeyA     KeyCode = 65  // A key (ASCII)
	KeyS     KeyCode = 83  // S key (ASCII)
	KeyD     KeyCode = 68  // D key (ASCII)
	KeyQ     KeyCode = 81  // Q key (ASCII)
	KeyE     KeyCode = 69  // E key (ASCII)
	KeySpace KeyCode = 32  // Spacebar (ASCII)
	KeyEsc   KeyCode = 256 // Escape key (GLFW)

	KeyRight KeyCode = 262 // Right arrow (GLFW)
	KeyLeft  KeyCode = 263 // Left arrow (GLFW)
	KeyDown  KeyCode = 264 // Down arrow (GLFW)
	KeyUp    KeyCode = 265 // Up arrow (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift    KeyCode = 340 // Left Shift (GLFW)
	KeyLeftControl  KeyCode = 341 // Left Control (GLFW)
	KeyRightShift   KeyCode = 344 // Right Shift (GLFW)
	KeyRightControl KeyCode = 345 // Right Control (GLFW)
)

var keyNames = map[KeyCode]string{
	KeyW:            "W",
	KeyA:            "A",
	KeyS:            "S",
	KeyD:            "D",
	KeyQ:            "Q",
	KeyE:            "E",
	KeySpace:        "Space",
	KeyEsc:          "Escape",
	KeyRight:        "Right",
	KeyLeft:         "Left",
	KeyDown:         "Down",
	KeyUp:           "Up",
	KeyLeftShift:    "LeftShift",
	KeyLeftControl:  "LeftControl",
	KeyRightShift:   "RightShift",
	KeyRightControl: "RightControl",
}

// String returns a readable key name for logging.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 32 && k < 127 {
		return string(rune(k))
	}
	return "Unknown"
}

// ParseKeyCode resolves a key name produced by String back into a KeyCode.
//
// Parameters:
//   - name: the key name, e.g. "W" or "LeftShift"
//
// Returns:
//   - KeyCode: the key, or KeyUnknown
//   - bool: whether the name was recognized
func ParseKeyCode(name string) (KeyCode, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	if len(name) == 1 && name[0] >= 32 && name[0] < 127 {
		c := name[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		return KeyCode(c), true
	}
	return KeyUnknown, false
}
