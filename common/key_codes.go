package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyF     = 70  // F key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// keyNames maps the names accepted in config files to key codes.
var keyNames = map[string]uint32{
	"w":          KeyW,
	"a":          KeyA,
	"s":          KeyS,
	"d":          KeyD,
	"r":          KeyR,
	"f":          KeyF,
	"q":          KeyQ,
	"e":          KeyE,
	"space":      KeySpace,
	"esc":        KeyEsc,
	"escape":     KeyEsc,
	"right":      KeyRight,
	"left":       KeyLeft,
	"down":       KeyDown,
	"up":         KeyUp,
	"leftshift":  KeyLeftShift,
	"rightshift": KeyRightShift,
}

// KeyByName resolves a human-readable key name (case-insensitive, e.g. "W", "Up", "Space") to its key code.
// Single ASCII letters and digits not in the table resolve to their uppercase ASCII value, matching GLFW.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is not recognized
func KeyByName(name string) (uint32, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if code, ok := keyNames[n]; ok {
		return code, true
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c - 'a' + 'A'), true
		case c >= '0' && c <= '9':
			return uint32(c), true
		}
	}
	return 0, false
}
