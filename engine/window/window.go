package window

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
)

// Window provides platform windowing and input event handling.
// It is a camera.InputSurface: listeners receive key presses, relative pointer motion, and pointer-lock
// changes on the thread running ProcessMessages.
type Window interface {
	camera.InputSurface

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// PointerLocked reports whether the pointer is currently captured by this window.
	//
	// Returns:
	//   - bool: true while captured
	PointerLocked() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, input listeners, and pointer tracking.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// clickToLock requests pointer lock on a left click while unlocked.
	clickToLock bool

	// escapeUnlocks releases pointer lock on Escape; a second Escape closes the window.
	escapeUnlocks bool

	logger *slog.Logger

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	listenersMu sync.Mutex
	listeners   []listenerEntry
	nextID      int

	// pointer tracking: GLFW reports virtual cursor positions while captured; listeners want deltas.
	locked  bool
	hasLast bool
	lastX   float64
	lastY   float64
}

type listenerEntry struct {
	id int
	l  camera.InputListener
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies defaults and options without touching the platform.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:         "Oxy First Person",
		width:         1280,
		height:        720,
		clickToLock:   true,
		escapeUnlocks: true,
		logger:        slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Subscribe(l camera.InputListener) func() {
	w.listenersMu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners = append(w.listeners, listenerEntry{id: id, l: l})
	w.listenersMu.Unlock()

	return func() {
		w.listenersMu.Lock()
		defer w.listenersMu.Unlock()
		for i, e := range w.listeners {
			if e.id == id {
				w.listeners = append(w.listeners[:i:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

func (w *engineWindow) RequestPointerLock() {
	if w.locked {
		return
	}
	if !platformSetPointerCaptured(w, true) {
		w.logger.Warn("pointer lock request ignored: window not initialized")
		return
	}
	w.setPointerLocked(true)
}

func (w *engineWindow) ExitPointerLock() {
	if !w.locked {
		return
	}
	platformSetPointerCaptured(w, false)
	w.setPointerLocked(false)
}

func (w *engineWindow) PointerLocked() bool {
	return w.locked
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// --- event dispatch (called from platform callbacks) ---

// snapshot copies the listener list so listeners may unsubscribe while being notified.
func (w *engineWindow) snapshot() []camera.InputListener {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()
	out := make([]camera.InputListener, len(w.listeners))
	for i, e := range w.listeners {
		out[i] = e.l
	}
	return out
}

// setPointerLocked records the capture state, resets delta tracking, and notifies listeners.
func (w *engineWindow) setPointerLocked(locked bool) {
	w.locked = locked
	w.hasLast = false
	w.logger.Debug("pointer lock changed", "locked", locked)
	for _, l := range w.snapshot() {
		l.OnPointerLockChange(locked)
	}
}

// dispatchKey routes a key event. Escape is reserved: it releases the pointer while locked and otherwise
// reports whether the window should close.
//
// Returns:
//   - bool: true if the window should close
func (w *engineWindow) dispatchKey(keyCode uint32, pressed bool) bool {
	if keyCode == common.KeyEsc && w.escapeUnlocks {
		if !pressed {
			return false
		}
		if w.locked {
			w.ExitPointerLock()
			return false
		}
		return true
	}
	for _, l := range w.snapshot() {
		if pressed {
			l.OnKeyDown(keyCode)
		} else {
			l.OnKeyUp(keyCode)
		}
	}
	return false
}

// dispatchCursor converts an absolute cursor position into a relative movement. The first position after a
// lock change only establishes the baseline.
func (w *engineWindow) dispatchCursor(x, y float64) {
	if !w.hasLast {
		w.lastX, w.lastY = x, y
		w.hasLast = true
		return
	}
	dx := float32(x - w.lastX)
	dy := float32(y - w.lastY)
	w.lastX, w.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	for _, l := range w.snapshot() {
		l.OnPointerMove(dx, dy)
	}
}

// dispatchPrimaryClick handles a left click: it requests pointer lock when click-to-lock is enabled.
func (w *engineWindow) dispatchPrimaryClick() {
	if w.clickToLock && !w.locked {
		w.RequestPointerLock()
	}
}

// dispatchFocus releases the pointer when the window loses focus, since the platform drops capture anyway.
func (w *engineWindow) dispatchFocus(focused bool) {
	if !focused && w.locked {
		platformSetPointerCaptured(w, false)
		w.setPointerLocked(false)
	}
}
