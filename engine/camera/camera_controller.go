package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNilObject is returned when a controller is constructed without an object to drive.
	ErrNilObject = errors.New("camera: controlled object is required")

	// ErrNilSurface is returned when a controller is constructed without an input surface.
	// There is no fallback surface: without one the controller would never receive input.
	ErrNilSurface = errors.New("camera: input surface is required")
)

// ControlledObject is the externally owned transform a controller writes every frame.
// game_object.GameObject satisfies it.
type ControlledObject interface {
	// Position returns the world-space position.
	Position() mgl32.Vec3

	// SetPosition sets the world-space position.
	SetPosition(p mgl32.Vec3)

	// Orientation returns the world-space orientation.
	Orientation() mgl32.Quat

	// SetOrientation sets the world-space orientation.
	SetOrientation(q mgl32.Quat)

	// Up returns the world up vector that planar movement stays perpendicular to.
	Up() mgl32.Vec3
}

// InputListener receives raw input notifications from an InputSurface.
// Surfaces must deliver notifications from the same thread that calls Update.
type InputListener interface {
	// OnPointerMove delivers a relative pointer movement in pixels.
	//
	// Parameters:
	//   - dx: horizontal movement (positive = right)
	//   - dy: vertical movement (positive = down)
	OnPointerMove(dx, dy float32)

	// OnKeyDown delivers a key press.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	OnKeyDown(keyCode uint32)

	// OnKeyUp delivers a key release.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	OnKeyUp(keyCode uint32)

	// OnPointerLockChange delivers the platform's current pointer-capture state.
	//
	// Parameters:
	//   - locked: true if the pointer is captured by this surface
	OnPointerLockChange(locked bool)
}

// InputSurface is the event source a controller attaches to, typically a window.
type InputSurface interface {
	// Subscribe registers a listener for input notifications.
	//
	// Parameters:
	//   - l: the listener
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	Subscribe(l InputListener) (unsubscribe func())

	// RequestPointerLock asks the platform to capture the pointer. The outcome arrives later
	// through OnPointerLockChange and may never arrive.
	RequestPointerLock()

	// ExitPointerLock asks the platform to release the pointer. The outcome arrives through OnPointerLockChange.
	ExitPointerLock()
}

// FirstPersonController turns pointer and keyboard input into a gravity-affected first-person viewpoint
// with a procedural handheld sway. Input notifications update state as they arrive; Update integrates
// motion once per frame and writes the result to the controlled object.
type FirstPersonController interface {
	InputListener

	// Lock requests pointer capture from the surface. The controller only becomes locked when the
	// surface reports the change.
	Lock()

	// Unlock requests release of pointer capture from the surface.
	Unlock()

	// IsLocked reports whether pointer capture is active.
	//
	// Returns:
	//   - bool: true while locked
	IsLocked() bool

	// Update advances the controller by the time elapsed since the previous locked update.
	// It is a no-op while unlocked.
	Update()

	// Object returns the object this controller drives.
	//
	// Returns:
	//   - ControlledObject: the controlled object
	Object() ControlledObject

	// ForwardDirection writes the unit vector the player is facing, without sway, into out.
	//
	// Parameters:
	//   - out: destination vector
	ForwardDirection(out *mgl32.Vec3)

	// Yaw returns the player's heading in radians, without sway.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the player's look elevation in radians, without sway. Always within [-Pi/2, Pi/2].
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// SetOrientation replaces the player's heading and elevation. Subsequent pointer movement continues
	// from these angles. Pitch is clamped.
	//
	// Parameters:
	//   - yaw: heading in radians
	//   - pitch: elevation in radians
	SetOrientation(yaw, pitch float32)

	// Velocity returns the current velocity. X and Z are in the player's local frame, Y is world vertical.
	//
	// Returns:
	//   - mgl32.Vec3: the velocity
	Velocity() mgl32.Vec3

	// Input returns the currently held movement actions.
	//
	// Returns:
	//   - input.Flags: snapshot of the movement flags
	Input() input.Flags

	// OnLock registers fn to run each time the surface reports pointer capture.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - func(): removes the callback
	OnLock(fn func()) (cancel func())

	// OnUnlock registers fn to run each time the surface reports pointer release.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - func(): removes the callback
	OnUnlock(fn func()) (cancel func())

	// Close detaches the controller from its input surface. Safe to call more than once.
	Close()
}
