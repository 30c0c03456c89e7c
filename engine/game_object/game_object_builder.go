package game_object

import (
	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts enabled.
//
// Parameters:
//   - enabled: true to enable the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial orientation from Y-X-Z ordered Euler angles.
//
// Parameters:
//   - rx, ry, rz: pitch, yaw, roll in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the orientation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.orientation = common.EulerToQuat(rx, ry, rz)
	}
}

// WithScale sets the initial scale factors.
//
// Parameters:
//   - sx, sy, sz: scale along each axis
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithUp sets the world up vector. Zero vectors are ignored.
//
// Parameters:
//   - x, y, z: up direction; normalized on assignment
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the up vector
func WithUp(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		up := mgl32.Vec3{x, y, z}
		if up.Len() == 0 {
			return
		}
		obj.up = up.Normalize()
	}
}
