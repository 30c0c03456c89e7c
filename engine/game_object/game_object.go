package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	mu          sync.RWMutex
	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3
	up          mgl32.Vec3
}

// GameObject defines the interface for a scene entity with a world transform.
// Controllers drive it by writing position and orientation; renderers read them back.
// All transform accessors are safe for concurrent use.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name, or empty if unset
	Name() string

	// Enabled returns whether this object is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the object's world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Orientation returns the object's world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Orientation() mgl32.Quat

	// SetOrientation sets the object's world-space orientation. The quaternion is normalized.
	//
	// Parameters:
	//   - q: the new orientation
	SetOrientation(q mgl32.Quat)

	// Rotation returns the orientation as Y-X-Z ordered Euler angles.
	//
	// Returns:
	//   - rx, ry, rz: pitch, yaw, roll in radians
	Rotation() (rx, ry, rz float32)

	// SetRotation sets the orientation from Y-X-Z ordered Euler angles.
	//
	// Parameters:
	//   - rx, ry, rz: pitch, yaw, roll in radians
	SetRotation(rx, ry, rz float32)

	// Scale returns the object's scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: scale along each axis
	Scale() mgl32.Vec3

	// SetScale sets the object's scale factors.
	//
	// Parameters:
	//   - s: scale along each axis
	SetScale(s mgl32.Vec3)

	// Up returns the object's world up vector used for ground-parallel movement.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector (defaults to +Y)
	Up() mgl32.Vec3

	// Translate moves the object by offset in world space.
	//
	// Parameters:
	//   - offset: world-space displacement
	Translate(offset mgl32.Vec3)

	// ModelMatrix returns the object's model matrix (translation * rotation * scale).
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// The object starts enabled at the origin, unrotated, with unit scale and +Y up.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		orientation: mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		up:          common.AxisY,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) Orientation() mgl32.Quat {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.orientation
}

func (g *gameObject) SetOrientation(q mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orientation = q.Normalize()
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return common.QuatToEuler(g.Orientation())
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.SetOrientation(common.EulerToQuat(rx, ry, rz))
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s
}

func (g *gameObject) Up() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.up
}

func (g *gameObject) Translate(offset mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = g.position.Add(offset)
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t := mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z())
	s := mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z())
	return t.Mul4(g.orientation.Mat4()).Mul4(s)
}
