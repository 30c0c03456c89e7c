package camera

import (
	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// motionIntegrator owns the player's velocity. Velocity X and Z are in the player's local frame
// (right and forward, negated), Y is world vertical. Integration is explicit Euler.
type motionIntegrator struct {
	velocity mgl32.Vec3

	drag         float32
	gravity      float32
	mass         float32
	accel        float32
	groundHeight float32
}

func newMotionIntegrator() motionIntegrator {
	return motionIntegrator{
		drag:         DefaultDrag,
		gravity:      DefaultGravity,
		mass:         DefaultMass,
		accel:        DefaultMoveAcceleration,
		groundHeight: DefaultGroundHeight,
	}
}

// MovementDirection derives the intended planar direction from held actions: Z is forward minus
// backward, X is right minus left. Diagonals are normalized so they are no faster than a single axis.
//
// Parameters:
//   - flags: held movement actions
//
// Returns:
//   - mgl32.Vec3: unit direction, or the zero vector when nothing (or only opposing keys) is held
func MovementDirection(flags input.Flags) mgl32.Vec3 {
	var dir mgl32.Vec3
	dir[2] = boolToFloat(flags.Forward) - boolToFloat(flags.Backward)
	dir[0] = boolToFloat(flags.Right) - boolToFloat(flags.Left)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return dir
}

// accelerate applies drag, gravity, and movement input to the velocity for a frame of delta seconds.
func (m *motionIntegrator) accelerate(flags input.Flags, delta float32) {
	m.velocity[0] -= m.velocity[0] * m.drag * delta
	m.velocity[2] -= m.velocity[2] * m.drag * delta
	m.velocity[1] -= m.gravity * m.mass * delta

	dir := MovementDirection(flags)
	if flags.Forward || flags.Backward {
		m.velocity[2] -= dir.Z() * m.accel * delta
	}
	if flags.Left || flags.Right {
		m.velocity[0] -= dir.X() * m.accel * delta
	}
}

// step runs one frame: accelerate, move obj along its own right axis and ground-parallel forward axis,
// apply vertical velocity, then clamp to the floor.
func (m *motionIntegrator) step(obj ControlledObject, flags input.Flags, delta float32) {
	m.accelerate(flags, delta)

	q := obj.Orientation()
	right := common.LocalRight(q)
	forward := common.HorizontalForward(q, obj.Up())

	pos := obj.Position()
	pos = pos.Add(right.Mul(-m.velocity[0] * delta))
	pos = pos.Add(forward.Mul(-m.velocity[2] * delta))
	pos[1] += m.velocity[1] * delta

	if pos[1] < m.groundHeight {
		m.velocity[1] = 0
		pos[1] = m.groundHeight
	}
	obj.SetPosition(pos)
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
