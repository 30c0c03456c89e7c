package camera

import (
	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// orientationTracker holds the player's intended look orientation, separate from the swayed orientation
// written to the object. The quaternion is authoritative; the Euler angles are re-extracted from it on
// every pointer movement so changes made through set are never overwritten by stale angles.
type orientationTracker struct {
	base        mgl32.Quat
	pitch       float32
	yaw         float32
	roll        float32
	sensitivity float32
}

func newOrientationTracker(q mgl32.Quat, sensitivity float32) orientationTracker {
	pitch, yaw, _ := common.QuatToEuler(q)
	o := orientationTracker{sensitivity: sensitivity}
	o.set(yaw, pitch)
	return o
}

// applyPointerDelta turns pixels into radians. Moving right turns right (yaw decreases) and moving down
// looks down (pitch decreases). Yaw is left unbounded; pitch is clamped to straight up or down.
func (o *orientationTracker) applyPointerDelta(dx, dy float32) {
	pitch, yaw, _ := common.QuatToEuler(o.base)
	yaw -= dx * o.sensitivity
	pitch -= dy * o.sensitivity
	o.set(yaw, pitch)
}

// set stores yaw and a clamped pitch with zero roll.
func (o *orientationTracker) set(yaw, pitch float32) {
	o.pitch = common.Clamp(pitch, -common.HalfPi, common.HalfPi)
	o.yaw = yaw
	o.roll = 0
	o.base = common.EulerToQuat(o.pitch, o.yaw, o.roll)
}

// swayed returns the base Euler angles offset by noise. Each n is in [0, 1) and maps to an offset in
// (-amplitude, amplitude].
func (o *orientationTracker) swayed(n [3]float32, amplitude float32) mgl32.Quat {
	return common.EulerToQuat(
		o.pitch+(1-2*n[0])*amplitude,
		o.yaw+(1-2*n[1])*amplitude,
		o.roll+(1-2*n[2])*amplitude,
	)
}

// ForwardDirection writes the unit vector an orientation faces (-Z rotated by q) into out.
//
// Parameters:
//   - q: the orientation
//   - out: destination vector
//
// Returns:
//   - *mgl32.Vec3: out, for chaining
func ForwardDirection(q mgl32.Quat, out *mgl32.Vec3) *mgl32.Vec3 {
	*out = q.Rotate(common.AxisZ.Mul(-1))
	return out
}
