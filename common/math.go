package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// HalfPi is the pitch limit for first-person look. Looking past it would flip the camera over.
const HalfPi = math32.Pi / 2

var (
	// AxisX is the object-space right axis.
	AxisX = mgl32.Vec3{1, 0, 0}
	// AxisY is the world up axis.
	AxisY = mgl32.Vec3{0, 1, 0}
	// AxisZ is the object-space backward axis. Objects face -Z.
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// EulerToQuat builds an orientation from Euler angles applied in Y, X, Z order (yaw, then pitch, then roll).
// This is the conventional order for first-person cameras since yaw never tilts the horizon.
//
// Parameters:
//   - x: pitch in radians (rotation about the lateral axis)
//   - y: yaw in radians (rotation about the vertical axis)
//   - z: roll in radians (rotation about the view axis)
//
// Returns:
//   - mgl32.Quat: the normalized orientation quaternion
func EulerToQuat(x, y, z float32) mgl32.Quat {
	qy := mgl32.QuatRotate(y, AxisY)
	qx := mgl32.QuatRotate(x, AxisX)
	qz := mgl32.QuatRotate(z, AxisZ)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatToEuler extracts Y-X-Z ordered Euler angles from an orientation, the inverse of EulerToQuat.
// The pitch component is always within [-HalfPi, HalfPi]. At the poles roll is folded into yaw
// and reported as 0.
//
// Reference: rotation-matrix decomposition, https://www.geometrictools.com/Documentation/EulerAngles.pdf
//
// Parameters:
//   - q: the orientation quaternion
//
// Returns:
//   - x, y, z: pitch, yaw, and roll in radians
func QuatToEuler(q mgl32.Quat) (x, y, z float32) {
	m := q.Normalize().Mat4()
	m11, m13 := m.At(0, 0), m.At(0, 2)
	m21, m22, m23 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m31, m33 := m.At(2, 0), m.At(2, 2)

	x = math32.Asin(-Clamp(m23, -1, 1))
	if math32.Abs(m23) < 0.9999999 {
		y = math32.Atan2(m13, m33)
		z = math32.Atan2(m21, m22)
	} else {
		y = math32.Atan2(-m31, m11)
		z = 0
	}
	return x, y, z
}

// LocalRight returns the object's right axis (first column of its rotation matrix) in world space.
//
// Parameters:
//   - q: the object's orientation
//
// Returns:
//   - mgl32.Vec3: unit right vector
func LocalRight(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(AxisX)
}

// HorizontalForward returns the forward direction parallel to the ground plane, computed as up x right.
// The result is not normalized; its length shrinks as the right axis tilts out of the ground plane.
//
// Parameters:
//   - q: the object's orientation
//   - up: the world up vector
//
// Returns:
//   - mgl32.Vec3: forward direction along the ground plane
func HorizontalForward(q mgl32.Quat, up mgl32.Vec3) mgl32.Vec3 {
	return up.Cross(LocalRight(q))
}

// ApproxEqual reports whether a and b differ by at most eps.
//
// Parameters:
//   - a, b: values to compare
//   - eps: tolerance
//
// Returns:
//   - bool: true if |a-b| <= eps
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
