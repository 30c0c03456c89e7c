package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func TestMovementDirection(t *testing.T) {
	tests := []struct {
		name  string
		flags input.Flags
		want  mgl32.Vec3
	}{
		{"none", input.Flags{}, mgl32.Vec3{}},
		{"forward", input.Flags{Forward: true}, mgl32.Vec3{0, 0, 1}},
		{"backward", input.Flags{Backward: true}, mgl32.Vec3{0, 0, -1}},
		{"left", input.Flags{Left: true}, mgl32.Vec3{-1, 0, 0}},
		{"opposed", input.Flags{Forward: true, Backward: true}, mgl32.Vec3{}},
		{"up only", input.Flags{Up: true}, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		if got := MovementDirection(tt.flags); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestMovementDirectionDiagonalIsUnit(t *testing.T) {
	diagonals := []input.Flags{
		{Forward: true, Right: true},
		{Forward: true, Left: true},
		{Backward: true, Right: true},
		{Backward: true, Left: true},
	}
	for _, f := range diagonals {
		if l := MovementDirection(f).Len(); !common.ApproxEqual(l, 1, 1e-6) {
			t.Errorf("%+v: expected unit length, got %f", f, l)
		}
	}
}

func TestDragUsesDiscreteEulerStep(t *testing.T) {
	tests := []struct {
		delta float32
		want  float32
	}{
		{1, 10 - 10*10*1},
		{0.05, 10 - 10*10*0.05},
		{1.0 / 60, 10 - 10*10*(1.0/60)},
	}

	for _, tt := range tests {
		m := newMotionIntegrator()
		m.velocity = mgl32.Vec3{10, 0, 10}
		m.accelerate(input.Flags{}, tt.delta)
		if !common.ApproxEqual(m.velocity.X(), tt.want, 1e-4) || !common.ApproxEqual(m.velocity.Z(), tt.want, 1e-4) {
			t.Errorf("delta %f: expected v.x = v.z = %f, got %v", tt.delta, tt.want, m.velocity)
		}
	}
}

func TestGravityAccumulates(t *testing.T) {
	m := newMotionIntegrator()
	m.accelerate(input.Flags{}, 0.5)
	m.accelerate(input.Flags{}, 0.5)
	if !common.ApproxEqual(m.velocity.Y(), -980, 1e-2) {
		t.Errorf("expected v.y = -980, got %f", m.velocity.Y())
	}
}

func TestInputImpulseSign(t *testing.T) {
	m := newMotionIntegrator()
	m.accelerate(input.Flags{Forward: true, Right: true}, 0.1)

	// Normalized diagonal: each component 1/sqrt(2), applied negatively.
	want := -float32(0.70710678) * 100 * 0.1
	if !common.ApproxEqual(m.velocity.Z(), want, 1e-4) || !common.ApproxEqual(m.velocity.X(), want, 1e-4) {
		t.Errorf("expected v.x = v.z = %f, got %v", want, m.velocity)
	}
}

func TestOpposedKeysOnlyDrag(t *testing.T) {
	m := newMotionIntegrator()
	m.velocity = mgl32.Vec3{0, 0, 4}
	m.accelerate(input.Flags{Forward: true, Backward: true}, 0.01)
	if !common.ApproxEqual(m.velocity.Z(), 4-4*10*0.01, 1e-5) {
		t.Errorf("expected drag only, got %f", m.velocity.Z())
	}
}

func TestGroundClampAbsorbing(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithPosition(0, 10, 0))
	m := newMotionIntegrator()
	m.velocity = mgl32.Vec3{0, -50, 0}

	for i := 0; i < 5; i++ {
		m.step(obj, input.Flags{}, 1.0/60)
		if y := obj.Position().Y(); y != DefaultGroundHeight {
			t.Fatalf("step %d: expected y = %f, got %f", i, DefaultGroundHeight, y)
		}
		if m.velocity.Y() != 0 {
			t.Fatalf("step %d: expected v.y = 0 on the ground, got %f", i, m.velocity.Y())
		}
	}
}

func TestGroundClampFromAbove(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithPosition(0, 10.5, 0))
	m := newMotionIntegrator()
	m.velocity = mgl32.Vec3{0, -600, 0}
	m.step(obj, input.Flags{}, 0.1)
	if y := obj.Position().Y(); y != 10 {
		t.Errorf("expected landing at 10, got %f", y)
	}
}

func TestCustomGroundHeight(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithPosition(0, 1, 0))
	m := newMotionIntegrator()
	m.groundHeight = -5
	m.step(obj, input.Flags{}, 0.1)
	if y := obj.Position().Y(); y >= 1 || y < -5 {
		t.Errorf("expected free fall above -5, got %f", y)
	}
}
