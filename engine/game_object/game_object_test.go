package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject()
	if !g.Enabled() {
		t.Error("expected enabled by default")
	}
	if g.Position() != (mgl32.Vec3{}) {
		t.Errorf("expected origin, got %v", g.Position())
	}
	if g.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("expected unit scale, got %v", g.Scale())
	}
	if g.Up() != common.AxisY {
		t.Errorf("expected +Y up, got %v", g.Up())
	}
	if !g.Orientation().ApproxEqual(mgl32.QuatIdent()) {
		t.Errorf("expected identity orientation, got %v", g.Orientation())
	}
}

func TestBuilderOptions(t *testing.T) {
	g := NewGameObject(
		WithID(9),
		WithName("player"),
		WithEnabled(false),
		WithPosition(1, 2, 3),
		WithRotation(0.2, 1.1, 0),
		WithScale(2, 2, 2),
		WithUp(0, 5, 0),
	)

	if g.ID() != 9 || g.Name() != "player" || g.Enabled() {
		t.Errorf("unexpected identity fields: %d %q %v", g.ID(), g.Name(), g.Enabled())
	}
	if g.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected position %v", g.Position())
	}
	rx, ry, _ := g.Rotation()
	if !common.ApproxEqual(rx, 0.2, 1e-4) || !common.ApproxEqual(ry, 1.1, 1e-4) {
		t.Errorf("unexpected rotation %f %f", rx, ry)
	}
	if g.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected normalized up, got %v", g.Up())
	}
}

func TestWithUpIgnoresZero(t *testing.T) {
	g := NewGameObject(WithUp(0, 0, 0))
	if g.Up() != common.AxisY {
		t.Errorf("expected default up, got %v", g.Up())
	}
}

func TestTranslateAndModelMatrix(t *testing.T) {
	g := NewGameObject(WithPosition(0, 10, 0))
	g.Translate(mgl32.Vec3{1, -2, 3})
	if g.Position() != (mgl32.Vec3{1, 8, 3}) {
		t.Fatalf("unexpected position %v", g.Position())
	}

	m := g.ModelMatrix()
	if m.Col(3) != (mgl32.Vec4{1, 8, 3, 1}) {
		t.Errorf("expected translation column (1,8,3,1), got %v", m.Col(3))
	}
}

func TestSetOrientationNormalizes(t *testing.T) {
	g := NewGameObject()
	g.SetOrientation(mgl32.Quat{W: 2})
	if !common.ApproxEqual(g.Orientation().Len(), 1, 1e-6) {
		t.Errorf("expected unit quaternion, got len %f", g.Orientation().Len())
	}
}
