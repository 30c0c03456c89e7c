package noise

import (
	"math"
	"testing"
)

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(42)
	for i := 0; i < 20000; i++ {
		x := float64(i)*0.0137 - 50
		v := p.Noise(x)
		if v < 0 || v >= 1 {
			t.Fatalf("noise(%f) = %f out of [0,1)", x, v)
		}
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(7)
	b := NewPerlin(7)
	c := NewPerlin(8)

	same := true
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.31
		if a.Noise(x) != b.Noise(x) {
			t.Fatalf("same seed diverged at %f", x)
		}
		if a.Noise(x) != c.Noise(x) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestPerlinContinuity(t *testing.T) {
	p := NewPerlin(1)
	prev := p.Noise(0)
	for i := 1; i < 5000; i++ {
		v := p.Noise(float64(i) * DefaultStep)
		if math.Abs(float64(v-prev)) > 0.05 {
			t.Fatalf("jump of %f between adjacent samples at step %d", v-prev, i)
		}
		prev = v
	}
}

func TestPerlinSymmetric(t *testing.T) {
	p := NewPerlin(3)
	if p.Noise(-12.5) != p.Noise(12.5) {
		t.Error("expected noise(-x) == noise(x)")
	}
}

func TestPerlinOptions(t *testing.T) {
	p := NewPerlin(1, WithOctaves(0), WithFalloff(2))
	if p.Octaves() != 1 {
		t.Errorf("expected octaves clamped to 1, got %d", p.Octaves())
	}
	if p.Falloff() != 0.5 {
		t.Errorf("expected invalid falloff ignored, got %f", p.Falloff())
	}
}

type recordingSource struct {
	calls []float64
}

func (r *recordingSource) Noise(x float64) float32 {
	r.calls = append(r.calls, x)
	return 0.25
}

func TestJitterAdvancesPhases(t *testing.T) {
	src := &recordingSource{}
	j := NewJitter(src, DefaultPhases, DefaultStep)

	first := j.Sample()
	if first != [3]float32{0.25, 0.25, 0.25} {
		t.Errorf("unexpected sample %v", first)
	}
	j.Sample()

	want := []float64{0, 1000, 2000, DefaultStep, 1000 + DefaultStep, 2000 + DefaultStep}
	if len(src.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(src.calls))
	}
	for i := range want {
		if math.Abs(src.calls[i]-want[i]) > 1e-9 {
			t.Errorf("call %d: expected %f, got %f", i, want[i], src.calls[i])
		}
	}

	ph := j.Phases()
	if math.Abs(ph[0]-2*DefaultStep) > 1e-9 {
		t.Errorf("expected x phase %f, got %f", 2*DefaultStep, ph[0])
	}
}
