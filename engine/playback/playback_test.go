package playback

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/config"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/noise"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func quiet() camera.FirstPersonControllerOption {
	return camera.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWalkForwardWhileFalling(t *testing.T) {
	script := config.DefaultScript()
	start := mgl32.Vec3{0, 50, 0}

	samples, err := Replay(script, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 60 {
		t.Fatalf("samples = %d, want 60", len(samples))
	}

	prevY := start.Y()
	for _, s := range samples {
		y := s.Position.Y()
		if y < 10 {
			t.Fatalf("frame %d: y = %v below ground", s.Frame, y)
		}
		if y > prevY {
			t.Fatalf("frame %d: y rose from %v to %v", s.Frame, prevY, y)
		}
		if !s.Locked {
			t.Fatalf("frame %d: not locked", s.Frame)
		}
		prevY = y
	}
	if samples[0].Position.Y() >= 50 {
		t.Error("gravity did not lower the object on the first frame")
	}
	if got := samples[len(samples)-1].Position.Y(); got != 10 {
		t.Errorf("final y = %v, want resting on the ground at 10", got)
	}

	travel := ForwardTravel(start, samples)
	if travel[len(travel)-1] <= 0 {
		t.Errorf("forward travel = %v, want > 0", travel[len(travel)-1])
	}
	for i := 1; i < len(travel); i++ {
		if travel[i] < travel[i-1] {
			t.Fatalf("frame %d: forward travel went backwards (%v -> %v)", i, travel[i-1], travel[i])
		}
	}

	sum := Summarize(start, samples)
	if sum.MinHeight != 10 || sum.MaxHeight != 50 || sum.HorizontalRun <= 0 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestReplayPointerRespectsLock(t *testing.T) {
	tests := []struct {
		name    string
		locked  bool
		wantYaw float32
	}{
		{"locked", true, -0.2},
		{"unlocked", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &config.Script{
				Frames: 2, Dt: 1.0 / 60, Start: [3]float32{0, 10, 0}, Locked: tt.locked,
				Events: []config.Event{{Frame: 0, Type: config.EventPointer, Pointer: [2]float32{100, 0}}},
			}
			samples, err := Replay(script, quiet(), camera.WithJitterAmplitude(0))
			if err != nil {
				t.Fatal(err)
			}
			if got := samples[1].Yaw; mgl32.Abs(got-tt.wantYaw) > eps {
				t.Errorf("yaw = %v, want %v", got, tt.wantYaw)
			}
		})
	}
}

func TestReplayUnlockFreezesMotion(t *testing.T) {
	script := &config.Script{
		Frames: 40, Dt: 1.0 / 60, Start: [3]float32{0, 10, 0}, Locked: true,
		Events: []config.Event{
			{Frame: 0, Type: config.EventKeyDown, Key: "W"},
			{Frame: 20, Type: config.EventUnlock},
		},
	}
	samples, err := Replay(script, quiet())
	if err != nil {
		t.Fatal(err)
	}
	frozen := samples[19].Position
	for _, s := range samples[20:] {
		if s.Locked {
			t.Fatalf("frame %d still locked", s.Frame)
		}
		if s.Position != frozen {
			t.Fatalf("frame %d moved while unlocked: %v -> %v", s.Frame, frozen, s.Position)
		}
	}
}

func TestReplayStartOrientation(t *testing.T) {
	script := &config.Script{Frames: 1, Dt: 0.01, Start: [3]float32{0, 10, 0}, Yaw: 0.7, Pitch: -0.3}
	samples, err := Replay(script, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if mgl32.Abs(samples[0].Yaw-0.7) > eps || mgl32.Abs(samples[0].Pitch+0.3) > eps {
		t.Errorf("yaw/pitch = %v/%v, want 0.7/-0.3", samples[0].Yaw, samples[0].Pitch)
	}
}

func TestReplayErrors(t *testing.T) {
	if _, err := Replay(nil); !errors.Is(err, ErrNilScript) {
		t.Errorf("nil script: err = %v", err)
	}
	if _, err := Replay(&config.Script{}); !errors.Is(err, config.ErrInvalidScript) {
		t.Errorf("empty script: err = %v", err)
	}
	if _, err := ReplayBatch(nil, []uint64{1}, 1); !errors.Is(err, ErrNilScript) {
		t.Errorf("nil batch script: err = %v", err)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	a, err := Replay(config.DefaultScript(), quiet())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Replay(config.DefaultScript(), quiet())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("frame %d differs: %v vs %v", i, a[i].Position, b[i].Position)
		}
	}
}

func TestReplayBatch(t *testing.T) {
	script := config.DefaultScript()
	seeds := []uint64{1, 2, 3, 1}

	results, err := ReplayBatch(script, seeds, 2, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(seeds) {
		t.Fatalf("results = %d, want %d", len(results), len(seeds))
	}
	for i, r := range results {
		if len(r) != script.Frames {
			t.Errorf("seed %d: %d samples", seeds[i], len(r))
		}
	}

	single, err := Replay(script, quiet(), camera.WithNoise(noise.NewPerlin(1)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range single {
		if results[0][i].Position != single[i].Position || results[3][i].Position != single[i].Position {
			t.Fatalf("frame %d: batch result for seed 1 differs from a single replay", i)
		}
	}

	differs := false
	for i := range results[0] {
		if results[0][i].Position != results[1][i].Position {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("different seeds produced identical trajectories")
	}
}

func TestReplayBatchReusesWorkers(t *testing.T) {
	script := config.DefaultScript()
	if _, err := ReplayBatch(script, []uint64{1, 2}, 8, quiet()); err != nil {
		t.Fatal(err)
	}
	before := runtime.NumGoroutine()

	for range 5 {
		if _, err := ReplayBatch(script, []uint64{1, 2}, 8, quiet()); err != nil {
			t.Fatal(err)
		}
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("goroutines grew across batches: before=%d after=%d", before, after)
	}
}

func TestReplaySampleTimeTracksClock(t *testing.T) {
	script := config.DefaultScript()
	samples, err := Replay(script, quiet())
	if err != nil {
		t.Fatal(err)
	}

	step := time.Duration(math.Round(script.Dt * float64(time.Second)))
	if step != 16666667*time.Nanosecond {
		t.Fatalf("step = %v, want 16.666667ms", step)
	}
	for i, s := range samples {
		want := (time.Duration(i+1) * step).Seconds()
		if s.Time != want {
			t.Fatalf("frame %d time = %v, want %v", i, s.Time, want)
		}
	}
	if last := samples[len(samples)-1].Time; math.Abs(last-float64(script.Frames)*script.Dt) > 1e-6 {
		t.Errorf("final time = %v, want %v", last, float64(script.Frames)*script.Dt)
	}
}

func TestSurfaceLockHandshake(t *testing.T) {
	s := NewSurface()
	obj := game_object.NewGameObject(game_object.WithPosition(0, 10, 0))
	c, err := camera.NewFirstPersonController(obj, s, quiet())
	if err != nil {
		t.Fatal(err)
	}

	var locks, unlocks int
	c.OnLock(func() { locks++ })
	c.OnUnlock(func() { unlocks++ })

	s.RefuseLock(true)
	c.Lock()
	if c.IsLocked() || s.Locked() || locks != 0 {
		t.Fatal("refused lock request should leave the controller unlocked")
	}

	s.RefuseLock(false)
	c.Lock()
	c.Lock()
	if !c.IsLocked() || locks != 1 {
		t.Errorf("locked=%v locks=%d, want true/1", c.IsLocked(), locks)
	}

	c.Close()
	c.Unlock()
	if unlocks != 0 || !c.IsLocked() {
		t.Error("closed controller should not receive notifications")
	}
	if s.Locked() {
		t.Error("surface should still release the pointer")
	}
}

func TestClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewClock(start)
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("elapsed = %v", got)
	}
}

func TestHeights(t *testing.T) {
	samples := []Sample{{Position: mgl32.Vec3{0, 12, 0}}, {Position: mgl32.Vec3{0, 10, 0}}}
	h := Heights(samples)
	if len(h) != 2 || h[0] != 12 || h[1] != 10 {
		t.Errorf("heights = %v", h)
	}
	if got := Summarize(mgl32.Vec3{}, nil); got.Frames != 0 {
		t.Errorf("empty summary = %+v", got)
	}
}
