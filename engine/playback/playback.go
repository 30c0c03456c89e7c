package playback

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/config"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/noise"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sample is the controller state recorded after one scripted frame.
type Sample struct {
	Frame    int
	Time     float64
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Forward  mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Locked   bool
}

// Summary condenses a replay for reporting.
type Summary struct {
	Frames        int
	Displacement  mgl32.Vec3
	HorizontalRun float32
	MinHeight     float32
	MaxHeight     float32
	FinalVelocity mgl32.Vec3
}

var ErrNilScript = errors.New("nil script")

// Replay runs script against a fresh controller and object, returning one sample per frame.
// Events for a frame are delivered before that frame's update. Options are applied before the replay clock,
// so a caller-supplied clock is ignored.
//
// Parameters:
//   - script: the validated script
//   - options: controller options, typically from config.Config.ControllerOptions
//
// Returns:
//   - []Sample: samples in frame order
//   - error: ErrNilScript, a script validation error, or a controller construction error
func Replay(script *config.Script, options ...camera.FirstPersonControllerOption) ([]Sample, error) {
	if script == nil {
		return nil, ErrNilScript
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	obj := game_object.NewGameObject(
		game_object.WithName(common.Coalesce(script.Name, "replay")),
		game_object.WithPosition(script.Start[0], script.Start[1], script.Start[2]),
		game_object.WithRotation(script.Pitch, script.Yaw, 0),
	)
	surface := NewSurface()
	start := time.Unix(0, 0)
	clock := NewClock(start)

	opts := append(append([]camera.FirstPersonControllerOption(nil), options...), camera.WithClock(clock.Now))
	c, err := camera.NewFirstPersonController(obj, surface, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay %q: %w", script.Name, err)
	}
	defer c.Close()

	if script.Locked {
		c.Lock()
	}

	step := time.Duration(math.Round(script.Dt * float64(time.Second)))
	samples := make([]Sample, 0, script.Frames)
	next := 0
	for frame := 0; frame < script.Frames; frame++ {
		for ; next < len(script.Events) && script.Events[next].Frame == frame; next++ {
			deliver(c, surface, script.Events[next])
		}

		clock.Advance(step)
		c.Update()

		var fwd mgl32.Vec3
		c.ForwardDirection(&fwd)
		samples = append(samples, Sample{
			Frame:    frame,
			Time:     clock.Now().Sub(start).Seconds(),
			Position: obj.Position(),
			Velocity: c.Velocity(),
			Forward:  fwd,
			Yaw:      c.Yaw(),
			Pitch:    c.Pitch(),
			Locked:   c.IsLocked(),
		})
	}
	return samples, nil
}

func deliver(c camera.FirstPersonController, s *Surface, ev config.Event) {
	switch ev.Type {
	case config.EventKeyDown:
		s.KeyDown(ev.KeyCode())
	case config.EventKeyUp:
		s.KeyUp(ev.KeyCode())
	case config.EventPointer:
		s.Move(ev.Pointer[0], ev.Pointer[1])
	case config.EventLock:
		c.Lock()
	case config.EventUnlock:
		c.Unlock()
	}
}

// batch is the worker pool shared by every ReplayBatch call. It lives for the process and only grows.
var batch struct {
	mu   sync.Mutex
	pool worker.DynamicWorkerPool
}

// submitBatch sizes the shared pool to at least workers and queues tasks on it.
func submitBatch(workers int, tasks []worker.Task) {
	batch.mu.Lock()
	defer batch.mu.Unlock()

	if batch.pool == nil {
		batch.pool = worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	} else if n := workers - batch.pool.GetMaxWorkers(); n > 0 {
		batch.pool.IncreaseMaxWorkers(n)
	}
	for _, t := range tasks {
		batch.pool.SubmitTask(t)
	}
}

// ReplayBatch replays script once per noise seed on a shared worker pool. Results are indexed like seeds.
// The pool is sized to the largest workers value seen so far, so repeated calls do not add goroutines.
//
// Parameters:
//   - script: the script to replay
//   - seeds: one Perlin seed per replay
//   - workers: minimum pool size (values below 1 use 1)
//   - options: controller options shared by every replay; the seed's noise source overrides any noise option
//
// Returns:
//   - [][]Sample: samples per seed
//   - error: all replay errors joined, nil if every replay succeeded
func ReplayBatch(script *config.Script, seeds []uint64, workers int, options ...camera.FirstPersonControllerOption) ([][]Sample, error) {
	if script == nil {
		return nil, ErrNilScript
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	results := make([][]Sample, len(seeds))
	errs := make([]error, len(seeds))
	tasks := make([]worker.Task, 0, len(seeds))
	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		idx, sd := i, seed
		tasks = append(tasks, worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				opts := append(append([]camera.FirstPersonControllerOption(nil), options...),
					camera.WithNoise(noise.NewPerlin(sd)))
				samples, err := Replay(script.Clone(), opts...)
				if err != nil {
					errs[idx] = fmt.Errorf("seed %d: %w", sd, err)
					return nil, errs[idx]
				}
				results[idx] = samples
				return samples, nil
			},
		})
	}
	submitBatch(workers, tasks)
	wg.Wait()

	return results, errors.Join(errs...)
}

// Summarize reports displacement, height range, and final velocity of a replay.
func Summarize(start mgl32.Vec3, samples []Sample) Summary {
	s := Summary{Frames: len(samples), MinHeight: start.Y(), MaxHeight: start.Y()}
	if len(samples) == 0 {
		return s
	}
	for _, smp := range samples {
		s.MinHeight = math32.Min(s.MinHeight, smp.Position.Y())
		s.MaxHeight = math32.Max(s.MaxHeight, smp.Position.Y())
	}
	last := samples[len(samples)-1]
	s.Displacement = last.Position.Sub(start)
	s.HorizontalRun = math32.Hypot(s.Displacement.X(), s.Displacement.Z())
	s.FinalVelocity = last.Velocity
	return s
}

// Heights extracts the Y coordinate of each sample.
func Heights(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Position.Y())
	}
	return out
}

// ForwardTravel projects each sample's displacement from start onto the starting forward direction.
func ForwardTravel(start mgl32.Vec3, samples []Sample) []float64 {
	out := make([]float64, len(samples))
	if len(samples) == 0 {
		return out
	}
	fwd := samples[0].Forward
	fwd[1] = 0
	if l := fwd.Len(); l > 0 {
		fwd = fwd.Mul(1 / l)
	}
	for i, s := range samples {
		out[i] = float64(s.Position.Sub(start).Dot(fwd))
	}
	return out
}
