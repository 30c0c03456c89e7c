package camera

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/noise"
	"github.com/go-gl/mathgl/mgl32"
)

// firstPersonController is the single implementation of FirstPersonController.
// Input callbacks and Update share state under mu. The surface and the lock emitter are always called
// with mu released, because surfaces may report lock changes synchronously from inside a request.
type firstPersonController struct {
	mu *sync.Mutex

	object  ControlledObject
	surface InputSurface
	logger  *slog.Logger

	input       *input.State
	orientation orientationTracker
	jitter      *noise.Jitter
	motion      motionIntegrator
	events      *lockEmitter

	lastTime time.Time
	clock    func() time.Time
	maxDelta time.Duration

	// configuration consumed at construction
	sensitivity float32
	amplitude   float32
	noiseSrc    noise.Source
	noiseStep   float64
	noisePhases [3]float64
	bindings    input.Bindings

	unsubscribe func()
	closeOnce   sync.Once
}

// Compile-time interface compliance check
var _ FirstPersonController = &firstPersonController{}

// NewFirstPersonController creates a controller driving obj from the input delivered by surface.
// The controller subscribes to surface immediately and starts unlocked. Its look orientation starts
// from obj's current heading and elevation.
//
// Parameters:
//   - obj: the object to drive (required)
//   - surface: the input source (required)
//   - options: functional options to configure the controller
//
// Returns:
//   - FirstPersonController: the new controller
//   - error: ErrNilObject or ErrNilSurface on misconfiguration
func NewFirstPersonController(obj ControlledObject, surface InputSurface, options ...FirstPersonControllerOption) (FirstPersonController, error) {
	c := &firstPersonController{
		mu:          &sync.Mutex{},
		object:      obj,
		surface:     surface,
		logger:      slog.Default(),
		motion:      newMotionIntegrator(),
		events:      newLockEmitter(),
		clock:       time.Now,
		maxDelta:    DefaultMaxDelta,
		sensitivity: DefaultPointerSensitivity,
		amplitude:   DefaultJitterAmplitude,
		noiseStep:   noise.DefaultStep,
		noisePhases: noise.DefaultPhases,
	}

	for _, option := range options {
		option(c)
	}

	if obj == nil {
		c.logger.Error("first-person controller misconfigured", "error", ErrNilObject)
		return nil, fmt.Errorf("new first-person controller: %w", ErrNilObject)
	}
	if surface == nil {
		c.logger.Error("first-person controller misconfigured", "error", ErrNilSurface)
		return nil, fmt.Errorf("new first-person controller: %w", ErrNilSurface)
	}

	if c.noiseSrc == nil {
		c.noiseSrc = noise.NewPerlin(DefaultNoiseSeed)
	}
	c.input = input.NewState(input.WithBindings(c.bindings))
	c.orientation = newOrientationTracker(obj.Orientation(), c.sensitivity)
	c.jitter = noise.NewJitter(c.noiseSrc, c.noisePhases, c.noiseStep)
	c.lastTime = c.clock()
	c.unsubscribe = surface.Subscribe(c)

	return c, nil
}

// --- InputListener implementation ---

func (c *firstPersonController) OnPointerMove(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.input.Locked() {
		return
	}
	c.orientation.applyPointerDelta(dx, dy)
}

func (c *firstPersonController) OnKeyDown(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input.SetKey(keyCode, true)
}

func (c *firstPersonController) OnKeyUp(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input.SetKey(keyCode, false)
}

func (c *firstPersonController) OnPointerLockChange(locked bool) {
	c.mu.Lock()
	c.input.SetLocked(locked)
	c.mu.Unlock()

	if locked {
		c.logger.Debug("pointer locked")
		c.events.emit(eventLock)
		return
	}
	c.logger.Debug("pointer unlocked")
	c.events.emit(eventUnlock)
}

// --- FirstPersonController implementation ---

func (c *firstPersonController) Lock() {
	c.surface.RequestPointerLock()
}

func (c *firstPersonController) Unlock() {
	c.surface.ExitPointerLock()
}

func (c *firstPersonController) IsLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Locked()
}

func (c *firstPersonController) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.input.Locked() {
		return
	}

	n := c.jitter.Sample()
	c.object.SetOrientation(c.orientation.swayed(n, c.amplitude))

	now := c.clock()
	delta := c.frameDelta(now)

	c.motion.step(c.object, c.input.Flags(), delta)
	c.lastTime = now
}

// frameDelta returns seconds since the previous locked update, clamped to [0, maxDelta].
// Caller must hold the mutex.
func (c *firstPersonController) frameDelta(now time.Time) float32 {
	elapsed := now.Sub(c.lastTime)
	if elapsed < 0 {
		elapsed = 0
	}
	if c.maxDelta > 0 && elapsed > c.maxDelta {
		c.logger.Debug("clamping frame delta", "elapsed", elapsed, "max", c.maxDelta)
		elapsed = c.maxDelta
	}
	return float32(elapsed.Seconds())
}

func (c *firstPersonController) Object() ControlledObject {
	return c.object
}

func (c *firstPersonController) ForwardDirection(out *mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ForwardDirection(c.orientation.base, out)
}

func (c *firstPersonController) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation.yaw
}

func (c *firstPersonController) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation.pitch
}

func (c *firstPersonController) SetOrientation(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation.set(yaw, pitch)
}

func (c *firstPersonController) Velocity() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.motion.velocity
}

func (c *firstPersonController) Input() input.Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Flags()
}

func (c *firstPersonController) OnLock(fn func()) func() {
	return c.events.on(eventLock, fn)
}

func (c *firstPersonController) OnUnlock(fn func()) func() {
	return c.events.on(eventUnlock, fn)
}

func (c *firstPersonController) Close() {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
	})
}
