package camera

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/noise"
)

// Reference tuning for the first-person controller.
const (
	DefaultPointerSensitivity = 0.002 // radians per pixel
	DefaultJitterAmplitude    = 0.2   // radians
	DefaultDrag               = 10.0
	DefaultGravity            = 9.8
	DefaultMass               = 100.0
	DefaultMoveAcceleration   = 100.0
	DefaultGroundHeight       = 10.0
	DefaultMaxDelta           = 100 * time.Millisecond
	DefaultNoiseSeed          = 1
)

// FirstPersonControllerOption is a functional option for configuring a FirstPersonController.
type FirstPersonControllerOption func(*firstPersonController)

// WithPointerSensitivity sets how many radians of rotation one pixel of pointer movement produces.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the sensitivity
func WithPointerSensitivity(sensitivity float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.sensitivity = sensitivity
	}
}

// WithJitterAmplitude sets the maximum sway applied to each rendered Euler angle. Zero disables sway.
//
// Parameters:
//   - amplitude: radians
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the sway amplitude
func WithJitterAmplitude(amplitude float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.amplitude = amplitude
	}
}

// WithNoise sets the noise source sampled for sway. Defaults to a Perlin source seeded with DefaultNoiseSeed.
//
// Parameters:
//   - src: the noise source
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the noise source
func WithNoise(src noise.Source) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.noiseSrc = src
	}
}

// WithNoiseStep sets how far each sway cursor advances per frame. Larger steps sway faster.
//
// Parameters:
//   - step: cursor increment per update
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the noise step
func WithNoiseStep(step float64) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.noiseStep = step
	}
}

// WithNoisePhases sets the starting sway cursor for each axis.
//
// Parameters:
//   - x, y, z: initial cursors
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the noise phases
func WithNoisePhases(x, y, z float64) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.noisePhases = [3]float64{x, y, z}
	}
}

// WithDrag sets the horizontal velocity decay rate per second.
//
// Parameters:
//   - drag: decay rate
//
// Returns:
//   - FirstPersonControllerOption: functional option to set drag
func WithDrag(drag float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.motion.drag = drag
	}
}

// WithGravity sets the downward acceleration before mass scaling.
//
// Parameters:
//   - g: gravitational acceleration
//
// Returns:
//   - FirstPersonControllerOption: functional option to set gravity
func WithGravity(g float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.motion.gravity = g
	}
}

// WithMass sets the multiplier applied to gravity.
//
// Parameters:
//   - mass: gravity multiplier
//
// Returns:
//   - FirstPersonControllerOption: functional option to set mass
func WithMass(mass float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.motion.mass = mass
	}
}

// WithMoveAcceleration sets the horizontal acceleration produced by held movement keys.
//
// Parameters:
//   - accel: units per second squared
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the movement acceleration
func WithMoveAcceleration(accel float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.motion.accel = accel
	}
}

// WithGroundHeight sets the height of the flat floor the object cannot fall below.
//
// Parameters:
//   - height: world-space Y of the floor
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the ground height
func WithGroundHeight(height float32) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.motion.groundHeight = height
	}
}

// WithMaxDelta caps the frame time used by a single Update, so the first frame after a long pause does
// not launch the object. Zero disables the cap.
//
// Parameters:
//   - d: maximum frame time
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the frame time cap
func WithMaxDelta(d time.Duration) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.maxDelta = d
	}
}

// WithClock sets the time source used to measure frame time. Defaults to time.Now.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the clock
func WithClock(now func() time.Time) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - b: key code to action map
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the key bindings
func WithBindings(b input.Bindings) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		c.bindings = b
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) FirstPersonControllerOption {
	return func(c *firstPersonController) {
		if logger != nil {
			c.logger = logger
		}
	}
}
