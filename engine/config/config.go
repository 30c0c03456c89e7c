// Package config loads and saves the YAML settings for the first-person demo and headless replays.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/input"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/noise"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWindow     = errors.New("invalid window config")
	ErrInvalidEngine     = errors.New("invalid engine config")
	ErrInvalidController = errors.New("invalid controller config")
	ErrInvalidBinding    = errors.New("invalid key binding")
	ErrUnknownPreset     = errors.New("unknown preset")
)

const (
	DefaultTitle     = "Oxy First Person"
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFov       = 70.0
	DefaultTickRate  = 60.0
	DefaultOctaves   = 4
	DefaultFalloff   = 0.5
	DefaultNoiseSeed = camera.DefaultNoiseSeed
)

type Config struct {
	Window     WindowConfig        `yaml:"window"`
	Engine     EngineConfig        `yaml:"engine"`
	Controller ControllerConfig    `yaml:"controller"`
	Bindings   map[string][]string `yaml:"bindings,omitempty"`
}

type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FovDegrees    float32 `yaml:"fov_degrees"`
	ClickToLock   bool    `yaml:"click_to_lock"`
	EscapeUnlocks bool    `yaml:"escape_unlocks"`
}

type EngineConfig struct {
	TickRate   float64 `yaml:"tick_rate"`
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
}

type ControllerConfig struct {
	PointerSensitivity float32     `yaml:"pointer_sensitivity"`
	JitterAmplitude    float32     `yaml:"jitter_amplitude"`
	Drag               float32     `yaml:"drag"`
	Gravity            float32     `yaml:"gravity"`
	Mass               float32     `yaml:"mass"`
	MoveAcceleration   float32     `yaml:"move_acceleration"`
	GroundHeight       float32     `yaml:"ground_height"`
	MaxDeltaSeconds    float64     `yaml:"max_delta_seconds"`
	Noise              NoiseConfig `yaml:"noise"`
}

type NoiseConfig struct {
	Seed    uint64     `yaml:"seed"`
	Octaves int        `yaml:"octaves"`
	Falloff float64    `yaml:"falloff"`
	Step    float64    `yaml:"step"`
	Phases  [3]float64 `yaml:"phases"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         DefaultTitle,
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			FovDegrees:    DefaultFov,
			ClickToLock:   true,
			EscapeUnlocks: true,
		},
		Engine: EngineConfig{
			TickRate: DefaultTickRate,
		},
		Controller: DefaultControllerConfig(),
	}
}

// DefaultControllerConfig returns the reference tuning.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		PointerSensitivity: camera.DefaultPointerSensitivity,
		JitterAmplitude:    camera.DefaultJitterAmplitude,
		Drag:               camera.DefaultDrag,
		Gravity:            camera.DefaultGravity,
		Mass:               camera.DefaultMass,
		MoveAcceleration:   camera.DefaultMoveAcceleration,
		GroundHeight:       camera.DefaultGroundHeight,
		MaxDeltaSeconds:    camera.DefaultMaxDelta.Seconds(),
		Noise: NoiseConfig{
			Seed:    DefaultNoiseSeed,
			Octaves: DefaultOctaves,
			Falloff: DefaultFalloff,
			Step:    noise.DefaultStep,
			Phases:  noise.DefaultPhases,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid setting, wrapping one of the Err* sentinels.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Window.FovDegrees <= 0 || c.Window.FovDegrees >= 180 {
		return fmt.Errorf("%w: fov_degrees must be in (0, 180)", ErrInvalidWindow)
	}
	if c.Engine.TickRate < 0 || c.Engine.FrameLimit < 0 {
		return fmt.Errorf("%w: tick_rate and frame_limit must not be negative", ErrInvalidEngine)
	}
	if err := c.Controller.Validate(); err != nil {
		return err
	}
	_, err := c.InputBindings()
	return err
}

func (cc ControllerConfig) Validate() error {
	switch {
	case cc.PointerSensitivity <= 0:
		return fmt.Errorf("%w: pointer_sensitivity must be positive", ErrInvalidController)
	case cc.JitterAmplitude < 0:
		return fmt.Errorf("%w: jitter_amplitude must not be negative", ErrInvalidController)
	case cc.Drag < 0:
		return fmt.Errorf("%w: drag must not be negative", ErrInvalidController)
	case cc.Mass < 0:
		return fmt.Errorf("%w: mass must not be negative", ErrInvalidController)
	case cc.MaxDeltaSeconds < 0:
		return fmt.Errorf("%w: max_delta_seconds must not be negative", ErrInvalidController)
	case cc.Noise.Octaves < 1:
		return fmt.Errorf("%w: noise.octaves must be at least 1", ErrInvalidController)
	case cc.Noise.Falloff <= 0 || cc.Noise.Falloff >= 1:
		return fmt.Errorf("%w: noise.falloff must be in (0, 1)", ErrInvalidController)
	case cc.Noise.Step < 0:
		return fmt.Errorf("%w: noise.step must not be negative", ErrInvalidController)
	}
	return nil
}

// InputBindings converts the bindings section (action name -> key names) into key codes.
// An empty section yields input.DefaultBindings.
func (c *Config) InputBindings() (input.Bindings, error) {
	if len(c.Bindings) == 0 {
		return input.DefaultBindings(), nil
	}

	// sorted so the reported error is stable
	actions := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		actions = append(actions, name)
	}
	sort.Strings(actions)

	b := make(input.Bindings)
	for _, name := range actions {
		action, ok := input.ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidBinding, name)
		}
		for _, key := range c.Bindings[name] {
			code, ok := common.KeyByName(key)
			if !ok {
				return nil, fmt.Errorf("%w: unknown key %q for %s", ErrInvalidBinding, key, name)
			}
			if prev, dup := b[code]; dup && prev != action {
				return nil, fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidBinding, key, prev, action)
			}
			b[code] = action
		}
	}
	return b, nil
}

// NoiseSource builds the Perlin source described by the noise section.
func (cc ControllerConfig) NoiseSource() *noise.Perlin {
	return noise.NewPerlin(cc.Noise.Seed,
		noise.WithOctaves(cc.Noise.Octaves),
		noise.WithFalloff(cc.Noise.Falloff),
	)
}

// ControllerOptions converts the controller and bindings sections into controller options.
func (c *Config) ControllerOptions() ([]camera.FirstPersonControllerOption, error) {
	if err := c.Controller.Validate(); err != nil {
		return nil, err
	}
	bindings, err := c.InputBindings()
	if err != nil {
		return nil, err
	}
	cc := c.Controller
	return []camera.FirstPersonControllerOption{
		camera.WithPointerSensitivity(cc.PointerSensitivity),
		camera.WithJitterAmplitude(cc.JitterAmplitude),
		camera.WithDrag(cc.Drag),
		camera.WithGravity(cc.Gravity),
		camera.WithMass(cc.Mass),
		camera.WithMoveAcceleration(cc.MoveAcceleration),
		camera.WithGroundHeight(cc.GroundHeight),
		camera.WithMaxDelta(time.Duration(cc.MaxDeltaSeconds * float64(time.Second))),
		camera.WithNoise(cc.NoiseSource()),
		camera.WithNoiseStep(cc.Noise.Step),
		camera.WithNoisePhases(cc.Noise.Phases[0], cc.Noise.Phases[1], cc.Noise.Phases[2]),
		camera.WithBindings(bindings),
	}, nil
}
