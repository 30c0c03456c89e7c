package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func(*ControllerConfig){
	"reference": func(cc *ControllerConfig) {},
	"steady": func(cc *ControllerConfig) {
		cc.JitterAmplitude = 0.02
	},
	"still": func(cc *ControllerConfig) {
		cc.JitterAmplitude = 0
	},
	"floaty": func(cc *ControllerConfig) {
		cc.Gravity = 1.6
		cc.Drag = 2
	},
	"sprint": func(cc *ControllerConfig) {
		cc.MoveAcceleration = 250
		cc.JitterAmplitude = 0.3
		cc.Noise.Step = 0.012
	},
}

// ApplyPreset resets the controller section to the reference tuning and applies the named preset.
// Noise seed is preserved.
func (c *Config) ApplyPreset(name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	seed := c.Controller.Noise.Seed
	c.Controller = DefaultControllerConfig()
	c.Controller.Noise.Seed = seed
	apply(&c.Controller)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
