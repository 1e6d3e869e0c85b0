package config

import "sort"

// Presets are named variations over the defaults, keyed by sketch kind.
var Presets = map[string]map[string]func(*Config){
	SketchBall: {
		"default": func(*Config) {},
		"elastic": func(c *Config) { c.Ball.Restitution = 1 },
		"dead":    func(c *Config) { c.Ball.Restitution = 0 },
		"moon":    func(c *Config) { c.Ball.Gravity = 1.62 },
		"air":     func(c *Config) { c.Ball.Drag = 0.01; c.Ball.Restitution = 0.9 },
	},
	SketchRingPendulum: {
		"default": func(*Config) {},
		"slow":    func(c *Config) { c.Pendulum.RingOmega = 1 },
		"fast":    func(c *Config) { c.Pendulum.RingOmega = 4; c.Pendulum.InitialAngle = 10 },
		"flip":    func(c *Config) { c.Pendulum.InitialAngle = 170; c.Pendulum.RingOmega = 0 },
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(sketch, preset string) *Config {
	sketchPresets, ok := Presets[sketch]
	if !ok {
		return nil
	}
	apply, ok := sketchPresets[preset]
	if !ok {
		return nil
	}
	cfg := ForSketch(sketch)
	apply(cfg)
	return cfg
}

func ListPresets(sketch string) []string {
	sketchPresets, ok := Presets[sketch]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sketchPresets))
	for name := range sketchPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
