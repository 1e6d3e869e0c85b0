package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/physics"
)

const (
	SketchBall         = "ball"
	SketchRingPendulum = "ring_pendulum"

	DefaultIntegrator = "symplectic_euler"
	DefaultDt         = 1.0 / 60
	DefaultDuration   = 20.0
	DefaultTheme      = "light"

	BallViewRange         = 100.0
	RingPendulumViewRange = 6.0
)

type Config struct {
	Sketch     string         `yaml:"sketch" toml:"sketch"`
	Title      string         `yaml:"title,omitempty" toml:"title,omitempty"`
	Integrator string         `yaml:"integrator" toml:"integrator"`
	Dt         float64        `yaml:"dt" toml:"dt"`
	Duration   float64        `yaml:"duration" toml:"duration"`
	Theme      string         `yaml:"theme,omitempty" toml:"theme,omitempty"`
	View       ViewConfig     `yaml:"view" toml:"view"`
	Ball       BallConfig     `yaml:"ball" toml:"ball"`
	Pendulum   PendulumConfig `yaml:"ring_pendulum" toml:"ring_pendulum"`
}

type ViewConfig struct {
	// BaseViewRange of zero means the sketch's own default.
	BaseViewRange float64 `yaml:"base_view_range" toml:"base_view_range"`
	ZoomMin       float64 `yaml:"zoom_min" toml:"zoom_min"`
	ZoomMax       float64 `yaml:"zoom_max" toml:"zoom_max"`
	ZoomResponse  float64 `yaml:"zoom_response" toml:"zoom_response"`
	PanSpeed      float64 `yaml:"pan_speed" toml:"pan_speed"`
	IdealCells    float64 `yaml:"ideal_cells" toml:"ideal_cells"`
	MinorGrid     bool    `yaml:"minor_grid" toml:"minor_grid"`
	LabelSize     float64 `yaml:"label_size" toml:"label_size"`
}

type BallConfig struct {
	Radius      float64 `yaml:"radius" toml:"radius"`
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	Restitution float64 `yaml:"restitution" toml:"restitution"`
	Drag        float64 `yaml:"drag" toml:"drag"`
	// InitialHeight is a fraction of the base view range.
	InitialHeight float64 `yaml:"initial_height" toml:"initial_height"`
	Color         string  `yaml:"color" toml:"color"`
}

type PendulumConfig struct {
	Radius    float64 `yaml:"radius" toml:"radius"`
	RingOmega float64 `yaml:"ring_omega" toml:"ring_omega"`
	Gravity   float64 `yaml:"gravity" toml:"gravity"`
	// InitialAngle is in degrees from the bottom of the ring.
	InitialAngle    float64 `yaml:"initial_angle" toml:"initial_angle"`
	InitialOmega    float64 `yaml:"initial_omega" toml:"initial_omega"`
	BobSize         float64 `yaml:"bob_size" toml:"bob_size"`
	Color           string  `yaml:"color" toml:"color"`
	ShowEquilibrium bool    `yaml:"show_equilibrium" toml:"show_equilibrium"`
}

func DefaultConfig() *Config {
	return &Config{
		Sketch:     SketchBall,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Theme:      DefaultTheme,
		View: ViewConfig{
			ZoomMin:      0.1,
			ZoomMax:      10,
			ZoomResponse: 1.001,
			PanSpeed:     1,
			IdealCells:   8,
			MinorGrid:    true,
			LabelSize:    12,
		},
		Ball: BallConfig{
			Radius:        10,
			Gravity:       physics.Gravity,
			Restitution:   physics.DefaultRestitution,
			InitialHeight: 0.8,
			Color:         "#00ccff",
		},
		Pendulum: PendulumConfig{
			Radius:          3,
			RingOmega:       2,
			Gravity:         physics.Gravity,
			InitialAngle:    30,
			BobSize:         10,
			Color:           "#ff0055",
			ShowEquilibrium: true,
		},
	}
}

// ForSketch is DefaultConfig with the sketch kind set.
func ForSketch(kind string) *Config {
	cfg := DefaultConfig()
	cfg.Sketch = kind
	return cfg
}

// BaseViewRange resolves the view range, falling back to the sketch's
// default when unset.
func (c *Config) BaseViewRange() float64 {
	if c.View.BaseViewRange > 0 {
		return c.View.BaseViewRange
	}
	if c.Sketch == SketchRingPendulum {
		return RingPendulumViewRange
	}
	return BallViewRange
}

// Load reads a YAML or TOML sketch config over the defaults. The format
// follows the file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate rejects configs the sketches cannot run. Integrator names are
// checked by the sketch registry.
func (c *Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrParameterBounds}, args...)...)
	}
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	finite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	switch c.Sketch {
	case SketchBall, SketchRingPendulum:
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownSketch, c.Sketch)
	}
	switch c.Theme {
	case "", "light", "dark":
	default:
		return bad("theme %q", c.Theme)
	}
	if !positive(c.Dt) || !positive(c.Duration) {
		return bad("dt %v and duration %v must be positive", c.Dt, c.Duration)
	}
	v := c.View
	if !finite(v.BaseViewRange, v.PanSpeed, v.LabelSize) {
		return bad("view range %v, pan speed %v, label size %v", v.BaseViewRange, v.PanSpeed, v.LabelSize)
	}
	if v.BaseViewRange < 0 || !positive(v.ZoomMin) || !positive(v.ZoomMax) || v.ZoomMax < v.ZoomMin {
		return bad("view range %v, zoom [%v, %v]", v.BaseViewRange, v.ZoomMin, v.ZoomMax)
	}
	if !positive(v.ZoomResponse) || !positive(v.IdealCells) {
		return bad("zoom response %v, ideal cells %v", v.ZoomResponse, v.IdealCells)
	}

	switch c.Sketch {
	case SketchBall:
		b := c.Ball
		if !finite(b.Gravity, b.Restitution, b.Drag, b.InitialHeight) {
			return bad("ball gravity %v, restitution %v, drag %v, initial height %v",
				b.Gravity, b.Restitution, b.Drag, b.InitialHeight)
		}
		if !positive(b.Radius) || b.Restitution < 0 || b.Restitution > 1 || b.Drag < 0 {
			return bad("ball radius %v, restitution %v, drag %v", b.Radius, b.Restitution, b.Drag)
		}
		if _, err := parseColor(b.Color); err != nil {
			return err
		}
	case SketchRingPendulum:
		p := c.Pendulum
		if !finite(p.Gravity, p.RingOmega, p.InitialAngle, p.InitialOmega) {
			return bad("ring gravity %v, ring omega %v, initial angle %v, initial omega %v",
				p.Gravity, p.RingOmega, p.InitialAngle, p.InitialOmega)
		}
		if !positive(p.Radius) || p.RingOmega < 0 || !positive(p.BobSize) {
			return bad("ring radius %v, ring omega %v, bob size %v", p.Radius, p.RingOmega, p.BobSize)
		}
		if _, err := parseColor(p.Color); err != nil {
			return err
		}
	}
	return nil
}

func parseColor(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if len(s) != 7 || s[0] != '#' {
		return rgb, fmt.Errorf("%w: color %q", dynamo.ErrParameterBounds, s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &rgb[0], &rgb[1], &rgb[2]); err != nil {
		return rgb, fmt.Errorf("%w: color %q", dynamo.ErrParameterBounds, s)
	}
	return rgb, nil
}
