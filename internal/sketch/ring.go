package sketch

import (
	"image/color"
	"math"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/panel"
	"github.com/san-kum/simlab/internal/physics"
	"github.com/san-kum/simlab/internal/view"
)

// RingPendulum is a bead on a ring spinning about its vertical diameter,
// drawn as a rod from the ring centre to the bead.
type RingPendulum struct {
	Model *physics.RingPendulum
	// InitialAngle is in degrees from the bottom of the ring.
	InitialAngle float64
	InitialOmega float64
	// BobSize is the bead's drawn radius in tenths of a world unit.
	BobSize         float64
	Color           color.RGBA
	ShowEquilibrium bool
}

func NewRingPendulum(cfg *config.Config) (*RingPendulum, error) {
	col, err := view.ParseHex(cfg.Pendulum.Color)
	if err != nil {
		return nil, err
	}
	m := physics.NewRingPendulum()
	m.Radius = cfg.Pendulum.Radius
	m.RingOmega = cfg.Pendulum.RingOmega
	m.Gravity = cfg.Pendulum.Gravity
	return &RingPendulum{
		Model:           m,
		InitialAngle:    cfg.Pendulum.InitialAngle,
		InitialOmega:    cfg.Pendulum.InitialOmega,
		BobSize:         cfg.Pendulum.BobSize,
		Color:           col,
		ShowEquilibrium: cfg.Pendulum.ShowEquilibrium,
	}, nil
}

func (p *RingPendulum) Kind() string          { return config.SketchRingPendulum }
func (p *RingPendulum) Title() string         { return "Rotating Pendulum" }
func (p *RingPendulum) System() dynamo.System { return p.Model }
func (p *RingPendulum) TimeScale() float64    { return 1 }
func (p *RingPendulum) StartsPaused() bool    { return true }
func (p *RingPendulum) Columns() []string     { return []string{"theta", "omega"} }

func (p *RingPendulum) Initial() dynamo.State {
	return dynamo.State{p.InitialAngle * math.Pi / 180, p.InitialOmega}
}

func (p *RingPendulum) Draw(f Frame, x dynamo.State) {
	r := p.Model.Radius
	f.NoFill()
	f.Stroke(f.Theme.Grid, f.Pixel)
	f.Circle(0, 0, r)

	if theta, ok := p.Model.Equilibrium(); ok && p.ShowEquilibrium {
		f.Stroke(f.Theme.Axis, 1.5*f.Pixel)
		for _, th := range []float64{theta, -theta} {
			ex, ey := p.Model.Bob(th)
			f.Circle(ex, ey, 4*f.Pixel)
		}
	}

	bx, by := p.Model.Bob(x[0])
	f.Stroke(f.Theme.Muted, 2*f.Pixel)
	f.Line(0, 0, bx, by)

	f.NoStroke()
	f.Fill(p.Color)
	f.Circle(bx, by, p.BobSize/10)
}

func (p *RingPendulum) Bind(root, monitors *panel.Folder, c *Context) {
	m := p.Model
	root.AddNumber(&p.BobSize, "bob size", panel.Range(1, 50), panel.Step(1), panel.Format("%.0f"))
	root.AddNumber(&m.Gravity, "gravity", panel.Range(0, 20), panel.Step(0.1))
	root.AddColor(&p.Color, "color", palette...)
	root.AddNumber(&m.RingOmega, "ring omega", panel.Range(0, 10), panel.Step(0.1))
	root.AddNumber(&m.Radius, "ring radius", panel.Range(0.1, 10), panel.Step(0.1))
	root.AddNumber(&p.InitialAngle, "initial angle", panel.Range(-180, 180), panel.Step(5), panel.Format("%.0f°")).
		OnChange(func(*panel.Binding) {
			// Editing the start angle moves the bead right away.
			c.State[0] = p.InitialAngle * math.Pi / 180
		})

	monitors.AddMonitor(func() float64 { return c.State[0] }, "theta", panel.Format("%.3f"))
	monitors.AddMonitor(func() float64 { return c.State[1] }, "omega", panel.Format("%.3f"))
	monitors.AddMonitor(func() float64 {
		if th, ok := m.Equilibrium(); ok {
			return th
		}
		return math.NaN()
	}, "equilibrium", panel.Format("%.3f"))
}
