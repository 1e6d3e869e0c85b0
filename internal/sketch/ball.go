package sketch

import (
	"image/color"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/panel"
	"github.com/san-kum/simlab/internal/physics"
	"github.com/san-kum/simlab/internal/view"
)

// ballTimeScale makes one host second ten simulation seconds, so the fall
// from the top of the default view takes a couple of seconds on screen.
const ballTimeScale = 10

type Ball struct {
	Model         *physics.BouncingBall
	BaseViewRange float64
	// InitialHeight is a fraction of BaseViewRange.
	InitialHeight float64
	Color         color.RGBA
}

func NewBall(cfg *config.Config) (*Ball, error) {
	col, err := view.ParseHex(cfg.Ball.Color)
	if err != nil {
		return nil, err
	}
	base := cfg.BaseViewRange()
	m := physics.NewBouncingBall(base)
	m.Radius = cfg.Ball.Radius
	m.Gravity = cfg.Ball.Gravity
	m.Restitution = cfg.Ball.Restitution
	m.Drag = cfg.Ball.Drag
	return &Ball{
		Model:         m,
		BaseViewRange: base,
		InitialHeight: cfg.Ball.InitialHeight,
		Color:         col,
	}, nil
}

func (b *Ball) Kind() string          { return config.SketchBall }
func (b *Ball) Title() string         { return "Physics Settings" }
func (b *Ball) System() dynamo.System { return b.Model }
func (b *Ball) TimeScale() float64    { return ballTimeScale }
func (b *Ball) StartsPaused() bool    { return false }
func (b *Ball) Columns() []string     { return []string{"y", "vy"} }

func (b *Ball) Initial() dynamo.State {
	return dynamo.State{b.BaseViewRange * b.InitialHeight, 0}
}

func (b *Ball) Draw(f Frame, x dynamo.State) {
	f.Stroke(f.Theme.Muted, f.Pixel)
	f.Line(f.Left, b.Model.Floor, f.Right, b.Model.Floor)

	f.NoStroke()
	f.Fill(b.Color)
	f.Circle(0, x[0], b.Model.Radius)
}

func (b *Ball) Bind(root, monitors *panel.Folder, c *Context) {
	m := b.Model
	root.AddNumber(&m.Radius, "radius", panel.Range(2, 50), panel.Step(1), panel.Format("%.0f"))
	root.AddNumber(&m.Gravity, "gravity", panel.Range(0, 30), panel.Step(0.1))
	root.AddNumber(&m.Restitution, "restitution", panel.Range(0, 1), panel.Step(0.05))
	root.AddNumber(&m.Drag, "drag", panel.Range(0, 0.1), panel.Step(0.005), panel.Format("%.3f"))
	root.AddColor(&b.Color, "color", palette...)

	monitors.AddMonitor(func() float64 { return c.State[0] }, "y")
	monitors.AddMonitor(func() float64 { return c.State[1] }, "vy")
}

// palette is what the color bindings cycle through in hosts without a
// color picker.
var palette = []color.RGBA{
	{0x00, 0xcc, 0xff, 0xff},
	{0xff, 0x00, 0x55, 0xff},
	{0x33, 0xcc, 0x66, 0xff},
	{0xff, 0xaa, 0x00, 0xff},
	{0x99, 0x66, 0xff, 0xff},
}
