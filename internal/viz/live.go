package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/panel"
	"github.com/san-kum/simlab/internal/sketch"
	"github.com/san-kum/simlab/internal/view"
)

const (
	historyCapacity = 240
	// sideWidth is the panel column including its left border.
	sideWidth = panel.Width + 3
	// chromeRows is the status line below the canvas.
	chromeRows = 1
)

var (
	graphStyle = lipgloss.NewStyle().Padding(1, 0)
	sideStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts a sketch in the terminal. It owns the braille surface and
// translates terminal input into view events.
type Model struct {
	ctx           *sketch.Context
	surface       *Surface
	width, height int
	last          time.Time
	energy        []float64
	showHelp      bool
	rec           *Recording
	recordPath    string
	log           *slog.Logger

	dragging       bool
	dragX, dragY   float64
	mouseX, mouseY int
	panelVisible   bool
}

type Option func(*Model)

// WithRecordPath sets where the g key saves its GIF.
func WithRecordPath(path string) Option {
	return func(m *Model) { m.recordPath = path }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithSize sets the terminal size used until the first resize message.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

func NewModel(ctx *sketch.Context, opts ...Option) *Model {
	m := &Model{
		ctx:        ctx,
		width:      80,
		height:     24,
		recordPath: "simulation.gif",
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(m)
	}
	// a cell is 4 dots tall, so labels and margins shrink to fit rows
	g := ctx.Grid
	g.Minor = false
	g.LabelSize = 4
	g.LabelMargin = 2

	m.surface = NewSurface(1, 1)
	m.layout()
	return m
}

// Clipboard copies through the terminal with an OSC 52 sequence written
// to w.
func Clipboard(w io.Writer) func(string) error {
	return func(s string) error {
		_, err := osc52.New(s).WriteTo(w)
		return err
	}
}

func (m *Model) Context() *sketch.Context { return m.ctx }

func (m *Model) Surface() *Surface { return m.surface }

func (m *Model) hasPanel() bool {
	return m.ctx.Panel != nil && !m.ctx.Panel.Hidden
}

// layout sizes the canvas to the terminal minus the panel column and
// tells the sketch where the panel sits in device units.
func (m *Model) layout() {
	m.panelVisible = m.hasPanel()
	cols := m.width
	if m.panelVisible {
		cols -= sideWidth
	}
	rows := m.height - chromeRows
	m.surface.Canvas.Resize(max(cols, 10), max(rows, 4))

	w, h := m.surface.Size()
	m.ctx.PanelRect = view.Rect{X: w, Y: 0, W: sideWidth * 2, H: h}
	m.ctx.Input.Dispatch(view.ResizeEvent{W: w, H: h})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and drives frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.finishRecording()
			return m, tea.Quit
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		default:
			m.ctx.Input.Dispatch(view.KeyEvent{Key: KeyName(msg)})
			if m.hasPanel() != m.panelVisible {
				m.layout()
			}
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.frame(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

// KeyName maps a terminal key to the canonical names sketches use.
func KeyName(k tea.KeyMsg) string {
	switch k.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyTab:
		return "tab"
	}
	s := k.String()
	if s == " " {
		return "space"
	}
	return s
}

// mouse converts cell coordinates to braille dots: 2 across, 4 down.
func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := float64(msg.X*2), float64(msg.Y*4)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctx.Input.Dispatch(view.WheelEvent{X: x, Y: y, Delta: -view.WheelNotch})
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctx.Input.Dispatch(view.WheelEvent{X: x, Y: y, Delta: view.WheelNotch})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX, m.dragY = x, y
		m.mouseX, m.mouseY = msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx, dy := float64((msg.X-m.mouseX)*2), float64((msg.Y-m.mouseY)*4)
		m.mouseX, m.mouseY = msg.X, msg.Y
		m.ctx.Input.Dispatch(view.DragEvent{X: m.dragX, Y: m.dragY, DX: dx, DY: dy})
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) frame(now time.Time) {
	dt := 0.0
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now
	m.ctx.Frame(m.surface, dt)

	if h, ok := m.ctx.Sim.System().(dynamo.Hamiltonian); ok && !m.ctx.Paused {
		m.energy = append(m.energy, h.Energy(m.ctx.State))
		if len(m.energy) > historyCapacity {
			m.energy = m.energy[len(m.energy)-historyCapacity:]
		}
	}
	if m.rec != nil {
		m.rec.Capture(m.surface.Canvas)
	}
}

func (m *Model) toggleRecording() {
	if m.rec == nil {
		m.rec = NewRecording()
		return
	}
	m.finishRecording()
}

func (m *Model) finishRecording() {
	if m.rec == nil {
		return
	}
	rec := m.rec
	m.rec = nil
	if err := rec.Save(m.recordPath); err != nil {
		m.log.Warn("save recording", "path", m.recordPath, "err", err)
		return
	}
	m.log.Info("recording saved", "path", m.recordPath, "frames", rec.Len())
}

// View renders the canvas beside the panel column.
func (m *Model) View() string {
	th := m.ctx.Theme
	body := m.surface.Render()
	if m.hasPanel() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.side(th))
	}
	status := m.status(th)
	if m.showHelp {
		return helpText + "\n" + body + "\n" + status
	}
	return body + "\n" + status
}

func (m *Model) side(th view.Theme) string {
	var s strings.Builder
	s.WriteString(m.ctx.Panel.View(panel.StylesFor(th)))
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(panel.Width-8), asciigraph.Caption("Energy"))
		s.WriteString("\n" + graphStyle.Foreground(lipgloss.Color(view.Hex(th.Text))).Render(chart))
	}
	return sideStyle.BorderForeground(lipgloss.Color(view.Hex(th.Muted))).Render(s.String())
}

func (m *Model) status(th view.Theme) string {
	state := "RUNNING"
	if m.ctx.Paused {
		state = "PAUSED"
	}
	if m.rec != nil {
		state += fmt.Sprintf(" ● REC %d", m.rec.Len())
	}
	line := fmt.Sprintf("%s  t=%.2f  zoom=%.2f  %s  ?:help q:quit",
		state, m.ctx.Time, m.ctx.Camera.Zoom, m.ctx.Sketch.Kind())
	return lipgloss.NewStyle().Foreground(lipgloss.Color(view.Hex(th.Muted))).Render(line)
}

const helpText = `
  space  pause/resume        r      reset
  t      cycle theme         0      reset camera
  wasd   pan (or arrows)     + -    zoom (or mouse wheel)
  drag   pan                 g      record GIF
  tab    show/hide panel     j k    move panel cursor
  h l    adjust / fold       enter  press button
  q      quit
`
