package sketch

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/panel"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/view"
)

const (
	// MaxFrameDt caps a single frame's step so a stalled host does not
	// launch the body through the floor.
	MaxFrameDt = 0.25
	// KeyPanStep is the pan duration applied per discrete key press.
	KeyPanStep = 0.05
	// FlashDuration is how long one-shot button feedback stays up.
	FlashDuration = 2 * time.Second

	playTitle  = "▶ Play"
	pauseTitle = "⏸ Pause"
)

// ThemeStore persists the selected theme.
type ThemeStore interface {
	SaveTheme(name string) error
}

type Options struct {
	// Thumbnail renders without panel or labels and never steps.
	Thumbnail bool
	Theme     string
	Prefs     ThemeStore
	Logger    *slog.Logger
	// PanelRect is the screen region owned by the panel; drags and wheel
	// scrolls inside it never reach the camera.
	PanelRect view.Rect
	// ShareText is what the share button copies.
	ShareText string
	Clipboard func(string) error
	Now       func() time.Time
}

// Context is the state of one running sketch. It is driven from a single
// goroutine: hosts deliver input between calls to Frame.
type Context struct {
	Sketch    Sketch
	Sim       *sim.Simulator
	Camera    *view.Camera
	Grid      *view.Grid
	Theme     view.Theme
	Input     *view.Dispatcher
	Panel     *panel.Panel
	State     dynamo.State
	Time      float64
	Paused    bool
	Thumbnail bool
	PanelRect view.Rect

	prefs     ThemeStore
	log       *slog.Logger
	themeName string
	playBtn   *panel.Button
	shareText string
	clipboard func(string) error
	w, h      float64
}

func NewContext(sk Sketch, integrator dynamo.Integrator, cam *view.Camera, grid *view.Grid, opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	th, ok := view.ThemeByName(opts.Theme)
	if !ok {
		th = view.ThemeLight
	}
	grid.Thumbnail = grid.Thumbnail || opts.Thumbnail

	c := &Context{
		Sketch:    sk,
		Sim:       sim.New(sk.System(), integrator),
		Camera:    cam,
		Grid:      grid,
		Theme:     th,
		Input:     &view.Dispatcher{},
		Thumbnail: opts.Thumbnail,
		PanelRect: opts.PanelRect,
		prefs:     opts.Prefs,
		log:       logger,
		themeName: th.Name,
		shareText: opts.ShareText,
		clipboard: opts.Clipboard,
	}
	c.Reset()

	if !opts.Thumbnail {
		c.Panel = c.buildPanel(opts.Now)
		c.Input.Subscribe("panel", view.RegionGuard(c.panelRegion))
	}
	c.Input.Subscribe("resize", c.onResize)
	c.Input.Subscribe("camera", view.CameraHandler(cam, c.Size))
	c.Input.Subscribe("keys", c.onKey)
	return c
}

// Size is the surface size seen by the last frame or resize event.
func (c *Context) Size() (float64, float64) { return c.w, c.h }

func (c *Context) panelRegion() view.Rect {
	if c.Panel == nil || c.Panel.Hidden {
		return view.Rect{}
	}
	return c.PanelRect
}

// Frame draws one frame: background, camera, grid, step, sketch.
func (c *Context) Frame(s view.Surface, dt float64) {
	c.w, c.h = s.Size()
	s.Background(c.Theme.Background)

	s.Push()
	defer s.Pop()
	c.Camera.Apply(s)
	c.Grid.Draw(s, c.Camera, c.Theme)

	if !c.Paused && !c.Thumbnail {
		c.Advance(dt)
	}

	left, bottom, right, top := c.Camera.Visible(c.w, c.h)
	c.Sketch.Draw(Frame{
		Surface: s,
		Theme:   c.Theme,
		Pixel:   1 / c.Camera.Scale(c.w, c.h),
		Left:    left,
		Bottom:  bottom,
		Right:   right,
		Top:     top,
	}, c.State)
}

// Advance steps the simulation by dt host seconds. A step that produces
// NaN or Inf is discarded and the sketch pauses.
func (c *Context) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	h := math.Min(dt, MaxFrameDt) * c.Sketch.TimeScale()
	next := c.Sim.Step(c.State, c.Time, h)
	if !next.IsValid() {
		c.log.Warn("invalid state, pausing", "sketch", c.Sketch.Kind(), "time", c.Time, "state", fmt.Sprint(next))
		c.setPaused(true)
		return
	}
	c.State = next
	c.Time += h
}

// Reset restores the initial state, zeroes the clock and reapplies the
// sketch's start policy for pausing.
func (c *Context) Reset() {
	c.State = c.Sketch.Initial()
	c.Time = 0
	c.setPaused(c.Sketch.StartsPaused())
	c.log.Debug("reset", "sketch", c.Sketch.Kind(), "state", fmt.Sprint(c.State))
}

func (c *Context) TogglePause() { c.setPaused(!c.Paused) }

func (c *Context) setPaused(p bool) {
	c.Paused = p
	if c.playBtn != nil {
		c.playBtn.SetTitle(playPauseTitle(p))
	}
}

func playPauseTitle(paused bool) string {
	if paused {
		return playTitle
	}
	return pauseTitle
}

// SetTheme switches palettes and persists the choice.
func (c *Context) SetTheme(name string) error {
	th, ok := view.ThemeByName(name)
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	c.Theme = th
	c.themeName = name
	if c.prefs != nil {
		if err := c.prefs.SaveTheme(name); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
	}
	c.log.Debug("theme", "name", name)
	return nil
}

func (c *Context) CycleTheme() error {
	return c.SetTheme(c.Theme.Next().Name)
}

// share copies the share text and flashes confirmation on the button.
func (c *Context) share(btn *panel.Button, now time.Time) {
	if c.clipboard == nil || c.shareText == "" {
		return
	}
	if err := c.clipboard(c.shareText); err != nil {
		c.log.Warn("copy failed", "err", err)
		return
	}
	btn.Flash("✅ Copied!", FlashDuration, now)
}

func (c *Context) buildPanel(now func() time.Time) *panel.Panel {
	p := panel.New(c.Sketch.Title())
	if now != nil {
		p.Now = now
	}
	monitors := &panel.Folder{Title: "📊 Monitors", Expanded: true}
	monitors.AddMonitor(func() float64 { return c.Time }, "time", panel.Interval(16*time.Millisecond))

	c.Sketch.Bind(&p.Folder, monitors, c)

	c.playBtn = p.AddButton(playPauseTitle(c.Paused), c.TogglePause)
	p.AddButton("🔄 Reset", c.Reset)
	p.Items = append(p.Items, monitors)

	settings := p.AddFolder("⚙️ Settings", false)
	settings.AddChoice(&c.themeName, "theme", view.ThemeNames()).OnChange(func(*panel.Binding) {
		if err := c.SetTheme(c.themeName); err != nil {
			c.log.Warn("theme change failed", "err", err)
		}
	})
	var shareBtn *panel.Button
	shareBtn = settings.AddButton("🔗 Copy command", func() { c.share(shareBtn, p.Now()) })
	return p
}

func (c *Context) onResize(e view.Event) bool {
	if r, ok := e.(view.ResizeEvent); ok {
		c.w, c.h = r.W, r.H
		return true
	}
	return false
}

// onKey handles the canonical key names hosts translate their input to.
func (c *Context) onKey(e view.Event) bool {
	k, ok := e.(view.KeyEvent)
	if !ok {
		return false
	}
	switch k.Key {
	case "space":
		c.TogglePause()
	case "r":
		c.Reset()
	case "t":
		if err := c.CycleTheme(); err != nil {
			c.log.Warn("theme change failed", "err", err)
		}
	case "0":
		c.Camera.Reset()
	case "+", "=":
		c.Camera.ZoomBy(-view.WheelNotch)
	case "-":
		c.Camera.ZoomBy(view.WheelNotch)
	case "up", "w":
		c.Camera.PanByKeys(view.Keys{Up: true}, KeyPanStep)
	case "down", "s":
		c.Camera.PanByKeys(view.Keys{Down: true}, KeyPanStep)
	case "left", "a":
		c.Camera.PanByKeys(view.Keys{Left: true}, KeyPanStep)
	case "right", "d":
		c.Camera.PanByKeys(view.Keys{Right: true}, KeyPanStep)
	default:
		return c.panelKey(k.Key)
	}
	return true
}

func (c *Context) panelKey(key string) bool {
	if c.Panel == nil {
		return false
	}
	switch key {
	case "tab":
		c.Panel.Hidden = !c.Panel.Hidden
	case "j":
		c.Panel.Move(1)
	case "k":
		c.Panel.Move(-1)
	case "h":
		return c.adjust(-1)
	case "l":
		return c.adjust(1)
	case "enter":
		c.Panel.Activate()
	default:
		return false
	}
	return true
}

func (c *Context) adjust(dir int) bool {
	if err := c.Panel.Adjust(dir); err != nil {
		c.log.Debug("panel adjust", "err", err)
	}
	return true
}
