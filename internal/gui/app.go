// Package gui hosts a sketch in a raylib desktop window.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/simlab/internal/sketch"
	"github.com/san-kum/simlab/internal/view"
)

const (
	panelX, panelY = 10, 10
	panelWidth     = 320
	panelPad       = 8
	lineHeight     = 20
	fontSize       = 16
)

type Options struct {
	Width, Height int32
	Title         string
	// FontPath is a TTF to use instead of raylib's built-in font.
	FontPath string
	Logger   *slog.Logger
}

type App struct {
	ctx  *sketch.Context
	surf *Surface
	log  *slog.Logger

	dragging     bool
	dragX, dragY float32
	w, h         int
}

var pressKeys = []struct {
	key  int32
	name string
}{
	{rl.KeySpace, "space"},
	{rl.KeyR, "r"},
	{rl.KeyT, "t"},
	{rl.KeyZero, "0"},
	{rl.KeyEqual, "+"},
	{rl.KeyKpAdd, "+"},
	{rl.KeyMinus, "-"},
	{rl.KeyKpSubtract, "-"},
	{rl.KeyTab, "tab"},
	{rl.KeyJ, "j"},
	{rl.KeyK, "k"},
	{rl.KeyH, "h"},
	{rl.KeyL, "l"},
	{rl.KeyEnter, "enter"},
}

func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(o.Width, o.Height, o.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the TTF at path with bilinear filtering, falling back to
// the built-in font.
func loadFont(path string) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(ctx *sketch.Context, opts Options) error {
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Title == "" {
		opts.Title = ctx.Sketch.Title()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	initWindow(opts)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window failed to open")
	}

	a := &App{ctx: ctx, surf: NewSurface(loadFont(opts.FontPath)), log: logger}
	logger.Info("window open", "width", opts.Width, "height", opts.Height)
	a.RunLoop()
	logger.Info("window closed", "time", ctx.Time)
	return nil
}

// Clipboard copies s with the window system clipboard.
func Clipboard(s string) error {
	rl.SetClipboardText(s)
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

// Update forwards this frame's input to the sketch.
func (a *App) Update() {
	if w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight()); w != a.w || h != a.h {
		a.w, a.h = w, h
		a.surf.resize(w, h)
		a.ctx.Input.Dispatch(view.ResizeEvent{W: float64(w), H: float64(h)})
	}
	a.layoutPanel()
	a.mouse()

	for _, k := range pressKeys {
		if rl.IsKeyPressed(k.key) {
			a.ctx.Input.Dispatch(view.KeyEvent{Key: k.name})
		}
	}
	held := view.Keys{
		Up:    rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Down:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
	}
	a.ctx.Camera.PanByKeys(held, float64(rl.GetFrameTime()))
}

func (a *App) mouse() {
	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if row, ok := a.panelRow(pos); ok {
			if a.ctx.Panel.Select(row) {
				a.ctx.Panel.Activate()
			}
		}
		a.dragging = true
		a.dragX, a.dragY = pos.X, pos.Y
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.dragging = false
	}
	if a.dragging {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.ctx.Input.Dispatch(view.DragEvent{
				X: float64(a.dragX), Y: float64(a.dragY),
				DX: float64(d.X), DY: float64(d.Y),
			})
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.ctx.Input.Dispatch(view.WheelEvent{
			X: float64(pos.X), Y: float64(pos.Y),
			Delta: -float64(wheel) * view.WheelNotch,
		})
	}
}

// layoutPanel sizes the panel rectangle to its visible rows.
func (a *App) layoutPanel() {
	if a.ctx.Panel == nil {
		return
	}
	n := len(a.ctx.Panel.Lines())
	a.ctx.PanelRect = view.Rect{
		X: panelX, Y: panelY,
		W: panelWidth, H: float64(n*lineHeight + 2*panelPad),
	}
}

// panelRow maps a pointer position to a panel row. The title line is not
// a row.
func (a *App) panelRow(pos rl.Vector2) (int, bool) {
	r := a.ctx.PanelRect
	if a.ctx.Panel == nil || a.ctx.Panel.Hidden || !r.Contains(float64(pos.X), float64(pos.Y)) {
		return 0, false
	}
	row := int((float64(pos.Y)-r.Y-panelPad)/lineHeight) - 1
	return row, row >= 0
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.ctx.Frame(a.surf, float64(rl.GetFrameTime()))
	a.drawPanel()
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawPanel() {
	if a.ctx.Panel == nil || a.ctx.Panel.Hidden {
		return
	}
	th := a.ctx.Theme
	r := a.ctx.PanelRect
	bg := th.Background
	bg.A = 230
	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), rlColor(bg))
	rl.DrawRectangleLines(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), rlColor(th.Axis))
	for i, line := range a.ctx.Panel.Lines() {
		col := th.Label
		if i == 0 || strings.HasPrefix(line, "> ") {
			col = th.Text
		}
		y := r.Y + panelPad + float64(i*lineHeight)
		a.drawText(line, r.X+panelPad, y, fontSize, col)
	}
}

func (a *App) drawHUD() {
	th := a.ctx.Theme
	status := "RUNNING"
	if a.ctx.Paused {
		status = "PAUSED"
	}
	bottom := float64(a.h) - 30
	a.drawText(fmt.Sprintf("%s  t=%.2f  zoom=%.2f  %d FPS", status, a.ctx.Time, a.ctx.Camera.Zoom, rl.GetFPS()), 10, bottom, 14, th.Label)
	help := "[SPACE] PAUSE  [R] RESET  [T] THEME  [WASD] PAN  [TAB] PANEL  [Q] QUIT"
	w := rl.MeasureTextEx(a.surf.Font, help, 14, 1)
	a.drawText(help, float64(a.w)-float64(w.X)-10, bottom, 14, th.Muted)
}

func (a *App) drawText(text string, x, y float64, size float32, c color.RGBA) {
	rl.DrawTextEx(a.surf.Font, text, vec(x, y), size, 1, rlColor(c))
}
